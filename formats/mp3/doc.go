// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit interleaved stereo, so every decoded source
// reports two channels regardless of the file's channel mode:
//
//	file, _ := os.Open("drums.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
