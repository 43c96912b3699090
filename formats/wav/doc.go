// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files on top of github.com/go-audio/wav.
//
// The decoder accepts integer PCM at 8, 16, 24 or 32 bits, any channel
// count and any sample rate, and yields an audio.Source of float32 samples
// in [-1.0, 1.0]:
//
//	file, _ := os.Open("mix.wav")
//	src, err := wav.Decoder{}.Decode(file)
//
// Readers that cannot seek are buffered in memory first.
//
// Encode writes interleaved float32 samples as 16-bit PCM:
//
//	out, _ := os.Create("out.wav")
//	err := wav.Encode(out, 16000, 2, samples)
package wav
