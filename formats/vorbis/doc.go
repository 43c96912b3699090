// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
//	file, _ := os.Open("bass.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//
// oggvorbis already yields float32 samples, so they are passed through
// unchanged.
package vorbis
