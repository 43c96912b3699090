// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 or 32 bits is supported for any channel count
// and sample rate. Samples come out as float32 in [-1.0, 1.0]:
//
//	file, _ := os.Open("vocals.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//
// Non-seekable readers are buffered in memory because go-audio seeks
// between chunks.
package aiff
