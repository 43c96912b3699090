// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// fullScale maps a PCM bit depth to the magnitude of its most negative value.
var fullScale = map[int]float32{
	8:  128.0,
	16: 32768.0,
	24: 8388608.0,
	32: 2147483648.0,
}

// SupportedBitDepth reports whether IntToFloat32 can scale the bit depth.
func SupportedBitDepth(bitDepth int) bool {
	_, ok := fullScale[bitDepth]
	return ok
}

// IntToFloat32 scales signed integer PCM of the given bit depth into [-1, 1].
// Unknown depths are treated as 16-bit.
func IntToFloat32(dst []float32, src []int, bitDepth int) {
	scale, ok := fullScale[bitDepth]
	if !ok {
		scale = fullScale[16]
	}

	inv := 1 / scale
	for i := range min(len(dst), len(src)) {
		dst[i] = float32(src[i]) * inv
	}
}

// Int16LEToFloat32 converts little-endian 16-bit PCM bytes into dst and
// returns the number of samples written.
func Int16LEToFloat32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		v := int16(binary.LittleEndian.Uint16(src[2*i:]))
		dst[i] = float32(v) / 32768.0
	}
	return n
}
