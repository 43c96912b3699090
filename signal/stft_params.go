// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"math/bits"
)

// defaultWindowSeconds is the analysis window duration used when no STFT
// parameters are given; the length is rounded up to a power of two.
const defaultWindowSeconds = 0.064

// STFTParams configures the time-frequency analysis of a Signal.
type STFTParams struct {
	WindowLength int
	HopLength    int
	WindowType   WindowType
}

// DefaultSTFTParams returns a ~64 ms sqrt-Hann window at sampleRate with
// 75% overlap.
func DefaultSTFTParams(sampleRate int) STFTParams {
	length := nextPow2(int(defaultWindowSeconds * float64(sampleRate)))

	return STFTParams{
		WindowLength: length,
		HopLength:    max(length/4, 1),
		WindowType:   WindowSqrtHann,
	}
}

// Validate reports whether the parameters can drive an STFT.
func (p STFTParams) Validate() error {
	if p.WindowLength <= 0 {
		return fmt.Errorf("%w: window length %d", ErrInvalidSTFT, p.WindowLength)
	}

	if p.HopLength <= 0 || p.HopLength > p.WindowLength {
		return fmt.Errorf("%w: hop length %d for window %d", ErrInvalidSTFT, p.HopLength, p.WindowLength)
	}

	if !p.WindowType.Valid() {
		return fmt.Errorf("%w: window type %q", ErrInvalidSTFT, p.WindowType)
	}

	return nil
}

func (p STFTParams) String() string {
	return fmt.Sprintf("STFT(window=%d hop=%d type=%s)", p.WindowLength, p.HopLength, p.WindowType)
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
