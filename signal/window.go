// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/window"
)

// WindowType names an analysis window.
type WindowType string

const (
	WindowRectangular WindowType = "rectangular"
	WindowHann        WindowType = "hann"
	WindowSqrtHann    WindowType = "sqrt_hann"
	WindowHamming     WindowType = "hamming"
	WindowBlackman    WindowType = "blackman"
	WindowTriangle    WindowType = "triang"
)

// windowTypes maps every WindowType to its generator. sqrt_hann is
// derived from Hann.
var windowTypes = map[WindowType]window.Type{
	WindowRectangular: window.TypeRectangular,
	WindowHann:        window.TypeHann,
	WindowSqrtHann:    window.TypeHann,
	WindowHamming:     window.TypeHamming,
	WindowBlackman:    window.TypeBlackman,
	WindowTriangle:    window.TypeTriangle,
}

// Valid reports whether t is a known window type.
func (t WindowType) Valid() bool {
	_, ok := windowTypes[t]
	return ok
}

// Window returns periodic (DFT-even) coefficients of type t.
func Window(t WindowType, length int) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: window length %d", ErrInvalidSTFT, length)
	}

	wt, ok := windowTypes[t]
	if !ok {
		return nil, fmt.Errorf("%w: window type %q", ErrInvalidSTFT, t)
	}

	coeffs := window.Generate(wt, length, window.WithPeriodic())

	if t == WindowSqrtHann {
		for i, c := range coeffs {
			coeffs[i] = math.Sqrt(max(c, 0))
		}
	}

	return coeffs, nil
}
