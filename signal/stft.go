// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Spectrogram holds a one-sided STFT laid out frequency-major:
// Data[(bin*Frames+frame)*Channels+channel].
type Spectrogram struct {
	Bins     int
	Frames   int
	Channels int
	Data     []complex128
}

func (sp *Spectrogram) index(bin, frame, channel int) int {
	return (bin*sp.Frames+frame)*sp.Channels + channel
}

// At returns one STFT coefficient.
func (sp *Spectrogram) At(bin, frame, channel int) complex128 {
	return sp.Data[sp.index(bin, frame, channel)]
}

// Magnitude returns |X| in the same layout as Data.
func (sp *Spectrogram) Magnitude() []float64 {
	re := make([]float64, len(sp.Data))
	im := make([]float64, len(sp.Data))
	for i, c := range sp.Data {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(sp.Data))
	vecmath.Magnitude(out, re, im)

	return out
}

// Phase returns arg(X) in the same layout as Data.
func (sp *Spectrogram) Phase() []float64 {
	out := make([]float64, len(sp.Data))
	for i, c := range sp.Data {
		out[i] = math.Atan2(imag(c), real(c))
	}
	return out
}

// FrameCount is the number of STFT frames for n samples: frames start
// every hop samples and the last one may be zero-padded.
func FrameCount(n int, p STFTParams) int {
	if n <= p.WindowLength {
		return 1
	}
	return 1 + (n-p.WindowLength+p.HopLength-1)/p.HopLength
}

// STFT analyses every channel with the signal's STFT parameters. The FFT
// size is the window length rounded up to a power of two.
func (s *Signal) STFT() (*Spectrogram, error) {
	p := s.stft
	if err := p.Validate(); err != nil {
		return nil, err
	}

	coeffs, err := Window(p.WindowType, p.WindowLength)
	if err != nil {
		return nil, err
	}

	fftSize := nextPow2(p.WindowLength)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("creating FFT plan of size %d: %w", fftSize, err)
	}

	sp := &Spectrogram{
		Bins:     fftSize/2 + 1,
		Frames:   FrameCount(s.Len(), p),
		Channels: s.NumChannels(),
	}
	sp.Data = make([]complex128, sp.Bins*sp.Frames*sp.Channels)

	frame := make([]float64, p.WindowLength)
	spectrum := make([]complex128, fftSize)

	for c, samples := range s.data {
		for t := range sp.Frames {
			pos := t * p.HopLength

			clear(frame)
			if pos < len(samples) {
				copy(frame, samples[pos:])
			}
			vecmath.MulBlockInPlace(frame, coeffs)

			clear(spectrum)
			for i, v := range frame {
				spectrum[i] = complex(v, 0)
			}

			if err := plan.Forward(spectrum, spectrum); err != nil {
				return nil, fmt.Errorf("forward FFT of frame %d: %w", t, err)
			}

			for f := range sp.Bins {
				sp.Data[sp.index(f, t, c)] = spectrum[f]
			}
		}
	}

	return sp, nil
}
