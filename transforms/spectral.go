// SPDX-License-Identifier: EPL-2.0

package transforms

import (
	"fmt"
	"math"

	"github.com/ik5/sepdata/signal"
	"github.com/ik5/sepdata/tensor"
)

// spectra is the STFT of a mix and of its sources, sources ordered by name.
type spectra struct {
	names   []string
	mix     *signal.Spectrogram
	sources []*signal.Spectrogram
}

func analyse(item Item) (*spectra, error) {
	mix, err := item.Mix()
	if err != nil {
		return nil, err
	}

	sources, err := item.Sources()
	if err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	names, err := item.SourceNames()
	if err != nil {
		return nil, err
	}

	sp := &spectra{names: names}
	if sp.mix, err = mix.STFT(); err != nil {
		return nil, fmt.Errorf("mix: %w", err)
	}

	sp.sources = make([]*signal.Spectrogram, len(names))
	for i, name := range names {
		s, err := sources[name].STFT()
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}

		if s.Bins != sp.mix.Bins || s.Frames != sp.mix.Frames || s.Channels != sp.mix.Channels {
			return nil, fmt.Errorf("%w: source %q is %dx%dx%d, mix is %dx%dx%d", ErrShapeMismatch, name,
				s.Bins, s.Frames, s.Channels, sp.mix.Bins, sp.mix.Frames, sp.mix.Channels)
		}

		sp.sources[i] = s
	}

	return sp, nil
}

func (sp *spectra) mixShape() []int {
	return []int{sp.mix.Bins, sp.mix.Frames, sp.mix.Channels}
}

// stack interleaves per-source planes into a (F, T, C, S) tensor.
func (sp *spectra) stack(planes [][]float64) (*tensor.Dense, error) {
	n := len(planes)
	shape := append(sp.mixShape(), n)
	out, err := tensor.New(shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	for s, plane := range planes {
		for i, v := range plane {
			out.Data[i*n+s] = v
		}
	}

	return out, nil
}

// idealBinaryMask marks, for every (F, T, C) bin, the loudest source.
// Ties go to the first source in name order.
func idealBinaryMask(mags *tensor.Dense) (*tensor.Dense, error) {
	if mags.Rank() == 0 {
		return nil, fmt.Errorf("%w: magnitudes have no source axis", ErrShapeMismatch)
	}

	n := mags.Shape[len(mags.Shape)-1]
	mask, err := tensor.New(mags.Shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	for base := 0; base < len(mags.Data); base += n {
		best := 0
		for s := 1; s < n; s++ {
			if mags.Data[base+s] > mags.Data[base+best] {
				best = s
			}
		}
		mask.Data[base+best] = 1
	}

	return mask, nil
}

func (sp *spectra) output(item Item, mixMag []float64, planes [][]float64) (Item, error) {
	mix, err := tensor.FromData(mixMag, sp.mixShape()...)
	if err != nil {
		return nil, fmt.Errorf("%w: mix: %w", ErrShapeMismatch, err)
	}

	sources, err := sp.stack(planes)
	if err != nil {
		return nil, err
	}

	mask, err := idealBinaryMask(sources)
	if err != nil {
		return nil, err
	}

	out := item.Clone()
	out[KeyMixMagnitude] = mix
	out[KeySourceMagnitudes] = sources
	out[KeyIdealBinaryMask] = mask
	out[KeySourceNames] = sp.names
	return out, nil
}

// MagnitudeSpectrumApproximation adds the mix magnitude (F, T, C), the
// source magnitudes (F, T, C, S) and their ideal binary mask. The source
// axis follows SourceNames order, also stored under KeySourceNames.
type MagnitudeSpectrumApproximation struct{}

func (MagnitudeSpectrumApproximation) Name() string { return "MagnitudeSpectrumApproximation" }

func (MagnitudeSpectrumApproximation) Apply(item Item) (Item, error) {
	sp, err := analyse(item)
	if err != nil {
		return nil, err
	}

	planes := make([][]float64, len(sp.sources))
	for i, s := range sp.sources {
		planes[i] = s.Magnitude()
	}

	return sp.output(item, sp.mix.Magnitude(), planes)
}

// PhaseSensitiveSpectrumApproximation is MagnitudeSpectrumApproximation
// with every source magnitude scaled by the cosine of its phase difference
// to the mix. When RangeMax > RangeMin the result is clipped to
// [RangeMin, RangeMax] times the mix magnitude.
type PhaseSensitiveSpectrumApproximation struct {
	RangeMin float64
	RangeMax float64
}

// NewPhaseSensitiveSpectrumApproximation clips to [0, 1] of the mix.
func NewPhaseSensitiveSpectrumApproximation() PhaseSensitiveSpectrumApproximation {
	return PhaseSensitiveSpectrumApproximation{RangeMin: 0, RangeMax: 1}
}

func (PhaseSensitiveSpectrumApproximation) Name() string {
	return "PhaseSensitiveSpectrumApproximation"
}

func (p PhaseSensitiveSpectrumApproximation) Apply(item Item) (Item, error) {
	sp, err := analyse(item)
	if err != nil {
		return nil, err
	}

	mixMag := sp.mix.Magnitude()
	mixPhase := sp.mix.Phase()
	clip := p.RangeMax > p.RangeMin

	planes := make([][]float64, len(sp.sources))
	for i, s := range sp.sources {
		mag := s.Magnitude()
		phase := s.Phase()

		for j := range mag {
			v := mag[j] * math.Cos(phase[j]-mixPhase[j])
			if clip {
				v = min(max(v, p.RangeMin*mixMag[j]), p.RangeMax*mixMag[j])
			}
			mag[j] = v
		}

		planes[i] = mag
	}

	return sp.output(item, mixMag, planes)
}
