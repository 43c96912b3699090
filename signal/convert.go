// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"slices"

	"github.com/ik5/sepdata/audio"
)

// stream pushes s through the processor built by wrap and collects the
// result into a new Signal that keeps s's STFT parameters and path.
func (s *Signal) stream(wrap func(audio.Source) (audio.Source, error)) (*Signal, error) {
	src, err := s.Source()
	if err != nil {
		return nil, err
	}

	out, err := wrap(src)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	return FromSource(out, WithSTFTParams(s.stft), WithPath(s.path))
}

// Resample converts the signal to rate with the cubic streaming resampler.
// The STFT parameters are kept as they are.
func Resample(s *Signal, rate int) (*Signal, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}

	if rate == s.sampleRate {
		return s.Clone(), nil
	}

	return s.stream(func(src audio.Source) (audio.Source, error) {
		return audio.NewResampler(src, rate), nil
	})
}

// Remix changes the channel count without mixing: extra channels are
// dropped, missing ones are filled by repeating the existing channels.
// Samples are copied as they are, without a float32 round trip.
func Remix(s *Signal, channels int) (*Signal, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidChannels, channels)
	}

	if len(s.data) == 0 {
		return nil, fmt.Errorf("%w: signal has no channels", ErrInvalidChannels)
	}

	data := make([][]float64, channels)
	for c := range data {
		data[c] = slices.Clone(s.data[c%len(s.data)])
	}

	out := *s
	out.data = data

	return &out, nil
}

// Downmix averages every channel into one when channels is 1 and falls
// back to Remix otherwise.
func Downmix(s *Signal, channels int) (*Signal, error) {
	if channels != 1 || s.NumChannels() == 1 {
		return Remix(s, channels)
	}

	return s.stream(func(src audio.Source) (audio.Source, error) {
		return audio.NewMonoMixer(src), nil
	})
}
