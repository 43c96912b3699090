// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"slices"

	"github.com/ik5/sepdata/audio"
)

// Signal is one loaded audio stream held in memory as planar float64
// samples, together with the STFT parameters used to analyse it.
type Signal struct {
	sampleRate int
	data       [][]float64 // [channel][sample]
	stft       STFTParams
	path       string
}

// Option configures a Signal at construction.
type Option func(*Signal)

// WithSTFTParams overrides the default STFT parameters.
func WithSTFTParams(p STFTParams) Option {
	return func(s *Signal) {
		s.stft = p
	}
}

// WithPath records where the samples came from.
func WithPath(path string) Option {
	return func(s *Signal) {
		s.path = path
	}
}

// FromArray builds a Signal from planar samples, copying them.
func FromArray(data [][]float64, sampleRate int, opts ...Option) (*Signal, error) {
	if err := validateLayout(data, sampleRate); err != nil {
		return nil, err
	}

	copied := make([][]float64, len(data))
	for c := range data {
		copied[c] = slices.Clone(data[c])
	}

	return build(copied, sampleRate, opts)
}

// FromSource drains src into a Signal. src is not closed.
func FromSource(src audio.Source, opts ...Option) (*Signal, error) {
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, src.SampleRate())
	}

	interleaved, err := audio.ReadAll(src, 0)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}

	data, err := audio.Deinterleave(interleaved, src.Channels())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChannels, err)
	}

	return build(data, src.SampleRate(), opts)
}

func build(data [][]float64, sampleRate int, opts []Option) (*Signal, error) {
	s := &Signal{
		sampleRate: sampleRate,
		data:       data,
		stft:       DefaultSTFTParams(sampleRate),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if err := s.stft.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func validateLayout(data [][]float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	if len(data) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidChannels)
	}

	for c := range data[1:] {
		if len(data[c+1]) != len(data[0]) {
			return fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrInvalidChannels, c+1, len(data[c+1]), len(data[0]))
		}
	}

	return nil
}

func (s *Signal) SampleRate() int        { return s.sampleRate }
func (s *Signal) NumChannels() int       { return len(s.data) }
func (s *Signal) Len() int               { return len(s.data[0]) }
func (s *Signal) STFTParams() STFTParams { return s.stft }

// Path is the file the signal was loaded from, if any.
func (s *Signal) Path() string { return s.path }

// Channel returns channel c. The slice aliases the signal's samples.
func (s *Signal) Channel(c int) []float64 { return s.data[c] }

// Duration in seconds.
func (s *Signal) Duration() float64 {
	return float64(s.Len()) / float64(s.sampleRate)
}

// SetSTFTParams replaces the STFT parameters.
func (s *Signal) SetSTFTParams(p STFTParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.stft = p
	return nil
}

// Data returns a copy of the planar samples.
func (s *Signal) Data() [][]float64 {
	out := make([][]float64, len(s.data))
	for c := range s.data {
		out[c] = slices.Clone(s.data[c])
	}
	return out
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	c := *s
	c.data = s.Data()
	return &c
}

// Equal reports whether both signals share sample rate, channel layout,
// STFT parameters and sample data. The source path is ignored.
func (s *Signal) Equal(o *Signal) bool {
	if s == nil || o == nil {
		return s == o
	}

	if s.sampleRate != o.sampleRate || s.stft != o.stft || len(s.data) != len(o.data) {
		return false
	}

	for c := range s.data {
		if !slices.Equal(s.data[c], o.data[c]) {
			return false
		}
	}

	return true
}

// Add returns the sample-wise sum of s and o. Both must share sample rate
// and channel count; the shorter one is zero-extended.
func (s *Signal) Add(o *Signal) (*Signal, error) {
	if s.sampleRate != o.sampleRate || s.NumChannels() != o.NumChannels() {
		return nil, fmt.Errorf("%w: %d Hz/%d ch vs %d Hz/%d ch", ErrIncompatible,
			s.sampleRate, s.NumChannels(), o.sampleRate, o.NumChannels())
	}

	length := max(s.Len(), o.Len())
	out := make([][]float64, s.NumChannels())
	for c := range out {
		out[c] = make([]float64, length)
		copy(out[c], s.data[c])
		for i, v := range o.data[c] {
			out[c][i] += v
		}
	}

	sum := &Signal{sampleRate: s.sampleRate, data: out, stft: s.stft}
	return sum, nil
}

// Source streams the signal as interleaved float32 samples.
func (s *Signal) Source() (audio.Source, error) {
	interleaved, err := audio.Interleave(s.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChannels, err)
	}

	src, err := audio.NewSliceSource(interleaved, s.sampleRate, len(s.data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChannels, err)
	}

	return src, nil
}

func (s *Signal) String() string {
	return fmt.Sprintf("Signal(%d Hz, %d ch, %d samples, %s)", s.sampleRate, s.NumChannels(), s.Len(), s.stft)
}
