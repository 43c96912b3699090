// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// SliceSource serves interleaved samples held in memory.
type SliceSource struct {
	data       []float32
	sampleRate int
	channels   int
	offset     int
}

// NewSliceSource wraps interleaved samples. A trailing partial frame is ignored.
func NewSliceSource(data []float32, sampleRate, channels int) (*SliceSource, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	return &SliceSource{
		data:       data[:len(data)-len(data)%channels],
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }
func (s *SliceSource) Close() error    { return nil }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.offset >= len(s.data) {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.channels
	n := copy(dst[:want], s.data[s.offset:])
	s.offset += n

	if s.offset >= len(s.data) {
		return n, io.EOF
	}

	return n, nil
}

// Interleave converts planar channel data into one interleaved slice.
func Interleave(planar [][]float64) ([]float32, error) {
	if len(planar) == 0 {
		return nil, ErrInvalidChannels
	}

	frames := len(planar[0])
	for _, ch := range planar[1:] {
		if len(ch) != frames {
			return nil, ErrRaggedChannels
		}
	}

	channels := len(planar)
	out := make([]float32, frames*channels)
	for c, ch := range planar {
		for i, v := range ch {
			out[i*channels+c] = float32(v)
		}
	}

	return out, nil
}

// Deinterleave splits interleaved samples into planar channels.
func Deinterleave(data []float32, channels int) ([][]float64, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	frames := len(data) / channels
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}

	for f := range frames {
		for c := range channels {
			out[c][f] = float64(data[f*channels+c])
		}
	}

	return out, nil
}
