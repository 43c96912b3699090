// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper changes the channel count of src without mixing.
// When narrowing, the first n channels are kept. When widening, output
// channel c is a copy of input channel c modulo the input channel count,
// so mono becomes dual-mono and stereo becomes L,R,L,R...
type ChannelMapper struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMapper(src Source, channels int) (*ChannelMapper, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return &ChannelMapper{
		src:      src,
		channels: channels,
	}, nil
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMapper) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	if frames == 0 {
		return 0, nil
	}

	if cap(m.tmp) < frames*in {
		m.tmp = make([]float32, frames*in)
	}
	m.tmp = m.tmp[:frames*in]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / in

	for f := range got {
		for c := range m.channels {
			dst[f*m.channels+c] = m.tmp[f*in+c%in]
		}
	}

	return got * m.channels, err
}
