// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"os"

	"github.com/ik5/sepdata/audio"
	"github.com/ik5/sepdata/codec"
	"github.com/ik5/sepdata/formats/wav"
)

// Load decodes the file at path through reg, or the built-in codecs when
// reg is nil.
func Load(reg *audio.Registry, path string, opts ...Option) (*Signal, error) {
	if reg == nil {
		reg = codec.NewRegistry()
	}

	src, err := codec.DecodeFile(reg, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	sig, err := FromSource(src, append([]Option{WithPath(path)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return sig, nil
}

// WriteWAV stores the signal as a 16-bit PCM WAV file.
func (s *Signal) WriteWAV(path string) error {
	interleaved, err := audio.Interleave(s.data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChannels, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := wav.Encode(f, s.sampleRate, len(s.data), interleaved); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
