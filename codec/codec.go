// SPDX-License-Identifier: EPL-2.0

// Package codec wires the format decoders into a registry keyed by file
// extension and opens audio files through it.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/sepdata/audio"
	"github.com/ik5/sepdata/formats/aiff"
	"github.com/ik5/sepdata/formats/mp3"
	"github.com/ik5/sepdata/formats/vorbis"
	"github.com/ik5/sepdata/formats/wav"
)

var ErrUnsupportedFormat = errors.New("codec: unsupported audio format")

// NewRegistry returns a registry with every built-in decoder registered
// under its usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}

// Supported reports whether reg has a decoder for path's extension.
func Supported(reg *audio.Registry, path string) bool {
	_, ok := reg.Get(filepath.Ext(path))
	return ok
}

// DecodeFile reads the whole file at path into memory and decodes it with
// the decoder registered for its extension. The returned Source holds no
// OS resources.
func DecodeFile(reg *audio.Registry, path string) (audio.Source, error) {
	dec, ok := reg.Get(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return src, nil
}
