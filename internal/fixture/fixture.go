// SPDX-License-Identifier: EPL-2.0

// Package fixture writes audio files for tests.
package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sepdata/formats/wav"
	"github.com/ik5/sepdata/internal/audiotest"
)

// WriteWAV renders frames of waveform as a 16-bit WAV at dir/name, creating
// parent directories, and returns the file path.
func WriteWAV(tb testing.TB, dir, name string, sampleRate, channels, frames int, waveform audiotest.Waveform) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("creating fixture dir: %v", err)
	}

	samples := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			samples[f*channels+c] = waveform(f, c)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating fixture: %v", err)
	}
	defer out.Close()

	if err := wav.Encode(out, sampleRate, channels, samples); err != nil {
		tb.Fatalf("encoding fixture: %v", err)
	}

	return path
}
