// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"

	"github.com/ik5/sepdata/audio"
	"github.com/ik5/sepdata/codec"
	"github.com/ik5/sepdata/signal"
	"github.com/sirupsen/logrus"
)

// Loader turns files, arrays and streams into signals that follow the
// dataset's sample rate, channel and STFT settings. It is immutable and
// safe for concurrent use.
type Loader struct {
	cfg      Config
	registry *audio.Registry
	log      *logrus.Logger
}

// NewLoader builds a standalone loader from opts.
func NewLoader(opts ...Option) (*Loader, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newLoader(cfg), nil
}

func newLoader(cfg Config) *Loader {
	reg := cfg.Registry
	if reg == nil {
		reg = codec.NewRegistry()
	}
	return &Loader{cfg: cfg, registry: reg, log: cfg.Logger}
}

// Registry returns the decoders used by LoadFile.
func (l *Loader) Registry() *audio.Registry { return l.registry }

// LoadFile decodes path and normalizes the result. Decode failures are
// returned as they are.
func (l *Loader) LoadFile(path string) (*signal.Signal, error) {
	sig, err := signal.Load(l.registry, path)
	if err != nil {
		return nil, err
	}
	return l.normalize(sig)
}

// LoadArray builds a signal from planar samples and normalizes it.
func (l *Loader) LoadArray(data [][]float64, sampleRate int) (*signal.Signal, error) {
	sig, err := signal.FromArray(data, sampleRate)
	if err != nil {
		return nil, err
	}
	return l.normalize(sig)
}

// LoadSource drains src and normalizes the result. src is not closed.
func (l *Loader) LoadSource(src audio.Source) (*signal.Signal, error) {
	sig, err := signal.FromSource(src)
	if err != nil {
		return nil, err
	}
	return l.normalize(sig)
}

func (l *Loader) normalize(sig *signal.Signal) (*signal.Signal, error) {
	var err error

	if rate := l.cfg.SampleRate; rate > 0 && sig.SampleRate() != rate {
		if l.cfg.StrictSampleRate {
			return nil, fmt.Errorf("%w: %s is %d Hz, want %d Hz",
				ErrSampleRateMismatch, describe(sig), sig.SampleRate(), rate)
		}

		if sig, err = l.cfg.Resample(sig, rate); err != nil {
			return nil, fmt.Errorf("resampling to %d Hz: %w", rate, err)
		}
	}

	if want := l.cfg.NumChannels; want > 0 && sig.NumChannels() != want {
		if sig.NumChannels() < want {
			l.log.WithFields(logrus.Fields{
				"function": "Loader.normalize",
				"signal":   describe(sig),
				"channels": sig.NumChannels(),
				"want":     want,
			}).Warn("Signal has fewer channels than requested, upmixing")
		}

		if sig, err = l.cfg.Remix(sig, want); err != nil {
			return nil, fmt.Errorf("remixing to %d channels: %w", want, err)
		}
	}

	params := signal.DefaultSTFTParams(sig.SampleRate())
	if l.cfg.STFTParams != nil {
		params = *l.cfg.STFTParams
	}

	if err := sig.SetSTFTParams(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	return sig, nil
}

func describe(sig *signal.Signal) string {
	if p := sig.Path(); p != "" {
		return p
	}
	return "array"
}
