// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"

	"github.com/ik5/sepdata/audio"
	"github.com/ik5/sepdata/signal"
	"github.com/ik5/sepdata/transforms"
	"github.com/sirupsen/logrus"
)

// ResampleFunc converts a signal to the dataset sample rate.
type ResampleFunc func(s *signal.Signal, rate int) (*signal.Signal, error)

// RemixFunc converts a signal to the dataset channel count.
type RemixFunc func(s *signal.Signal, channels int) (*signal.Signal, error)

var (
	// CubicResample is the default ResampleFunc.
	CubicResample ResampleFunc = signal.Resample

	// DuplicateRemix repeats channels when widening and drops the last
	// ones when narrowing. It is the default RemixFunc.
	DuplicateRemix RemixFunc = signal.Remix

	// AverageRemix averages to mono when narrowing to one channel and
	// behaves like DuplicateRemix otherwise.
	AverageRemix RemixFunc = signal.Downmix
)

// Config is the dataset configuration captured at construction. Zero
// SampleRate and NumChannels, and a nil STFTParams, leave the loaded
// signals as they are.
type Config struct {
	Transform        transforms.Transform
	STFTParams       *signal.STFTParams
	SampleRate       int
	NumChannels      int
	StrictSampleRate bool

	Resample ResampleFunc
	Remix    RemixFunc
	Registry *audio.Registry
	Logger   *logrus.Logger

	errs []error
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a configuration that applies no transform and no
// normalization.
func DefaultConfig() Config {
	return Config{
		Resample: CubicResample,
		Remix:    DuplicateRemix,
		Logger:   logrus.StandardLogger(),
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports every invalid option value.
func (c Config) Validate() error {
	if err := errors.Join(c.errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	return nil
}

func (c *Config) invalid(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

// WithTransform sets the pipeline applied to every item.
func WithTransform(t transforms.Transform) Option {
	return func(cfg *Config) {
		cfg.Transform = t
	}
}

// WithSTFTParams assigns p to every loaded signal.
func WithSTFTParams(p signal.STFTParams) Option {
	return func(cfg *Config) {
		if err := p.Validate(); err != nil {
			cfg.invalid("stft params: %w", err)
			return
		}
		cfg.STFTParams = &p
	}
}

// WithSampleRate converts every loaded signal to rate.
func WithSampleRate(rate int) Option {
	return func(cfg *Config) {
		if rate <= 0 {
			cfg.invalid("sample rate %d", rate)
			return
		}
		cfg.SampleRate = rate
	}
}

// WithNumChannels converts every loaded signal to channels.
func WithNumChannels(channels int) Option {
	return func(cfg *Config) {
		if channels <= 0 {
			cfg.invalid("channel count %d", channels)
			return
		}
		cfg.NumChannels = channels
	}
}

// WithStrictSampleRate makes a sample rate mismatch an error instead of a
// reason to resample.
func WithStrictSampleRate(strict bool) Option {
	return func(cfg *Config) {
		cfg.StrictSampleRate = strict
	}
}

// WithResampleFunc replaces the resampling policy.
func WithResampleFunc(fn ResampleFunc) Option {
	return func(cfg *Config) {
		if fn == nil {
			cfg.invalid("nil resample func")
			return
		}
		cfg.Resample = fn
	}
}

// WithRemixFunc replaces the channel conversion policy.
func WithRemixFunc(fn RemixFunc) Option {
	return func(cfg *Config) {
		if fn == nil {
			cfg.invalid("nil remix func")
			return
		}
		cfg.Remix = fn
	}
}

// WithRegistry sets the decoders used for files. The built-in codecs are
// used otherwise.
func WithRegistry(reg *audio.Registry) Option {
	return func(cfg *Config) {
		cfg.Registry = reg
	}
}

// WithLogger sets the logger for construction, access and warnings.
func WithLogger(l *logrus.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}
