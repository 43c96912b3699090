// SPDX-License-Identifier: EPL-2.0

// Command sepinspect loads a mix/source folder through a dataset and
// reports every item. With -export it also writes each normalized mix and
// source as a 16-bit WAV file.
//
//	root/
//	  mix/song1.wav
//	  vocals/song1.wav
//	  drums/song1.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/sepdata"
	"github.com/ik5/sepdata/dataset"
	"github.com/ik5/sepdata/signal"
	"github.com/ik5/sepdata/transforms"
	"github.com/sirupsen/logrus"
)

type cliConfig struct {
	root        string
	mixFolder   string
	sources     string
	sampleRate  int
	channels    int
	strict      bool
	average     bool
	window      int
	hop         int
	windowType  string
	transform   string
	excerpt     int
	export      string
	logLevel    string
	jsonLogging bool
}

func parseFlags(args []string) (*cliConfig, error) {
	cfg := &cliConfig{}
	fs := flag.NewFlagSet("sepinspect", flag.ContinueOnError)

	fs.StringVar(&cfg.root, "root", "", "Dataset folder holding mix/ and one folder per source")
	fs.StringVar(&cfg.mixFolder, "mix-folder", dataset.DefaultMixFolder, "Name of the mixture folder")
	fs.StringVar(&cfg.sources, "sources", "", "Comma separated source folders (default: every other folder)")

	fs.IntVar(&cfg.sampleRate, "sample-rate", 0, "Target sample rate (0 keeps the native rate)")
	fs.IntVar(&cfg.channels, "channels", 0, "Target channel count (0 keeps the native count)")
	fs.BoolVar(&cfg.strict, "strict", false, "Fail on items whose sample rate differs instead of resampling")
	fs.BoolVar(&cfg.average, "average", false, "Average channels when reducing to mono")

	fs.IntVar(&cfg.window, "window", 0, "STFT window length (0 uses the default for the sample rate)")
	fs.IntVar(&cfg.hop, "hop", 0, "STFT hop length (default: window/4)")
	fs.StringVar(&cfg.windowType, "window-type", string(signal.WindowSqrtHann), "STFT window type")

	fs.StringVar(&cfg.transform, "transform", "none", "Transform to apply: none, msa or psa")
	fs.IntVar(&cfg.excerpt, "excerpt", 0, "Crop spectral outputs to this many frames (0 disables)")
	fs.StringVar(&cfg.export, "export", "", "Write normalized signals into this folder")

	fs.StringVar(&cfg.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.jsonLogging, "json", false, "Log as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.root == "" {
		return nil, fmt.Errorf("-root is required")
	}

	return cfg, nil
}

func (c *cliConfig) pipeline() (transforms.Transform, error) {
	var spectral transforms.Transform

	switch strings.ToLower(c.transform) {
	case "none", "":
		if c.excerpt > 0 {
			return nil, fmt.Errorf("-excerpt needs a spectral transform")
		}
		return nil, nil
	case "msa":
		spectral = transforms.MagnitudeSpectrumApproximation{}
	case "psa":
		spectral = transforms.NewPhaseSensitiveSpectrumApproximation()
	default:
		return nil, fmt.Errorf("unknown transform %q", c.transform)
	}

	if c.excerpt > 0 {
		return transforms.Compose(spectral, transforms.MagnitudeWeights{}, transforms.GetExcerpt{Frames: c.excerpt}), nil
	}

	return transforms.Compose(spectral, transforms.MagnitudeWeights{}), nil
}

func (c *cliConfig) options(logger *logrus.Logger) ([]dataset.Option, error) {
	opts := []dataset.Option{
		dataset.WithLogger(logger),
		dataset.WithStrictSampleRate(c.strict),
	}

	if c.sampleRate != 0 {
		opts = append(opts, dataset.WithSampleRate(c.sampleRate))
	}

	if c.channels != 0 {
		opts = append(opts, dataset.WithNumChannels(c.channels))
	}

	if c.average {
		opts = append(opts, dataset.WithRemixFunc(dataset.AverageRemix))
	}

	if c.window != 0 {
		hop := c.hop
		if hop == 0 {
			hop = max(c.window/4, 1)
		}
		opts = append(opts, dataset.WithSTFTParams(signal.STFTParams{
			WindowLength: c.window,
			HopLength:    hop,
			WindowType:   signal.WindowType(c.windowType),
		}))
	}

	t, err := c.pipeline()
	if err != nil {
		return nil, err
	}

	return append(opts, dataset.WithTransform(t)), nil
}

func newLogger(c *cliConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.logLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if c.jsonLogging {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger, nil
}

func describe(item transforms.Item) string {
	var b strings.Builder

	if mix, err := item.Mix(); err == nil {
		fmt.Fprintf(&b, "mix=%s", mix)
	}

	if names, err := item.SourceNames(); err == nil {
		fmt.Fprintf(&b, " sources=%v", names)
	}

	for _, key := range []string{transforms.KeyMixMagnitude, transforms.KeySourceMagnitudes, transforms.KeyIdealBinaryMask, transforms.KeyWeights} {
		if t, err := item.Tensor(key); err == nil {
			fmt.Fprintf(&b, " %s=%v", key, t.Shape)
		}
	}

	return b.String()
}

func export(dir, id string, item transforms.Item) error {
	name := strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

	mix, err := item.Mix()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(dir, dataset.DefaultMixFolder), 0o755); err != nil {
		return err
	}

	if err := mix.WriteWAV(filepath.Join(dir, dataset.DefaultMixFolder, name+".wav")); err != nil {
		return err
	}

	sources, err := item.Sources()
	if err != nil {
		return err
	}

	for source, sig := range sources {
		if err := os.MkdirAll(filepath.Join(dir, source), 0o755); err != nil {
			return err
		}

		if err := sig.WriteWAV(filepath.Join(dir, source, name+".wav")); err != nil {
			return err
		}
	}

	return nil
}

func run(c *cliConfig, logger *logrus.Logger) error {
	opts, err := c.options(logger)
	if err != nil {
		return err
	}

	folder := dataset.MixSourceFolder{MixFolder: c.mixFolder}
	if c.sources != "" {
		folder.SourceNames = strings.Split(c.sources, ",")
	}

	ds, err := sepdata.OpenFolder(c.root, folder, opts...)
	if err != nil {
		return err
	}

	failed := 0
	for i := range ds.Len() {
		id, _ := ds.Identifier(i)

		item, err := ds.Get(i)
		if err != nil {
			failed++
			logger.WithFields(logrus.Fields{
				"function": "run",
				"item":     id,
				"error":    err.Error(),
			}).Error("Failed to load item")
			continue
		}

		fmt.Printf("%d\t%s\t%s\n", i, filepath.Base(id), describe(item))

		if c.export != "" {
			if err := export(c.export, id, item); err != nil {
				return fmt.Errorf("exporting %s: %w", id, err)
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"function": "run",
		"items":    ds.Len(),
		"failed":   failed,
	}).Info("Inspection finished")

	if failed > 0 {
		return fmt.Errorf("%d of %d items failed", failed, ds.Len())
	}

	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sepinspect: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sepinspect: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("sepinspect failed")
		os.Exit(1)
	}
}
