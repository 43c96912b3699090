// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ik5/sepdata/transforms"
	"github.com/sirupsen/logrus"
)

// Enumerator lists the item identifiers found in a backing store.
type Enumerator[K any] interface {
	Items(source string) ([]K, error)
}

// EnumeratorFunc adapts a function to Enumerator.
type EnumeratorFunc[K any] func(source string) ([]K, error)

func (f EnumeratorFunc[K]) Items(source string) ([]K, error) { return f(source) }

// Processor loads one identifier into a raw item holding
// transforms.KeyMix and transforms.KeySources. It should load audio
// through l so the dataset settings apply.
type Processor[K any] interface {
	Process(l *Loader, id K) (transforms.Item, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc[K any] func(l *Loader, id K) (transforms.Item, error)

func (f ProcessorFunc[K]) Process(l *Loader, id K) (transforms.Item, error) { return f(l, id) }

// Dataset is a fixed, indexable collection of training examples. The
// identifiers are listed once by New; every Get loads and transforms its
// item from scratch. Get is safe for concurrent use.
type Dataset[K any] struct {
	source string
	ids    []K
	proc   Processor[K]
	loader *Loader
	cfg    Config
	log    *logrus.Logger
}

// New validates opts and enumerates source. It fails with an error
// matching ErrDataSet when the options are invalid, when enum or proc is
// missing or when enumeration fails.
func New[K any](source string, enum Enumerator[K], proc Processor[K], opts ...Option) (*Dataset[K], error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if enum == nil {
		return nil, fmt.Errorf("%w: no enumerator", ErrNotImplemented)
	}

	if proc == nil {
		return nil, fmt.Errorf("%w: no processor", ErrNotImplemented)
	}

	ids, err := enum.Items(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEnumerate, source, err)
	}

	d := &Dataset[K]{
		source: source,
		ids:    slices.Clone(ids),
		proc:   proc,
		loader: newLoader(cfg),
		cfg:    cfg,
		log:    cfg.Logger,
	}

	d.log.WithFields(logrus.Fields{
		"function":    "New",
		"source":      source,
		"items":       len(d.ids),
		"sample_rate": cfg.SampleRate,
		"channels":    cfg.NumChannels,
		"strict":      cfg.StrictSampleRate,
	}).Info("Dataset created")

	return d, nil
}

// Source is the descriptor the dataset was enumerated from.
func (d *Dataset[K]) Source() string { return d.source }

// Len is the number of items.
func (d *Dataset[K]) Len() int { return len(d.ids) }

// Loader is the loader handed to the processor.
func (d *Dataset[K]) Loader() *Loader { return d.loader }

// Config returns a copy of the dataset configuration.
func (d *Dataset[K]) Config() Config {
	cfg := d.cfg
	if cfg.STFTParams != nil {
		p := *cfg.STFTParams
		cfg.STFTParams = &p
	}
	cfg.errs = nil
	return cfg
}

// Identifier returns the identifier of item i.
func (d *Dataset[K]) Identifier(i int) (K, error) {
	if err := d.checkIndex(i); err != nil {
		var zero K
		return zero, err
	}
	return d.ids[i], nil
}

func (d *Dataset[K]) checkIndex(i int) error {
	if i < 0 || i >= len(d.ids) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(d.ids))
	}
	return nil
}

// Get loads item i and runs it through the transform. Processor errors
// keep their kind, so decode failures do not match ErrDataSet while a
// strict sample rate mismatch does. Transform failures match
// transforms.ErrTransform and never ErrDataSet.
func (d *Dataset[K]) Get(i int) (transforms.Item, error) {
	if err := d.checkIndex(i); err != nil {
		return nil, err
	}

	id := d.ids[i]
	d.log.WithFields(logrus.Fields{
		"function": "Get",
		"index":    i,
		"id":       id,
	}).Debug("Loading item")

	item, err := d.proc.Process(d.loader, id)
	if err != nil {
		return nil, fmt.Errorf("item %d (%v): %w", i, id, err)
	}

	if err := validate(item); err != nil {
		return nil, fmt.Errorf("item %d (%v): %w", i, id, err)
	}

	out, err := transforms.Apply(d.cfg.Transform, item)
	if err != nil {
		return nil, transformError(err)
	}

	return out, nil
}

func validate(item transforms.Item) error {
	if item == nil {
		return ErrNotItem
	}

	if _, err := item.Mix(); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingKey, err)
	}

	if _, err := item.Sources(); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingKey, err)
	}

	return nil
}

// All yields every item in order with its error. Iteration continues
// past failed items until the consumer stops.
func (d *Dataset[K]) All() iter.Seq2[transforms.Item, error] {
	return func(yield func(transforms.Item, error) bool) {
		for i := range d.ids {
			if !yield(d.Get(i)) {
				return
			}
		}
	}
}
