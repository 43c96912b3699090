// SPDX-License-Identifier: EPL-2.0

package transforms

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ik5/sepdata/signal"
	"github.com/ik5/sepdata/tensor"
)

// Keys shared by processors and transforms.
const (
	KeyMix              = "mix"
	KeySources          = "sources"
	KeySourceNames      = "source_names"
	KeyMixMagnitude     = "mix_magnitude"
	KeySourceMagnitudes = "source_magnitudes"
	KeyIdealBinaryMask  = "ideal_binary_mask"
	KeyWeights          = "weights"
)

// Item is one dataset example. Processors fill KeyMix with a
// *signal.Signal and KeySources with a map[string]*signal.Signal;
// transforms add whatever else a model consumes.
type Item map[string]any

// NewItem builds a raw item from a mix and its sources.
func NewItem(mix *signal.Signal, sources map[string]*signal.Signal) Item {
	return Item{KeyMix: mix, KeySources: sources}
}

// Clone returns a shallow copy; values are shared.
func (it Item) Clone() Item {
	return maps.Clone(it)
}

// Mix returns the mix signal.
func (it Item) Mix() (*signal.Signal, error) {
	v, ok := it[KeyMix]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, KeyMix)
	}

	mix, ok := v.(*signal.Signal)
	if !ok || mix == nil {
		return nil, fmt.Errorf("%w: %q is %T, want *signal.Signal", ErrKeyType, KeyMix, v)
	}

	return mix, nil
}

// Sources returns the named source signals.
func (it Item) Sources() (map[string]*signal.Signal, error) {
	v, ok := it[KeySources]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, KeySources)
	}

	sources, ok := v.(map[string]*signal.Signal)
	if !ok || sources == nil {
		return nil, fmt.Errorf("%w: %q is %T, want map[string]*signal.Signal", ErrKeyType, KeySources, v)
	}

	for name, s := range sources {
		if s == nil {
			return nil, fmt.Errorf("%w: source %q is nil", ErrKeyType, name)
		}
	}

	return sources, nil
}

// SourceNames returns the source names in the order used along the last
// axis of source tensors.
func (it Item) SourceNames() ([]string, error) {
	sources, err := it.Sources()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(sources)), nil
}

// Tensor returns the tensor stored under key.
func (it Item) Tensor(key string) (*tensor.Dense, error) {
	v, ok := it[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}

	t, ok := v.(*tensor.Dense)
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: %q is %T, want *tensor.Dense", ErrKeyType, key, v)
	}

	return t, nil
}
