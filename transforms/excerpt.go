// SPDX-License-Identifier: EPL-2.0

package transforms

import (
	"fmt"
	"math/rand/v2"

	"github.com/ik5/sepdata/tensor"
)

// DefaultExcerptKeys are the tensors cropped by GetExcerpt when Keys is
// empty.
var DefaultExcerptKeys = []string{
	KeyMixMagnitude,
	KeySourceMagnitudes,
	KeyIdealBinaryMask,
	KeyWeights,
}

// GetExcerpt crops the time axis (axis 1) of time-frequency tensors to
// Frames frames. Items shorter than Frames are zero-padded. Keys absent
// from the item are skipped. Offset picks the first frame given the
// largest valid offset; it defaults to a uniform random choice.
type GetExcerpt struct {
	Frames int
	Keys   []string
	Offset func(maxOffset int) int
}

func (GetExcerpt) Name() string { return "GetExcerpt" }

func (g GetExcerpt) Apply(item Item) (Item, error) {
	if g.Frames <= 0 {
		return nil, fmt.Errorf("%w: excerpt of %d frames", ErrInvalidParam, g.Frames)
	}

	keys := g.Keys
	if len(keys) == 0 {
		keys = DefaultExcerptKeys
	}

	found := make(map[string]*tensor.Dense, len(keys))
	frames := -1
	for _, key := range keys {
		if _, ok := item[key]; !ok {
			continue
		}

		t, err := item.Tensor(key)
		if err != nil {
			return nil, err
		}

		if t.Rank() < 2 {
			return nil, fmt.Errorf("%w: %q has rank %d", ErrShapeMismatch, key, t.Rank())
		}

		if frames >= 0 && t.Shape[1] != frames {
			return nil, fmt.Errorf("%w: %q has %d frames, want %d", ErrShapeMismatch, key, t.Shape[1], frames)
		}

		frames = t.Shape[1]
		found[key] = t
	}

	out := item.Clone()
	if len(found) == 0 {
		return out, nil
	}

	offset := 0
	if frames > g.Frames {
		pick := g.Offset
		if pick == nil {
			pick = func(n int) int { return rand.IntN(n + 1) }
		}

		offset = pick(frames - g.Frames)
		if offset < 0 || offset > frames-g.Frames {
			return nil, fmt.Errorf("%w: offset %d outside [0, %d]", ErrInvalidParam, offset, frames-g.Frames)
		}
	}

	for key, t := range found {
		var (
			cropped *tensor.Dense
			err     error
		)

		if frames < g.Frames {
			cropped, err = t.PadAxis(1, g.Frames)
		} else {
			cropped, err = t.SliceAxis(1, offset, g.Frames)
		}
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}

		out[key] = cropped
	}

	return out, nil
}
