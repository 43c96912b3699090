// SPDX-License-Identifier: EPL-2.0

package transforms

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/ik5/sepdata/tensor"
)

const weightsEpsilon = 1e-6

// MagnitudeWeights adds KeyWeights, the square root of each bin's share
// of the total mix magnitude scaled by the number of time-frequency bins.
// Loud bins weigh more in a training loss.
type MagnitudeWeights struct{}

func (MagnitudeWeights) Name() string { return "MagnitudeWeights" }

func (MagnitudeWeights) Apply(item Item) (Item, error) {
	mag, err := item.Tensor(KeyMixMagnitude)
	if err != nil {
		return nil, err
	}

	if mag.Rank() < 2 {
		return nil, ErrShapeMismatch
	}

	bins := float64(mag.Shape[0] * mag.Shape[1])
	total := vecmath.Sum(mag.Data)

	weights := make([]float64, len(mag.Data))
	vecmath.ScaleBlock(weights, mag.Data, bins/(total+weightsEpsilon))
	for i, w := range weights {
		weights[i] = math.Sqrt(w)
	}

	w, err := tensor.FromData(weights, mag.Shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	out := item.Clone()
	out[KeyWeights] = w

	return out, nil
}
