// SPDX-License-Identifier: EPL-2.0

// Package transforms turns raw dataset items into training examples.
//
// An Item is a map holding at least the mix signal (KeyMix) and the named
// source signals (KeySources). A Transform maps one Item to a new one;
// Apply and Compose enforce that every step returns an item and report
// violations as *Error values matching ErrTransform:
//
//	pipeline := transforms.Compose(
//	    transforms.SumSources{Groups: [][]string{{"drums", "bass"}}},
//	    transforms.MagnitudeSpectrumApproximation{},
//	    transforms.MagnitudeWeights{},
//	    transforms.GetExcerpt{Frames: 400},
//	)
//	example, err := transforms.Apply(pipeline, item)
//
// Spectral transforms store their outputs as *tensor.Dense values laid out
// (frequency, time, channel[, source]).
package transforms
