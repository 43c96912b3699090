// SPDX-License-Identifier: EPL-2.0

// Package dataset exposes audio separation data as an indexable
// collection of training examples.
//
// A Dataset pairs an Enumerator, which lists item identifiers once at
// construction, with a Processor, which loads one identifier into a raw
// item (a mix and its named sources) through a Loader. The Loader applies
// the dataset's sample rate, channel count and STFT settings to every
// signal; the configured transform then turns the raw item into a
// training example:
//
//	ds, err := dataset.New[string]("musdb/train",
//	    dataset.MixSourceFolder{}, dataset.MixSourceFolder{},
//	    dataset.WithSampleRate(16000),
//	    dataset.WithNumChannels(1),
//	    dataset.WithTransform(transforms.MagnitudeSpectrumApproximation{}),
//	)
//	if err != nil {
//	    return err
//	}
//	for i := range ds.Len() {
//	    example, err := ds.Get(i)
//	    ...
//	}
//
// Structural failures match ErrDataSet. Decode errors and transform
// errors (transforms.ErrTransform) keep their own kind.
package dataset
