// SPDX-License-Identifier: EPL-2.0

// Package sepdata loads audio source separation datasets.
//
// It turns folders of mixtures and isolated sources into indexable
// collections of training examples with a fixed sample rate, channel
// count and STFT configuration.
//
// # Quick Start
//
// A folder laid out as root/mix/<song> plus root/<source>/<song> opens
// with Open:
//
//	ds, err := sepdata.Open("musdb/train",
//	    dataset.WithSampleRate(16000),
//	    dataset.WithNumChannels(1),
//	    dataset.WithTransform(transforms.MagnitudeSpectrumApproximation{}),
//	)
//	if err != nil {
//	    return err
//	}
//
//	example, err := ds.Get(0)
//	mask := example[transforms.KeyIdealBinaryMask].(*tensor.Dense)
//
// # Packages
//
//   - dataset: Dataset, Loader, enumerators and processors, options
//   - transforms: the item pipeline and the spectral transforms
//   - signal: in-memory audio, STFT, resampling and remixing
//   - audio: streaming sources, resampler, mixers, decoder registry
//   - codec and formats/*: WAV, AIFF, MP3 and Ogg Vorbis decoding
//   - tensor: dense arrays produced by transforms
//
// # Custom Datasets
//
// Any store can back a dataset by implementing dataset.Enumerator to list
// identifiers and dataset.Processor to load one identifier into a mix and
// its sources through the dataset's Loader.
package sepdata
