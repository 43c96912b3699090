// SPDX-License-Identifier: EPL-2.0

// Package signal holds decoded audio in memory.
//
// A Signal carries planar float64 samples, a sample rate and the STFT
// parameters used when transforms analyse it. Signals come from files
// (Load), from arrays (FromArray) or from any audio.Source (FromSource):
//
//	sig, err := signal.Load(nil, "mix.wav")
//	if err != nil {
//	    return err
//	}
//	mono, err := signal.Downmix(sig, 1)
//	spectrogram, err := mono.STFT()
//
// Resample, Remix and Downmix return new signals and keep the STFT
// parameters of their input. Equal ignores the source path.
package signal
