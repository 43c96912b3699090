// SPDX-License-Identifier: EPL-2.0

package signal

import "errors"

var (
	// ErrInvalidSampleRate indicates a sample rate that is not positive.
	ErrInvalidSampleRate = errors.New("signal: sample rate must be positive")
	// ErrInvalidChannels indicates empty or ragged channel data.
	ErrInvalidChannels = errors.New("signal: invalid channel layout")
	// ErrInvalidSTFT indicates unusable STFT parameters.
	ErrInvalidSTFT = errors.New("signal: invalid STFT parameters")
	// ErrIncompatible indicates signals that cannot be combined.
	ErrIncompatible = errors.New("signal: incompatible signals")
)
