// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the loaders build on.
//
// # Source Interface
//
// Every decoder and processor is a Source of interleaved float32 samples
// in [-1.0, 1.0]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources chain: a decoded file can be resampled, remapped to a different
// channel count and drained into memory in one pass:
//
//	resampled := audio.NewResampler(src, 16000)
//	stereo, _ := audio.NewChannelMapper(resampled, 2)
//	samples, err := audio.ReadAll(stereo, 4096)
//
// # Processors
//
//   - Resampler changes the sample rate with cubic interpolation and a
//     one-pole low-pass when downsampling.
//   - MonoMixer averages all channels into one.
//   - ChannelMapper truncates or duplicates channels without mixing.
//   - SliceSource serves samples already held in memory.
//
// # Format Registry
//
// Registry maps format keys (file extensions) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. Callers should
// consume the n samples returned alongside io.EOF before stopping.
package audio
