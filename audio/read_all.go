// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadFull tolerates.
const maxEmptyReads = 100

// ReadFull reads exactly len(dst) samples unless the stream ends first.
// It returns io.EOF together with the samples read when the stream ends,
// and io.ErrNoProgress when the source keeps returning nothing.
func ReadFull(src Source, dst []float32) (int, error) {
	total := 0
	empty := 0

	for total < len(dst) {
		n, err := src.ReadSamples(dst[total:])
		total += n

		if err != nil {
			return total, err
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return total, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return total, nil
}

// ReadAll drains src and returns every interleaved sample it produced.
// bufferSize is rounded down to a whole number of frames; values below
// one frame fall back to the source's BufSize.
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	samples, err := audio.ReadAll(audio.NewResampler(src, 8000), 4096)
func ReadAll(src Source, bufferSize int) ([]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	if bufferSize < channels {
		bufferSize = max(src.BufSize(), 4096)
	}
	bufferSize -= bufferSize % channels

	var out []float32
	buf := make([]float32, bufferSize)

	for {
		n, err := ReadFull(src, buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// A truncated trailing frame is dropped.
	return out[:len(out)-len(out)%channels], nil
}
