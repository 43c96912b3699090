// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/ik5/sepdata/internal/audiotest"
	"github.com/ik5/sepdata/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromArray_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    [][]float64
		rate    int
		wantErr error
	}{
		{"zero rate", [][]float64{{0}}, 0, ErrInvalidSampleRate},
		{"no channels", nil, 8000, ErrInvalidChannels},
		{"ragged", [][]float64{{0, 1}, {0}}, 8000, ErrInvalidChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromArray(tt.data, tt.rate)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFromArray_CopiesInput(t *testing.T) {
	t.Parallel()

	data := [][]float64{{0.1, 0.2}, {0.3, 0.4}}
	sig, err := FromArray(data, 8000)
	require.NoError(t, err)

	data[0][0] = 9
	assert.InDelta(t, 0.1, sig.Channel(0)[0], 0)
	assert.Equal(t, 2, sig.NumChannels())
	assert.Equal(t, 2, sig.Len())
	assert.Equal(t, DefaultSTFTParams(8000), sig.STFTParams())
}

func TestFromArray_InvalidSTFTOption(t *testing.T) {
	t.Parallel()

	_, err := FromArray([][]float64{{0}}, 8000, WithSTFTParams(STFTParams{WindowLength: 256, HopLength: 0, WindowType: WindowHann}))
	assert.ErrorIs(t, err, ErrInvalidSTFT)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	base, err := FromArray([][]float64{{0.1, 0.2}}, 8000)
	require.NoError(t, err)

	same := base.Clone()
	assert.True(t, base.Equal(same))

	otherRate, _ := FromArray([][]float64{{0.1, 0.2}}, 16000, WithSTFTParams(base.STFTParams()))
	assert.False(t, base.Equal(otherRate))

	otherData, _ := FromArray([][]float64{{0.1, 0.3}}, 8000)
	assert.False(t, base.Equal(otherData))

	otherSTFT := base.Clone()
	require.NoError(t, otherSTFT.SetSTFTParams(STFTParams{WindowLength: 256, HopLength: 32, WindowType: WindowTriangle}))
	assert.False(t, base.Equal(otherSTFT))

	stereo, _ := FromArray([][]float64{{0.1, 0.2}, {0.1, 0.2}}, 8000)
	assert.False(t, base.Equal(stereo))

	var missing *Signal
	assert.False(t, base.Equal(missing))
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	sig, err := FromArray([][]float64{{1, 2, 3}}, 8000)
	require.NoError(t, err)

	c := sig.Clone()
	c.Channel(0)[0] = 42
	assert.InDelta(t, 1.0, sig.Channel(0)[0], 0)
}

func TestAdd(t *testing.T) {
	t.Parallel()

	a, _ := FromArray([][]float64{{1, 2, 3}}, 8000)
	b, _ := FromArray([][]float64{{1, 1}}, 8000)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 3}, sum.Channel(0))

	c, _ := FromArray([][]float64{{1}}, 16000)
	_, err = a.Add(c)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestResample(t *testing.T) {
	t.Parallel()

	sig, err := FromArray(audiotest.Planar(2, 8000, audiotest.Sine(8000, 200)), 8000)
	require.NoError(t, err)

	out, err := Resample(sig, 4000)
	require.NoError(t, err)

	assert.Equal(t, 4000, out.SampleRate())
	assert.Equal(t, 2, out.NumChannels())
	assert.InDelta(t, 4000, out.Len(), 2)
	assert.Equal(t, sig.STFTParams(), out.STFTParams())

	same, err := Resample(sig, 8000)
	require.NoError(t, err)
	assert.True(t, sig.Equal(same))

	_, err = Resample(sig, 0)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

func TestRemixAndDownmix(t *testing.T) {
	t.Parallel()

	stereo, err := FromArray([][]float64{{0.5, 0.5}, {-0.25, -0.25}}, 8000)
	require.NoError(t, err)

	quad, err := Remix(stereo, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, quad.NumChannels())
	assert.Equal(t, quad.Channel(0), quad.Channel(2))
	assert.Equal(t, quad.Channel(1), quad.Channel(3))

	mono, err := Remix(stereo, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, mono.Channel(0))

	avg, err := Downmix(stereo, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.125, 0.125}, avg.Channel(0), 1e-6)

	_, err = Remix(stereo, 0)
	assert.ErrorIs(t, err, ErrInvalidChannels)
}

func TestRemix_KeepsFullPrecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       [][]float64
		channels int
		want     [][]float64
	}{
		{"mono to stereo", [][]float64{{0.1, 0.3}}, 2, [][]float64{{0.1, 0.3}, {0.1, 0.3}}},
		{"stereo to three", [][]float64{{0.1, 0.3}, {0.7, -0.9}}, 3, [][]float64{{0.1, 0.3}, {0.7, -0.9}, {0.1, 0.3}}},
		{"stereo to mono", [][]float64{{0.1, 0.3}, {0.7, -0.9}}, 1, [][]float64{{0.1, 0.3}}},
		{"same count", [][]float64{{0.1}, {0.2}}, 2, [][]float64{{0.1}, {0.2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig, err := FromArray(tt.in, 8000, WithPath("x.wav"))
			require.NoError(t, err)

			out, err := Remix(sig, tt.channels)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Data())
			assert.Equal(t, sig.STFTParams(), out.STFTParams())
			assert.Equal(t, "x.wav", out.Path())

			out.Channel(0)[0] = 42
			assert.Equal(t, tt.in[0][0], sig.Channel(0)[0])
		})
	}
}

func TestLoad_MatchesSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := fixture.WriteWAV(t, dir, "tone.wav", 8000, 1, 800, audiotest.Sine(8000, 440))

	sig, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, 8000, sig.SampleRate())
	assert.Equal(t, 1, sig.NumChannels())
	assert.Equal(t, 800, sig.Len())
	assert.Equal(t, path, sig.Path())
	assert.InDelta(t, 0.1, sig.Duration(), 1e-9)

	again, err := Load(nil, path)
	require.NoError(t, err)
	assert.True(t, sig.Equal(again))
}

func TestWriteWAV_RoundTrip(t *testing.T) {
	t.Parallel()

	sig, err := FromArray([][]float64{{0.5, -0.5, 0.25}, {0, 0.75, -1}}, 16000)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.wav")
	require.NoError(t, sig.WriteWAV(path))

	back, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, 16000, back.SampleRate())
	for c := range 2 {
		assert.InDeltaSlice(t, sig.Channel(c), back.Channel(c), 1e-3)
	}
}

func TestDefaultSTFTParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate   int
		window int
	}{
		{8000, 512},
		{16000, 1024},
		{44100, 4096},
	}

	for _, tt := range tests {
		p := DefaultSTFTParams(tt.rate)
		assert.Equal(t, tt.window, p.WindowLength, "rate %d", tt.rate)
		assert.Equal(t, tt.window/4, p.HopLength)
		assert.Equal(t, WindowSqrtHann, p.WindowType)
		assert.NoError(t, p.Validate())
	}
}

func TestWindow(t *testing.T) {
	t.Parallel()

	hann, err := Window(WindowHann, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5}, hann, 1e-12)

	tri, err := Window(WindowTriangle, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5}, tri, 1e-12)

	hann8, err := Window(WindowHann, 8)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.146447, 0.5, 0.853553, 1, 0.853553, 0.5, 0.146447}, hann8, 1e-6)

	rect, err := Window(WindowRectangular, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, rect)

	sq, err := Window(WindowSqrtHann, 4)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.5), sq[1], 1e-12)

	_, err = Window("kaiser", 4)
	assert.ErrorIs(t, err, ErrInvalidSTFT)

	_, err = Window(WindowHann, 0)
	assert.ErrorIs(t, err, ErrInvalidSTFT)
}

func TestSTFT_SinePeak(t *testing.T) {
	t.Parallel()

	const rate = 8000
	p := STFTParams{WindowLength: 256, HopLength: 64, WindowType: WindowHann}

	// 1000 Hz lands exactly on bin 1000/(8000/256) = 32.
	sig, err := FromArray(audiotest.Planar(1, 1024, audiotest.Sine(rate, 1000)), rate, WithSTFTParams(p))
	require.NoError(t, err)

	sp, err := sig.STFT()
	require.NoError(t, err)

	assert.Equal(t, 129, sp.Bins)
	assert.Equal(t, FrameCount(1024, p), sp.Frames)
	assert.Equal(t, 13, sp.Frames)
	assert.Equal(t, 1, sp.Channels)

	mag := sp.Magnitude()
	require.Len(t, mag, sp.Bins*sp.Frames)

	peak := 0
	for f := range sp.Bins {
		if mag[sp.index(f, 0, 0)] > mag[sp.index(peak, 0, 0)] {
			peak = f
		}
	}
	assert.Equal(t, 32, peak)

	phase := sp.Phase()
	assert.Len(t, phase, len(mag))
}

func TestSTFT_NonPowerOfTwoWindow(t *testing.T) {
	t.Parallel()

	p := STFTParams{WindowLength: 300, HopLength: 100, WindowType: WindowHamming}
	sig, err := FromArray(audiotest.Planar(2, 500, audiotest.Constant(0.5)), 8000, WithSTFTParams(p))
	require.NoError(t, err)

	sp, err := sig.STFT()
	require.NoError(t, err)

	assert.Equal(t, 257, sp.Bins)
	assert.Equal(t, 3, sp.Frames)
	assert.Equal(t, 2, sp.Channels)

	// DC bin of a constant equals amplitude times the window sum.
	win, _ := Window(WindowHamming, 300)
	sum := 0.0
	for _, w := range win {
		sum += w
	}
	assert.InDelta(t, 0.5*sum, real(sp.At(0, 0, 1)), 1e-2)
}
