// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ik5/sepdata/codec"
	"github.com/ik5/sepdata/signal"
	"github.com/ik5/sepdata/transforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MalformedEnumerator(t *testing.T) {
	t.Parallel()

	logger, _ := quietLogger()
	boom := errors.New("not a list")

	tests := []struct {
		name    string
		enum    Enumerator[string]
		proc    Processor[string]
		wantErr error
	}{
		{"failing enumerator", EnumeratorFunc[string](func(string) ([]string, error) { return nil, boom }), processByFile, ErrEnumerate},
		{"no enumerator", nil, processByFile, ErrNotImplemented},
		{"no processor", staticItems(nil), nil, ErrNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ds, err := New("test", tt.enum, tt.proc, WithLogger(logger))
			assert.Nil(t, ds)
			assert.ErrorIs(t, err, ErrDataSet)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{"zero sample rate", WithSampleRate(0)},
		{"negative channels", WithNumChannels(-1)},
		{"bad stft", WithSTFTParams(signal.STFTParams{WindowLength: 256, HopLength: 512, WindowType: signal.WindowHann})},
		{"unknown window", WithSTFTParams(signal.STFTParams{WindowLength: 256, HopLength: 64, WindowType: "kaiser"})},
		{"nil resample", WithResampleFunc(nil)},
		{"nil remix", WithRemixFunc(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, _ := quietLogger()
			_, err := New[string]("test", staticItems(nil), processByFile, tt.opt, WithLogger(logger))
			assert.ErrorIs(t, err, ErrDataSet)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestGet_MalformedProcessor(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)
	mix, err := signal.Load(nil, keys[0])
	require.NoError(t, err)

	tests := []struct {
		name    string
		item    transforms.Item
		wantErr error
	}{
		{"nil item", nil, ErrNotItem},
		{"no mix", transforms.Item{transforms.KeySources: map[string]*signal.Signal{}}, ErrMissingKey},
		{"no sources", transforms.Item{transforms.KeyMix: mix}, ErrMissingKey},
		{"mix of wrong type", transforms.Item{transforms.KeyMix: "audio", transforms.KeySources: map[string]*signal.Signal{}}, ErrMissingKey},
		{"sources of wrong type", transforms.Item{transforms.KeyMix: mix, transforms.KeySources: []*signal.Signal{mix}}, ErrMissingKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			proc := ProcessorFunc[string](func(*Loader, string) (transforms.Item, error) { return tt.item, nil })
			ds := newDataset(t, keys, proc)

			_, err := ds.Get(0)
			assert.ErrorIs(t, err, ErrDataSet)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, transforms.ErrTransform)
		})
	}
}

func TestGet_MalformedTransform(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)
	bad := transforms.Named("bad", func(transforms.Item) (transforms.Item, error) { return nil, nil })

	ds := newDataset(t, keys, processByFile, WithTransform(bad))

	_, err := ds.Get(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, transforms.ErrTransform)
	assert.NotErrorIs(t, err, ErrDataSet)

	var te *transforms.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "bad", te.Name)
}

func TestGet_TransformReturningDatasetError(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)

	tests := []struct {
		name      string
		transform transforms.Transform
		wantName  string
		wantMsg   string
	}{
		{
			name: "plain wrap",
			transform: transforms.Named("lookup", func(transforms.Item) (transforms.Item, error) {
				return nil, fmt.Errorf("lookup: %w", ErrIndexOutOfRange)
			}),
			wantName: "lookup",
			wantMsg:  "index out of range",
		},
		{
			name: "inside a composition",
			transform: transforms.Compose(
				transforms.Named("identity", func(item transforms.Item) (transforms.Item, error) {
					return item, nil
				}),
				transforms.Named("nested", func(transforms.Item) (transforms.Item, error) {
					return nil, ErrDataSet
				}),
			),
			wantName: "nested",
			wantMsg:  "dataset",
		},
		{
			name: "already a transform error",
			transform: transforms.Named("typed", func(transforms.Item) (transforms.Item, error) {
				return nil, &transforms.Error{Name: "typed", Err: ErrMissingKey}
			}),
			wantName: "typed",
			wantMsg:  "item is missing mix or sources",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ds := newDataset(t, keys, processByFile, WithTransform(tt.transform))

			_, err := ds.Get(0)
			require.Error(t, err)
			assert.ErrorIs(t, err, transforms.ErrTransform)
			assert.NotErrorIs(t, err, ErrDataSet)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var te *transforms.Error
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantName, te.Name)
		})
	}
}

func TestTransformError_KeepsOtherCauses(t *testing.T) {
	t.Parallel()

	cause := &transforms.Error{Name: "x", Err: transforms.ErrMissingKey}
	err := transformError(cause)
	assert.Same(t, cause, err)
	assert.ErrorIs(t, err, transforms.ErrMissingKey)

	flat := transformError(&transforms.Error{Name: "y", Err: ErrEnumerate})
	assert.ErrorIs(t, flat, transforms.ErrTransform)
	assert.NotErrorIs(t, flat, ErrEnumerate)
	assert.Equal(t, "transform y: dataset: enumerating items failed", flat.Error())
}

func TestLen(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)

	ds := newDataset(t, keys, processByFile)
	assert.Equal(t, len(keys), ds.Len())

	empty := newDataset(t, nil, processByFile)
	assert.Equal(t, 0, empty.Len())
	_, err := empty.Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestNew_CopiesIdentifiers(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)
	ds := newDataset(t, keys, processByFile)

	first := keys[0]
	keys[0] = "changed"

	id, err := ds.Identifier(0)
	require.NoError(t, err)
	assert.Equal(t, first, id)

	_, err = ds.Identifier(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, err, ErrDataSet)
}

func TestGet_RoundTrip(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)

	for name, proc := range map[string]Processor[string]{"file": processByFile, "array": processByArray} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ds := newDataset(t, keys, proc)

			for i, key := range keys {
				want, err := signal.Load(nil, key)
				require.NoError(t, err)

				item, err := ds.Get(i)
				require.NoError(t, err)

				got, err := item.Mix()
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "item %d: %s != %s", i, got, want)
			}
		})
	}
}

func TestGet_IndexOutOfRange(t *testing.T) {
	t.Parallel()

	ds := newDataset(t, writeItems(t), processByFile)

	for _, i := range []int{-1, 3, 100} {
		_, err := ds.Get(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
		assert.ErrorIs(t, err, ErrDataSet)
	}
}

func TestGet_DecodeErrorsKeepTheirKind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keys := []string{filepath.Join(dir, "missing.wav"), filepath.Join(dir, "notes.txt")}
	ds := newDataset(t, keys, processByFile)

	_, err := ds.Get(0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDataSet)

	_, err = ds.Get(1)
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
	assert.NotErrorIs(t, err, ErrDataSet)
}

func TestGet_SpectrumApproximationKeys(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)

	tests := []struct {
		name string
		proc Processor[string]
		t    transforms.Transform
	}{
		{"msa by file", processByFile, transforms.MagnitudeSpectrumApproximation{}},
		{"msa by array", processByArray, transforms.MagnitudeSpectrumApproximation{}},
		{"psa by file", processByFile, transforms.NewPhaseSensitiveSpectrumApproximation()},
		{"psa by array", processByArray, transforms.NewPhaseSensitiveSpectrumApproximation()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ds := newDataset(t, keys, tt.proc, WithTransform(tt.t))

			out, err := ds.Get(0)
			require.NoError(t, err)
			assert.Contains(t, out, transforms.KeySourceMagnitudes)
			assert.Contains(t, out, transforms.KeyMixMagnitude)
			assert.Contains(t, out, transforms.KeyIdealBinaryMask)
		})
	}
}

func TestConfigurationMatrix(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)

	native := make([]int, len(keys))
	for i, key := range keys {
		sig, err := signal.Load(nil, key)
		require.NoError(t, err)
		native[i] = sig.NumChannels()
	}

	triangle := signal.STFTParams{WindowLength: 256, HopLength: 32, WindowType: signal.WindowTriangle}

	for _, stft := range []*signal.STFTParams{&triangle, nil} {
		for _, rate := range []int{4000, 0} {
			for _, channels := range []int{1, 2, 0} {
				for _, strict := range []bool{false, true} {
					name := fmt.Sprintf("stft=%v/rate=%d/channels=%d/strict=%t", stft != nil, rate, channels, strict)

					t.Run(name, func(t *testing.T) {
						t.Parallel()

						logger, hook := quietLogger()
						opts := []Option{WithLogger(logger), WithStrictSampleRate(strict)}
						if stft != nil {
							opts = append(opts, WithSTFTParams(*stft))
						}
						if rate > 0 {
							opts = append(opts, WithSampleRate(rate))
						}
						if channels > 0 {
							opts = append(opts, WithNumChannels(channels))
						}

						ds, err := New[string]("test", staticItems(keys), processByArray, opts...)
						require.NoError(t, err)

						if strict && rate > 0 {
							for i := range ds.Len() {
								_, err := ds.Get(i)
								assert.ErrorIs(t, err, ErrDataSet)
								assert.ErrorIs(t, err, ErrSampleRateMismatch)
							}
							return
						}

						var rates []int
						var params []signal.STFTParams

						for i := range ds.Len() {
							hook.Reset()

							item, err := ds.Get(i)
							require.NoError(t, err)

							mix, err := item.Mix()
							require.NoError(t, err)

							if rate > 0 {
								assert.Equal(t, rate, mix.SampleRate())
							}
							if stft != nil {
								assert.Equal(t, *stft, mix.STFTParams())
							}
							if channels > 0 {
								assert.Equal(t, channels, mix.NumChannels())
								if native[i] < channels {
									assert.Equal(t, 1, warnings(hook), "item %d should warn on upmix", i)
								} else {
									assert.Zero(t, warnings(hook), "item %d", i)
								}
							} else {
								assert.Equal(t, native[i], mix.NumChannels())
								assert.Zero(t, warnings(hook))
							}

							rates = append(rates, mix.SampleRate())
							params = append(params, mix.STFTParams())
						}

						for i := range rates {
							assert.Equal(t, rates[0], rates[i])
							assert.Equal(t, params[0], params[i])
						}
					})
				}
			}
		}
	}
}

func TestGet_Concurrent(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)
	ds := newDataset(t, keys, processByFile,
		WithSampleRate(4000), WithNumChannels(2),
		WithTransform(transforms.MagnitudeSpectrumApproximation{}))

	want := make([]*signal.Signal, ds.Len())
	for i := range want {
		item, err := ds.Get(i)
		require.NoError(t, err)
		want[i], _ = item.Mix()
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8*ds.Len())

	for range 8 {
		for i := range ds.Len() {
			wg.Go(func() {
				item, err := ds.Get(i)
				if err != nil {
					errs <- err
					return
				}
				if mix, _ := item.Mix(); !mix.Equal(want[i]) {
					errs <- fmt.Errorf("item %d differs between accesses", i)
				}
			})
		}
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	keys := writeItems(t)
	ds := newDataset(t, keys, processByFile)

	count := 0
	for item, err := range ds.All() {
		require.NoError(t, err)
		assert.Contains(t, item, transforms.KeyMix)
		count++
	}
	assert.Equal(t, len(keys), count)

	count = 0
	for range ds.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestConfig_IsACopy(t *testing.T) {
	t.Parallel()

	p := signal.STFTParams{WindowLength: 256, HopLength: 32, WindowType: signal.WindowTriangle}
	ds := newDataset(t, nil, processByFile, WithSTFTParams(p), WithSampleRate(4000))

	cfg := ds.Config()
	assert.Equal(t, 4000, cfg.SampleRate)
	require.NotNil(t, cfg.STFTParams)
	assert.Equal(t, p, *cfg.STFTParams)

	cfg.STFTParams.HopLength = 1
	assert.Equal(t, 32, ds.Config().STFTParams.HopLength)
}
