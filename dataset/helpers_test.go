// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"testing"

	"github.com/ik5/sepdata/internal/audiotest"
	"github.com/ik5/sepdata/internal/fixture"
	"github.com/ik5/sepdata/signal"
	"github.com/ik5/sepdata/transforms"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const nativeRate = 8000

// writeItems writes a mixed set of mono and stereo files at nativeRate
// and returns their paths in name order.
func writeItems(t *testing.T) []string {
	t.Helper()

	dir := t.TempDir()
	return []string{
		fixture.WriteWAV(t, dir, "a_mono.wav", nativeRate, 1, 800, audiotest.Sine(nativeRate, 440)),
		fixture.WriteWAV(t, dir, "b_stereo.wav", nativeRate, 2, 800, audiotest.Sine(nativeRate, 220)),
		fixture.WriteWAV(t, dir, "c_mono.wav", nativeRate, 1, 400, audiotest.Constant(0.25)),
	}
}

func staticItems(keys []string) EnumeratorFunc[string] {
	return func(string) ([]string, error) { return keys, nil }
}

// processByFile loads the identifier as both mix and its only source.
var processByFile = ProcessorFunc[string](func(l *Loader, id string) (transforms.Item, error) {
	mix, err := l.LoadFile(id)
	if err != nil {
		return nil, err
	}
	return transforms.NewItem(mix, map[string]*signal.Signal{"key": mix}), nil
})

// processByArray decodes the file itself and hands the samples to the
// loader as an array.
var processByArray = ProcessorFunc[string](func(l *Loader, id string) (transforms.Item, error) {
	raw, err := signal.Load(nil, id)
	if err != nil {
		return nil, err
	}

	mix, err := l.LoadArray(raw.Data(), raw.SampleRate())
	if err != nil {
		return nil, err
	}
	return transforms.NewItem(mix, map[string]*signal.Signal{"key": mix}), nil
})

func quietLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func warnings(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

func newDataset(t *testing.T, keys []string, proc Processor[string], opts ...Option) *Dataset[string] {
	t.Helper()

	logger, _ := quietLogger()
	ds, err := New[string]("test", staticItems(keys), proc, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return ds
}
