// SPDX-License-Identifier: EPL-2.0

package transforms

import (
	"fmt"
	"strings"

	"github.com/ik5/sepdata/signal"
)

// SumSources replaces every group of sources by their sum. Group i is
// named Names[i], or its members joined with "+" when Names is empty.
// Sources outside every group are kept.
type SumSources struct {
	Groups [][]string
	Names  []string
}

func (SumSources) Name() string { return "SumSources" }

func (t SumSources) groupName(i int) string {
	if len(t.Names) > 0 {
		return t.Names[i]
	}
	return strings.Join(t.Groups[i], "+")
}

func (t SumSources) validate() error {
	if len(t.Names) > 0 && len(t.Names) != len(t.Groups) {
		return fmt.Errorf("%w: %d names for %d groups", ErrInvalidParam, len(t.Names), len(t.Groups))
	}

	seen := make(map[string]bool)
	for i, g := range t.Groups {
		if len(g) == 0 {
			return fmt.Errorf("%w: group %d is empty", ErrInvalidParam, i)
		}
		for _, name := range g {
			if seen[name] {
				return fmt.Errorf("%w: source %q is in more than one group", ErrInvalidParam, name)
			}
			seen[name] = true
		}
	}

	return nil
}

func (t SumSources) Apply(item Item) (Item, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	sources, err := item.Sources()
	if err != nil {
		return nil, err
	}

	out := make(map[string]*signal.Signal, len(sources))
	grouped := make(map[string]bool)
	for _, g := range t.Groups {
		for _, name := range g {
			grouped[name] = true
		}
	}

	for name, s := range sources {
		if !grouped[name] {
			out[name] = s
		}
	}

	for i, g := range t.Groups {
		var sum *signal.Signal
		for _, name := range g {
			s, ok := sources[name]
			if !ok {
				return nil, fmt.Errorf("%w: source %q", ErrMissingKey, name)
			}

			if sum == nil {
				sum = s.Clone()
				continue
			}

			if sum, err = sum.Add(s); err != nil {
				return nil, fmt.Errorf("summing %q: %w", name, err)
			}
		}

		name := t.groupName(i)
		if _, ok := out[name]; ok {
			return nil, fmt.Errorf("%w: group name %q collides with a source", ErrInvalidParam, name)
		}
		out[name] = sum
	}

	result := item.Clone()
	result[KeySources] = out

	return result, nil
}
