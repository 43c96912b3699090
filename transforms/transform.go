// SPDX-License-Identifier: EPL-2.0

package transforms

import (
	"errors"
	"fmt"
	"strings"
)

// Transform maps one item to another. Implementations must not mutate
// the item they receive.
type Transform interface {
	Apply(item Item) (Item, error)
}

// Func adapts a function to Transform.
type Func func(item Item) (Item, error)

func (f Func) Apply(item Item) (Item, error) { return f(item) }

type named struct {
	name string
	fn   Func
}

// Named attaches a name to fn, used in *Error reports.
func Named(name string, fn Func) Transform {
	return named{name: name, fn: fn}
}

func (n named) Apply(item Item) (Item, error) { return n.fn(item) }
func (n named) Name() string                  { return n.name }

// Name reports how t is identified in errors: its Name method when it has
// one, its type otherwise.
func Name(t Transform) string {
	if n, ok := t.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", t)
}

// Apply runs t on item and enforces that it produced an item. A nil t
// passes item through.
func Apply(t Transform, item Item) (Item, error) {
	if t == nil {
		return item, nil
	}

	out, err := t.Apply(item)
	if err != nil {
		var te *Error
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, &Error{Name: Name(t), Err: err}
	}

	if out == nil {
		return nil, &Error{Name: Name(t), Err: ErrNilItem}
	}

	return out, nil
}

// Composition runs transforms in order, validating each step.
type Composition []Transform

// Compose chains ts. Nil entries are skipped.
func Compose(ts ...Transform) Composition {
	out := make(Composition, 0, len(ts))
	for _, t := range ts {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (c Composition) Apply(item Item) (Item, error) {
	var err error
	for _, t := range c {
		if item, err = Apply(t, item); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (c Composition) Name() string {
	names := make([]string, len(c))
	for i, t := range c {
		names[i] = Name(t)
	}
	return "Compose(" + strings.Join(names, ", ") + ")"
}
