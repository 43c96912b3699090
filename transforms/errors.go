// SPDX-License-Identifier: EPL-2.0

package transforms

import (
	"errors"
	"fmt"
)

var (
	// ErrTransform is matched by every failure raised while running a
	// transform pipeline.
	ErrTransform = errors.New("transform failed")

	ErrNilItem       = errors.New("transform returned no item")
	ErrMissingKey    = errors.New("item key missing")
	ErrKeyType       = errors.New("item key has unexpected type")
	ErrShapeMismatch = errors.New("spectrogram shapes differ")
	ErrNoSources     = errors.New("item has no sources")
	ErrInvalidParam  = errors.New("invalid transform parameter")
)

// Error reports which transform broke the pipeline contract. It matches
// ErrTransform and whatever Err wraps; dataset.Dataset flattens an Err
// that carries a dataset error so a transform failure is never reported
// as a dataset failure.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transform %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match ErrTransform.
func (e *Error) Is(target error) bool { return target == ErrTransform }
