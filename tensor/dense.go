// SPDX-License-Identifier: EPL-2.0

// Package tensor is a small row-major float64 array used for transform
// outputs.
package tensor

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrShape = errors.New("invalid tensor shape")
	ErrIndex = errors.New("tensor index out of range")
)

// Dense is an N-dimensional row-major array.
type Dense struct {
	Shape []int
	Data  []float64
}

// New allocates a zero tensor of the given shape.
func New(shape ...int) (*Dense, error) {
	size, err := volume(shape)
	if err != nil {
		return nil, err
	}

	return &Dense{Shape: slices.Clone(shape), Data: make([]float64, size)}, nil
}

// FromData wraps data without copying. len(data) must match the shape.
func FromData(data []float64, shape ...int) (*Dense, error) {
	size, err := volume(shape)
	if err != nil {
		return nil, err
	}

	if len(data) != size {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShape, len(data), shape)
	}

	return &Dense{Shape: slices.Clone(shape), Data: data}, nil
}

func volume(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: no dimensions", ErrShape)
	}

	size := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension in %v", ErrShape, shape)
		}
		size *= d
	}

	return size, nil
}

// Rank is the number of dimensions.
func (t *Dense) Rank() int { return len(t.Shape) }

// Offset maps a multi-index to a position in Data.
func (t *Dense) Offset(idx ...int) (int, error) {
	if len(idx) != len(t.Shape) {
		return 0, fmt.Errorf("%w: %d indices for rank %d", ErrIndex, len(idx), len(t.Shape))
	}

	off := 0
	for d, i := range idx {
		if i < 0 || i >= t.Shape[d] {
			return 0, fmt.Errorf("%w: index %d of dimension %d (size %d)", ErrIndex, i, d, t.Shape[d])
		}
		off = off*t.Shape[d] + i
	}

	return off, nil
}

// At returns the element at idx and panics when idx is out of range.
func (t *Dense) At(idx ...int) float64 {
	off, err := t.Offset(idx...)
	if err != nil {
		panic(err)
	}
	return t.Data[off]
}

// Set stores v at idx and panics when idx is out of range.
func (t *Dense) Set(v float64, idx ...int) {
	off, err := t.Offset(idx...)
	if err != nil {
		panic(err)
	}
	t.Data[off] = v
}

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	return &Dense{Shape: slices.Clone(t.Shape), Data: slices.Clone(t.Data)}
}

// SliceAxis keeps indices [start, start+length) of axis and copies the
// result into a new tensor.
func (t *Dense) SliceAxis(axis, start, length int) (*Dense, error) {
	if axis < 0 || axis >= len(t.Shape) {
		return nil, fmt.Errorf("%w: axis %d for rank %d", ErrIndex, axis, len(t.Shape))
	}

	if start < 0 || length < 0 || start+length > t.Shape[axis] {
		return nil, fmt.Errorf("%w: [%d, %d) of axis %d (size %d)",
			ErrIndex, start, start+length, axis, t.Shape[axis])
	}

	outer := 1
	for _, d := range t.Shape[:axis] {
		outer *= d
	}
	inner := 1
	for _, d := range t.Shape[axis+1:] {
		inner *= d
	}

	shape := slices.Clone(t.Shape)
	shape[axis] = length
	out := &Dense{Shape: shape, Data: make([]float64, 0, outer*length*inner)}

	stride := t.Shape[axis] * inner
	for o := range outer {
		base := o*stride + start*inner
		out.Data = append(out.Data, t.Data[base:base+length*inner]...)
	}

	return out, nil
}

func (t *Dense) String() string {
	return fmt.Sprintf("Dense%v", t.Shape)
}

// PadAxis zero-extends axis to length. It returns a copy even when no
// padding is needed.
func (t *Dense) PadAxis(axis, length int) (*Dense, error) {
	if axis < 0 || axis >= len(t.Shape) {
		return nil, fmt.Errorf("%w: axis %d for rank %d", ErrIndex, axis, len(t.Shape))
	}

	if length < t.Shape[axis] {
		return nil, fmt.Errorf("%w: pad axis %d of size %d to %d", ErrShape, axis, t.Shape[axis], length)
	}

	outer := 1
	for _, d := range t.Shape[:axis] {
		outer *= d
	}
	inner := 1
	for _, d := range t.Shape[axis+1:] {
		inner *= d
	}

	shape := slices.Clone(t.Shape)
	shape[axis] = length
	out := &Dense{Shape: shape, Data: make([]float64, outer*length*inner)}

	src := t.Shape[axis] * inner
	dst := length * inner
	for o := range outer {
		copy(out.Data[o*dst:o*dst+src], t.Data[o*src:(o+1)*src])
	}

	return out, nil
}
