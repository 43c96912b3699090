// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"

	"github.com/ik5/sepdata/transforms"
)

// ErrDataSet is matched by every structural dataset failure. Decode
// errors and transform errors are reported as they are and do not match
// it.
var ErrDataSet = errors.New("dataset")

var (
	ErrNotImplemented     = kind("enumerator or processor not implemented")
	ErrEnumerate          = kind("enumerating items failed")
	ErrNotItem            = kind("processor returned no item")
	ErrMissingKey         = kind("item is missing mix or sources")
	ErrSampleRateMismatch = kind("sample rate differs from the dataset's")
	ErrIndexOutOfRange    = kind("index out of range")
	ErrInvalidOption      = kind("invalid option")
)

func kind(msg string) error {
	return fmt.Errorf("%w: %s", ErrDataSet, msg)
}

// transformError keeps a transform failure out of the ErrDataSet kind.
// A transform that returns a dataset error has its cause flattened to
// text; the transform name and ErrTransform still match.
func transformError(err error) error {
	if !errors.Is(err, ErrDataSet) {
		return err
	}

	var te *transforms.Error
	if errors.As(err, &te) {
		return &transforms.Error{Name: te.Name, Err: errors.New(te.Err.Error())}
	}

	return &transforms.Error{Name: "transform", Err: errors.New(err.Error())}
}
