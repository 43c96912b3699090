// SPDX-License-Identifier: EPL-2.0

package sepdata

import (
	"github.com/ik5/sepdata/dataset"
)

// Open builds a dataset over the mix/source folder at root using the
// default layout: mixtures in root/mix and every other sub-folder as a
// source.
func Open(root string, opts ...dataset.Option) (*dataset.Dataset[string], error) {
	return OpenFolder(root, dataset.MixSourceFolder{}, opts...)
}

// OpenFolder is Open with an explicit folder layout.
func OpenFolder(root string, layout dataset.MixSourceFolder, opts ...dataset.Option) (*dataset.Dataset[string], error) {
	return dataset.New[string](root, layout, layout, opts...)
}
