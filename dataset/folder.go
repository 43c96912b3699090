// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/sepdata/audio"
	"github.com/ik5/sepdata/codec"
	"github.com/ik5/sepdata/signal"
	"github.com/ik5/sepdata/transforms"
)

// FolderEnumerator lists, in name order, the decodable audio files
// directly inside a folder. A nil Registry means the built-in codecs.
type FolderEnumerator struct {
	Registry *audio.Registry
}

func (e FolderEnumerator) Items(folder string) ([]string, error) {
	reg := e.Registry
	if reg == nil {
		reg = codec.NewRegistry()
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !codec.Supported(reg, entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(folder, entry.Name()))
	}

	return paths, nil
}

// DefaultMixFolder holds the mixtures of a MixSourceFolder.
const DefaultMixFolder = "mix"

// MixSourceFolder is a folder laid out as
//
//	root/mix/<name>
//	root/<source>/<name>
//
// Items are the mixture paths. Process loads the mixture and every source
// file of the same name; sources without that file are left out.
type MixSourceFolder struct {
	// MixFolder is a path relative to root, such as "mix" or "audio/mix".
	// It defaults to DefaultMixFolder.
	MixFolder string
	// SourceNames defaults to every other sub-folder of root.
	SourceNames []string
	Registry    *audio.Registry
}

func (m MixSourceFolder) mixFolder() (string, error) {
	if m.MixFolder == "" {
		return DefaultMixFolder, nil
	}

	folder := filepath.Clean(m.MixFolder)
	if !filepath.IsLocal(folder) {
		return "", fmt.Errorf("mix folder %q is not inside the dataset root", m.MixFolder)
	}

	return folder, nil
}

// mixTop is the sub-folder of root that holds the mixtures, which is
// never a source.
func (m MixSourceFolder) mixTop() (string, error) {
	folder, err := m.mixFolder()
	if err != nil {
		return "", err
	}

	top, _, _ := strings.Cut(filepath.ToSlash(folder), "/")
	return top, nil
}

// rootOf recovers the dataset root from the path of one of its mixtures.
func (m MixSourceFolder) rootOf(mixPath string) (string, error) {
	folder, err := m.mixFolder()
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(filepath.Clean(mixPath))
	if dir == folder {
		return ".", nil
	}

	root, ok := strings.CutSuffix(dir, string(filepath.Separator)+folder)
	if !ok {
		return "", fmt.Errorf("%q is not inside mix folder %q", mixPath, folder)
	}
	if root == "" {
		root = string(filepath.Separator)
	}

	return root, nil
}

func (m MixSourceFolder) Items(root string) ([]string, error) {
	folder, err := m.mixFolder()
	if err != nil {
		return nil, err
	}

	return FolderEnumerator{Registry: m.Registry}.Items(filepath.Join(root, folder))
}

// Sources lists the source names used for root.
func (m MixSourceFolder) Sources(root string) ([]string, error) {
	if len(m.SourceNames) > 0 {
		return slices.Clone(m.SourceNames), nil
	}

	top, err := m.mixTop()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != top {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

func (m MixSourceFolder) Process(l *Loader, mixPath string) (transforms.Item, error) {
	root, err := m.rootOf(mixPath)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(mixPath)

	mix, err := l.LoadFile(mixPath)
	if err != nil {
		return nil, err
	}

	names, err := m.Sources(root)
	if err != nil {
		return nil, err
	}

	sources := make(map[string]*signal.Signal, len(names))
	for _, source := range names {
		path := filepath.Join(root, source, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		sig, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		sources[source] = sig
	}

	return transforms.NewItem(mix, sources), nil
}
