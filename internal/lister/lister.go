// Package lister discovers the files a batch operates on and builds the
// canonical listing handed to the editor.
package lister

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/rnbuf/internal/pathset"
)

// ErrNoPaths indicates List was called without any root path.
var ErrNoPaths = errors.New("no paths given")

// Options controls discovery.
type Options struct {
	// Recursive walks directories and lists the regular files below them
	Recursive bool

	// Absolute lists absolute paths instead of paths as given
	Absolute bool

	// IgnoreHidden drops any path with a component starting with a dot
	IgnoreHidden bool
}

// List discovers candidate paths under roots and returns them as a canonical
// (enumerated) PathSet. Without Recursive every root is listed as given and
// must exist. Paths reached twice through overlapping roots are listed once.
func List(roots []string, opts Options) (*pathset.PathSet, error) {
	if len(roots) == 0 {
		return nil, ErrNoPaths
	}

	set := pathset.New()
	add := func(path string) error {
		path = filepath.Clean(path)
		if opts.Absolute {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to get absolute path of %s: %w", path, err)
			}
			path = abs
		}
		set.Insert(path, 0)
		return nil
	}

	for _, root := range roots {
		if opts.Recursive {
			if err := walk(root, opts.IgnoreHidden, add); err != nil {
				return nil, err
			}
			continue
		}

		if _, err := os.Lstat(root); err != nil {
			return nil, err
		}
		if opts.IgnoreHidden && IsHidden(filepath.Base(filepath.Clean(root))) {
			continue
		}
		if err := add(root); err != nil {
			return nil, err
		}
	}

	return set.Enumerate(), nil
}

// walk calls add for every regular file below root, root included when it is
// itself a file. Hidden entries are judged by their path below root, so a
// root inside a dot directory is still walked.
func walk(root string, ignoreHidden bool, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ignoreHidden && path != root && IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return add(path)
	})
}

// IsHidden reports whether any component of path starts with a dot. The
// relative components "." and ".." are not hidden.
func IsHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
