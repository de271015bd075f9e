package planner

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/danieljhkim/rnbuf/internal/fsops"
)

// DirectoryPlanner works out and creates the ancestor directories a
// destination path needs. The final path component is always treated as the
// file itself and never created.
type DirectoryPlanner struct {
	fs fsops.FS
}

// NewDirectoryPlanner creates a new DirectoryPlanner.
func NewDirectoryPlanner(fs fsops.FS) *DirectoryPlanner {
	return &DirectoryPlanner{fs: fs}
}

// AllAncestorDirsExist returns true if every ancestor directory of path exists.
func (d *DirectoryPlanner) AllAncestorDirsExist(path string) (bool, error) {
	missing, err := d.MissingAncestorDirs(path)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// MissingAncestorDirs returns the ancestor directories of path that do not
// exist, outermost first. Once one ancestor is missing every deeper one is
// missing too, so the walk stops probing at the first gap.
func (d *DirectoryPlanner) MissingAncestorDirs(path string) ([]string, error) {
	dirs := ancestorDirs(path)
	for i, dir := range dirs {
		exists, err := d.fs.Exists(dir)
		if err != nil {
			return nil, err
		}
		if !exists {
			return dirs[i:], nil
		}
	}
	return nil, nil
}

// CreateMissingAncestorDirs creates every missing ancestor directory of path
// and returns the ones it actually created, outermost first. On failure the
// directories created so far are returned along with the error.
func (d *DirectoryPlanner) CreateMissingAncestorDirs(path string) ([]string, error) {
	var created []string
	for _, dir := range ancestorDirs(path) {
		exists, err := d.fs.Exists(dir)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := d.fs.Mkdir(dir, 0755); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return created, err
		}
		created = append(created, dir)
	}
	return created, nil
}

// ancestorDirs lists the directories above path from the outermost one down
// to its parent. Relative paths stop below "." and absolute ones below the
// filesystem root.
func ancestorDirs(path string) []string {
	var dirs []string
	dir := filepath.Dir(path)
	for dir != "." && filepath.Dir(dir) != dir {
		dirs = append(dirs, dir)
		dir = filepath.Dir(dir)
	}

	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
