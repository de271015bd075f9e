package gitx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/rnbuf/internal/fsops"
)

// FS is an fsops.FS whose Rename goes through git mv when the source is
// tracked and both paths are in the same work tree. Every other operation,
// and renames of untracked files, use the wrapped FS.
type FS struct {
	fsops.FS
	repo Repo
}

// NewFS wraps base.
func NewFS(base fsops.FS, repo Repo) *FS {
	return &FS{FS: base, repo: repo}
}

// Rename moves oldpath to newpath without replacing an existing newpath.
func (f *FS) Rename(oldpath, newpath string) error {
	exists, err := f.FS.Exists(newpath)
	if err != nil {
		return err
	}
	if exists {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrExist}
	}

	absOld, err := filepath.Abs(oldpath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	absNew, err := filepath.Abs(newpath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := f.repo.Discover(filepath.Dir(absOld))
	if errors.Is(err, ErrNotInRepo) {
		return f.FS.Rename(oldpath, newpath)
	}
	if err != nil {
		return err
	}
	if !within(root, absNew) {
		return f.FS.Rename(oldpath, newpath)
	}

	tracked, err := f.repo.IsTracked(root, absOld)
	if err != nil {
		return err
	}
	if !tracked {
		return f.FS.Rename(oldpath, newpath)
	}

	return f.repo.Move(root, absOld, absNew)
}
