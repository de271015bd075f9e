// Package fsops provides the filesystem operations used by rnbuf.
//
// Every filesystem access made while planning and applying a batch goes
// through the FS interface. Planning only ever calls the read-only methods;
// the executor and the journal are the sole callers of the mutating ones.
//
// Key features:
//   - Non-clobbering rename (fails instead of replacing an existing path)
//   - Atomic writes using temp file + rename
//   - Testable via the FS interface
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FS provides an abstraction for filesystem operations.
type FS interface {
	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// Mkdir creates a single directory.
	Mkdir(path string, perm os.FileMode) error

	// Rename moves oldpath to newpath. It fails if newpath already exists.
	Rename(oldpath, newpath string) error

	// Remove removes a file or empty directory.
	Remove(path string) error

	// IsEmptyDir reports whether path is a directory without entries.
	IsEmptyDir(path string) (bool, error)

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// AtomicWrite writes data to path atomically using temp file + rename.
	AtomicWrite(path string, data []byte, perm os.FileMode) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Lstat returns file info without following symlinks.
func (fs *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Exists reports whether path exists. A dangling symlink exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Mkdir creates a single directory.
func (fs *RealFS) Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

// Rename moves oldpath to newpath. An existing newpath is never replaced;
// the error then wraps os.ErrExist.
func (fs *RealFS) Rename(oldpath, newpath string) error {
	taken, err := fs.Exists(newpath)
	if err != nil {
		return err
	}
	if taken {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrExist}
	}
	return os.Rename(oldpath, newpath)
}

// Remove removes a file or empty directory.
func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// IsEmptyDir reports whether path is a directory without entries. A file is
// not an empty directory.
func (fs *RealFS) IsEmptyDir(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return false, err
	}

	dir, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer dir.Close()

	if _, err := dir.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// AtomicWrite replaces path with data. Readers see either the old content
// or the new, never a partial file.
func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmp.Name(), err)
	}
	return os.Rename(tmp.Name(), path)
}
