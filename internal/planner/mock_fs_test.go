package planner

import (
	"os"
	"time"
)

// mockFS is a mock implementation of fsops.FS for testing
type mockFS struct {
	exists    map[string]bool
	existsErr map[string]error
	mkdirErr  map[string]error
	mkdirs    []string
}

func newMockFS(paths ...string) *mockFS {
	m := &mockFS{
		exists:    make(map[string]bool),
		existsErr: make(map[string]error),
		mkdirErr:  make(map[string]error),
	}
	for _, p := range paths {
		m.exists[p] = true
	}
	return m
}

func (m *mockFS) Exists(path string) (bool, error) {
	if err, ok := m.existsErr[path]; ok {
		return false, err
	}
	return m.exists[path], nil
}

func (m *mockFS) Mkdir(path string, perm os.FileMode) error {
	if err, ok := m.mkdirErr[path]; ok {
		return err
	}
	if m.exists[path] {
		return &os.PathError{Op: "mkdir", Path: path, Err: os.ErrExist}
	}
	m.exists[path] = true
	m.mkdirs = append(m.mkdirs, path)
	return nil
}

func (m *mockFS) Lstat(path string) (os.FileInfo, error) {
	if m.exists[path] {
		return &mockFileInfo{name: path}, nil
	}
	return nil, os.ErrNotExist
}

// Unused methods for mockFS
func (m *mockFS) Rename(oldpath, newpath string) error                         { return nil }
func (m *mockFS) Remove(path string) error                                     { return nil }
func (m *mockFS) IsEmptyDir(path string) (bool, error)                         { return false, nil }
func (m *mockFS) ReadFile(path string) ([]byte, error)                         { return nil, nil }
func (m *mockFS) AtomicWrite(path string, data []byte, perm os.FileMode) error { return nil }

// mockFileInfo is a simple implementation of os.FileInfo
type mockFileInfo struct {
	name  string
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return 0 }
func (m *mockFileInfo) Mode() os.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }
