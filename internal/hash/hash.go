// Package hash fingerprints file contents.
//
// Every rename recorded in the journal carries the SHA-256 of the file it
// moved. Undo compares that fingerprint with whatever now sits at the
// destination and refuses to move a file that has been replaced since.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher fingerprints the file at path.
type Hasher interface {
	HashFile(path string) (string, error)
}

// SHA256 hashes file contents with SHA-256.
type SHA256 struct{}

// HashFile returns the hex encoded SHA-256 of the file at path.
func (SHA256) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Matches reports whether the file at path still has fingerprint want. An
// empty want matches anything, which is how entries recorded without a
// fingerprint are treated.
func Matches(h Hasher, path, want string) (bool, error) {
	if want == "" {
		return true, nil
	}
	got, err := h.HashFile(path)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

// Table is an in-memory Hasher for tests. Paths without an entry hash to
// their own name.
type Table map[string]string

// HashFile looks path up in the table.
func (t Table) HashFile(path string) (string, error) {
	if h, ok := t[path]; ok {
		return h, nil
	}
	return "hash:" + path, nil
}
