// Package editor hands the listing to the user for editing and returns the
// text they saved.
//
// Three editors are available: Process runs an editor command on a temporary
// file, Remote opens the file in an already running Neovim, and Clipboard
// round-trips the listing through the system clipboard. All of them block
// until the user is done.
package editor

import (
	"context"
	"fmt"
	"os"
)

// Editor edits a buffer and returns the result verbatim.
type Editor interface {
	Edit(ctx context.Context, buffer string) (string, error)
}

// writeTemp stores buffer in a new temporary file and returns its path.
func writeTemp(buffer string) (string, error) {
	f, err := os.CreateTemp("", "rnbuf-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.WriteString(buffer); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return path, nil
}

// readBack reads the edited file and removes it.
func readBack(path string) (string, error) {
	defer func() {
		_ = os.Remove(path)
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited listing: %w", err)
	}
	return string(data), nil
}
