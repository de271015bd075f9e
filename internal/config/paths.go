// Package config manages rnbuf configuration and filesystem paths.
//
// The state root holds the journal used by undo and the optional config
// file. It defaults to ~/.rnbuf and can be moved with RNBUF_ROOT.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by rnbuf.
type Paths struct {
	// Root is the base directory for all rnbuf data (default: ~/.rnbuf)
	Root string

	// Journal is the history of applied batches
	Journal string

	// Config is the path to the config file
	Config string
}

// DefaultPaths returns the default paths for rnbuf.
// Paths can be overridden with environment variables:
// - RNBUF_ROOT: Override the root directory
// - RNBUF_CONFIG: Override the config file location
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("RNBUF_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".rnbuf")
	}

	configPath := os.Getenv("RNBUF_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(root, "config.yaml")
	}

	return &Paths{
		Root:    root,
		Journal: filepath.Join(root, "journal.json"),
		Config:  configPath,
	}, nil
}

// EnsureDirectories creates the root directory if it doesn't exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
