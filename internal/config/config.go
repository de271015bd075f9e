package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds every option of a run. It is resolved once at startup from
// defaults, the config file and command-line flags, then passed down.
type Config struct {
	// Editor is the command used to edit the listing
	Editor string `yaml:"editor"`

	// Recursive lists the files below directory arguments
	Recursive bool `yaml:"recursive"`

	// Absolute lists absolute paths
	Absolute bool `yaml:"absolute"`

	// AutomaticRename autonames destinations that are already taken
	AutomaticRename bool `yaml:"automatic_rename"`

	// IgnoreHidden skips dot files and dot directories
	IgnoreHidden bool `yaml:"ignore_hidden"`

	// Mkdir creates missing destination directories
	Mkdir bool `yaml:"mkdir"`

	// Yes applies every activity without asking
	Yes bool `yaml:"yes"`

	// Quiet suppresses informational output; errors are always reported
	Quiet bool `yaml:"quiet"`

	// Journal records applied batches so they can be undone
	Journal bool `yaml:"journal"`

	// Git renames tracked files with git mv
	Git bool `yaml:"git"`
}

// DefaultEditor is used when neither configuration nor environment name one.
func DefaultEditor() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Journal: true,
	}
}

// Load returns the defaults overlaid with the config file at path. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// editorEnvVars are consulted in order when no editor is configured.
var editorEnvVars = []string{"RNBUF_EDITOR", "VISUAL", "EDITOR"}

// ResolveEditor returns the editor command to use. An explicitly configured
// editor wins, then the environment, then DefaultEditor.
func (c *Config) ResolveEditor(getenv func(string) string) string {
	if c.Editor != "" {
		return c.Editor
	}
	for _, name := range editorEnvVars {
		if v := getenv(name); v != "" {
			return v
		}
	}
	return DefaultEditor()
}
