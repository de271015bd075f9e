package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/rnbuf/internal/clock"
	"github.com/danieljhkim/rnbuf/internal/config"
	"github.com/danieljhkim/rnbuf/internal/editor"
	"github.com/danieljhkim/rnbuf/internal/engine"
	"github.com/danieljhkim/rnbuf/internal/fsops"
	"github.com/danieljhkim/rnbuf/internal/gitx"
	"github.com/danieljhkim/rnbuf/internal/hash"
	"github.com/danieljhkim/rnbuf/internal/journal"
	"github.com/danieljhkim/rnbuf/internal/logging"
)

// options holds the raw flag values of one invocation.
type options struct {
	editor       string
	configPath   string
	recursive    bool
	absolute     bool
	autoRename   bool
	ignoreHidden bool
	mkdir        bool
	yes          bool
	quiet        bool
	dryRun       bool
	remote       bool
	clipboard    bool
	verbose      bool
	noJournal    bool
	git          bool
}

// resolveConfig loads the config file and overlays the flags the user set
// explicitly. Flags left at their default never override the file.
func (o *options) resolveConfig(cmd *cobra.Command, paths *config.Paths) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = paths.Config
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overlay := func(name string, dst *bool, value bool) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst = value
		}
	}
	overlay("recursive", &cfg.Recursive, o.recursive)
	overlay("absolute", &cfg.Absolute, o.absolute)
	overlay("automatic-rename", &cfg.AutomaticRename, o.autoRename)
	overlay("ignore-hidden", &cfg.IgnoreHidden, o.ignoreHidden)
	overlay("mkdir", &cfg.Mkdir, o.mkdir)
	overlay("yes", &cfg.Yes, o.yes)
	overlay("quiet", &cfg.Quiet, o.quiet)
	overlay("no-journal", &cfg.Journal, !o.noJournal)
	overlay("git", &cfg.Git, o.git)

	if o.editor != "" {
		cfg.Editor = o.editor
	}

	return cfg, nil
}

// newEditor picks the editor implementation requested on the command line.
func (o *options) newEditor(cfg *config.Config) (editor.Editor, error) {
	switch {
	case o.remote:
		addr, err := editor.RemoteAddress(os.Getenv)
		if err != nil {
			return nil, err
		}
		return &editor.Remote{Address: addr}, nil
	case o.clipboard:
		return editor.NewClipboard(), nil
	default:
		return editor.NewProcess(cfg.ResolveEditor(os.Getenv)), nil
	}
}

// newEngine creates a new engine with real implementations of all dependencies.
// Renames go through git mv when cfg.Git is set; the journal always uses the
// plain filesystem.
func newEngine(cmd *cobra.Command, paths *config.Paths, cfg *config.Config, ed editor.Editor, log *logging.Logger) (*engine.Engine, error) {
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	fs := fsops.NewRealFS()
	var renamer fsops.FS = fs
	if cfg.Git {
		renamer = gitx.NewFS(fs, gitx.NewRealRepo())
	}
	return engine.New(
		renamer,
		ed,
		newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		consoleObserver{},
		journal.NewFileStore(fs, paths.Journal),
		hash.SHA256{},
		clock.System{},
		log,
	), nil
}

// bindOutput points the print helpers at the command's writer.
func bindOutput(cmd *cobra.Command) {
	stdout = cmd.OutOrStdout()
}
