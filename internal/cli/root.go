package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/rnbuf/internal/config"
	"github.com/danieljhkim/rnbuf/internal/engine"
	"github.com/danieljhkim/rnbuf/internal/lister"
	"github.com/danieljhkim/rnbuf/internal/logging"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

var (
	version = "dev"

	// Colors for help output sections
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// SetVersion sets the version reported by --version and the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// NewRootCmd builds the rnbuf command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "rnbuf [flags] <path>...",
		Version: version,
		Short:   "Rename files by editing their paths in a text editor",
		Long: `rnbuf lists the given paths in your editor, one per line. Edit the lines,
save and quit, and every changed line becomes a rename of the file that was
listed there. Lines that were not changed are left alone, even when moved.

Files cannot be created or deleted this way: the edited listing must keep the
same number of lines.`,
		Example: `  rnbuf *.jpg
  rnbuf -R --ignore-hidden src
  rnbuf --mkdir --automatic-rename -y photos/
  rnbuf undo`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetHelpFunc(helpFunc)

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "Config file (default $RNBUF_CONFIG or ~/.rnbuf/config.yaml)")
	persistent.BoolVarP(&opts.yes, "yes", "y", false, "Apply every change without asking")
	persistent.BoolVarP(&opts.quiet, "quiet", "q", false, "Only print errors and questions")
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, "Print diagnostics to stderr")
	persistent.BoolVar(&opts.git, "git", false, "Rename git-tracked files with git mv")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.editor, "editor", "e", "", "Editor command (default $RNBUF_EDITOR, $VISUAL, $EDITOR)")
	flags.BoolVarP(&opts.recursive, "recursive", "R", false, "List the files below directory arguments")
	flags.BoolVarP(&opts.absolute, "absolute", "a", false, "List absolute paths")
	flags.BoolVar(&opts.autoRename, "automatic-rename", false, "Pick a free name when a destination is taken")
	flags.BoolVar(&opts.ignoreHidden, "ignore-hidden", false, "Skip dot files and dot directories")
	flags.BoolVar(&opts.mkdir, "mkdir", false, "Create missing destination directories")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Show the planned changes without applying them")
	flags.BoolVar(&opts.remote, "remote", false, "Edit in the Neovim instance this shell runs in ($NVIM)")
	flags.BoolVar(&opts.clipboard, "clipboard", false, "Edit through the system clipboard")
	flags.BoolVar(&opts.noJournal, "no-journal", false, "Do not record this batch for undo")
	rootCmd.MarkFlagsMutuallyExclusive("remote", "clipboard")
	rootCmd.MarkFlagsMutuallyExclusive("remote", "editor")
	rootCmd.MarkFlagsMutuallyExclusive("clipboard", "editor")

	rootCmd.AddCommand(newUndoCmd(opts))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the rnbuf version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	rootCmd.AddCommand(newCompletionCmd(rootCmd))

	return rootCmd
}

// runBatch is the root command: list, edit, plan and apply.
func runBatch(cmd *cobra.Command, opts *options, args []string) error {
	if len(args) == 0 {
		return lister.ErrNoPaths
	}
	bindOutput(cmd)

	paths, err := config.DefaultPaths()
	if err != nil {
		return fmt.Errorf("failed to get config paths: %w", err)
	}
	cfg, err := opts.resolveConfig(cmd, paths)
	if err != nil {
		return err
	}

	log := logging.New(cmd.ErrOrStderr(), opts.verbose)
	ed, err := opts.newEditor(cfg)
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd, paths, cfg, ed, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := &engine.RunRequest{
		Roots: args,
		List: lister.Options{
			Recursive:    cfg.Recursive,
			Absolute:     cfg.Absolute,
			IgnoreHidden: cfg.IgnoreHidden,
		},
		Plan: planner.Options{
			AutomaticRename: cfg.AutomaticRename,
			Mkdir:           cfg.Mkdir,
		},
		Yes:     cfg.Yes,
		Quiet:   cfg.Quiet,
		DryRun:  opts.dryRun,
		Journal: cfg.Journal,
	}

	result, err := eng.Run(ctx, req)
	if result == nil {
		return err
	}

	if result.DryRun && !cfg.Quiet {
		for _, a := range result.Plan.Activities {
			PrintActivity(a)
		}
	}
	if !cfg.Quiet {
		_, _ = fmt.Fprint(stdout, FormatRunSummary(result, err))
		if cfg.Journal && result.Execution != nil && len(result.Execution.Applied) > 0 && !result.Journaled {
			PrintWarning("this batch was not recorded and cannot be undone")
		}
	}
	return err
}

func newUndoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent batch of renames",
		Long: `Revert the most recent batch of renames recorded in the journal.

Every renamed file must still be where the batch put it, with the same
content, and every original name must still be free. Otherwise nothing is
reverted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindOutput(cmd)

			paths, err := config.DefaultPaths()
			if err != nil {
				return fmt.Errorf("failed to get config paths: %w", err)
			}
			cfg, err := opts.resolveConfig(cmd, paths)
			if err != nil {
				return err
			}

			log := logging.New(cmd.ErrOrStderr(), opts.verbose)
			eng, err := newEngine(cmd, paths, cfg, nil, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			result, err := eng.Undo(ctx, &engine.UndoRequest{Yes: cfg.Yes, Quiet: cfg.Quiet})
			if result != nil && !cfg.Quiet {
				_, _ = fmt.Fprint(stdout, FormatUndoSummary(result))
			}
			return err
		},
	}
}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate the autocompletion script for the specified shell",
		Long: `Generate the autocompletion script for rnbuf for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}

	generators := []struct {
		shell string
		gen   func(io.Writer) error
	}{
		{"bash", rootCmd.GenBashCompletion},
		{"zsh", rootCmd.GenZshCompletion},
		{"fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }},
		{"powershell", rootCmd.GenPowerShellCompletionWithDesc},
	}
	for _, g := range generators {
		gen := g.gen
		completionCmd.AddCommand(&cobra.Command{
			Use:                   g.shell,
			Short:                 "Generate the autocompletion script for " + g.shell,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return gen(cmd.OutOrStdout())
			},
		})
	}
	return completionCmd
}

// helpFunc prints help with coloured section titles.
func helpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	} else if cmd.Short != "" {
		help.WriteString(cmd.Short)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	if cmd.Example != "" {
		help.WriteString(sectionTitleColor.Sprint("Examples:"))
		help.WriteString("\n")
		help.WriteString(cmd.Example)
		help.WriteString("\n\n")
	}

	hasCommands := false
	for _, c := range cmd.Commands() {
		if c.Hidden || !c.IsAvailableCommand() {
			continue
		}
		if !hasCommands {
			help.WriteString(sectionTitleColor.Sprint("Commands:"))
			help.WriteString("\n")
			hasCommands = true
		}
		fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
	}
	if hasCommands {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if hasCommands {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
