// Package engine runs rename batches and undoes them.
//
// The engine sequences the other packages through one batch: the lister
// builds the canonical listing, the editor hands it to the user, the edited
// text is parsed, the planner turns both listings into activities and the
// executor applies them one by one. Applied batches are recorded in the
// journal so that Undo can revert the most recent one.
package engine

import (
	"os"

	"github.com/danieljhkim/rnbuf/internal/clock"
	"github.com/danieljhkim/rnbuf/internal/editor"
	"github.com/danieljhkim/rnbuf/internal/fsops"
	"github.com/danieljhkim/rnbuf/internal/hash"
	"github.com/danieljhkim/rnbuf/internal/journal"
	"github.com/danieljhkim/rnbuf/internal/lister"
	"github.com/danieljhkim/rnbuf/internal/logging"
	"github.com/danieljhkim/rnbuf/internal/pathset"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Observer is told about every activity as it is processed. It is not
// called in quiet mode.
type Observer interface {
	// Proposed is called before an activity is confirmed or applied.
	Proposed(a planner.Activity)

	// Applied is called after an activity was carried out.
	Applied(a AppliedActivity)

	// Skipped is called when the user declined an activity.
	Skipped(a planner.Activity)
}

// ListFunc builds the canonical listing for a set of roots.
type ListFunc func(roots []string, opts lister.Options) (*pathset.PathSet, error)

// Engine orchestrates batches and undo.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	editor   editor.Editor
	prompter Prompter
	observer Observer
	journal  journal.Store
	hasher   hash.Hasher
	clock    clock.Clock
	log      *logging.Logger

	list  ListFunc
	getwd func() (string, error)
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	ed editor.Editor,
	prompter Prompter,
	observer Observer,
	store journal.Store,
	hasher hash.Hasher,
	clk clock.Clock,
	log *logging.Logger,
) *Engine {
	return &Engine{
		fs:       fs,
		editor:   ed,
		prompter: prompter,
		observer: observer,
		journal:  store,
		hasher:   hasher,
		clock:    clk,
		log:      log,
		list:     lister.List,
		getwd:    os.Getwd,
	}
}

// newExecutor creates an Executor sharing the engine's collaborators.
func (e *Engine) newExecutor(yes, quiet bool) *Executor {
	return &Executor{
		fs:       e.fs,
		dirs:     planner.NewDirectoryPlanner(e.fs),
		prompter: e.prompter,
		observer: e.observer,
		log:      e.log,
		yes:      yes,
		quiet:    quiet,
	}
}
