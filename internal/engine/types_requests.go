package engine

import (
	"github.com/danieljhkim/rnbuf/internal/lister"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

// RunRequest represents a request to run one rename batch.
type RunRequest struct {
	// Roots are the paths given on the command line
	Roots []string

	// List controls how roots are expanded into the listing
	List lister.Options

	// Plan controls collision and directory handling
	Plan planner.Options

	// Yes applies every activity without asking
	Yes bool

	// Quiet suppresses activity reporting
	Quiet bool

	// DryRun stops after planning
	DryRun bool

	// Journal records the applied activities for undo
	Journal bool
}

// UndoRequest represents a request to revert the most recent batch.
type UndoRequest struct {
	// Yes reverts without asking
	Yes bool

	// Quiet suppresses reporting of the individual reverts
	Quiet bool
}
