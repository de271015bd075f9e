package engine

import (
	"github.com/danieljhkim/rnbuf/internal/journal"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

// AppliedActivity is an activity that was carried out.
type AppliedActivity struct {
	planner.Activity

	// CreatedDirectories are the directories actually created for it, which
	// can be fewer than planned when an earlier activity made them
	CreatedDirectories []string
}

// Execution is what the executor got through.
type Execution struct {
	// Applied activities in order
	Applied []AppliedActivity

	// Skipped activities the user declined
	Skipped []planner.Activity

	// StrayDirectories were created for an activity that then failed
	StrayDirectories []string
}

// RunResult represents the outcome of a batch.
type RunResult struct {
	// Listed is the number of paths shown to the user
	Listed int

	// Plan is the generated plan
	Plan *planner.Plan

	// DryRun is true when nothing was executed on purpose
	DryRun bool

	// Execution is nil when nothing was executed
	Execution *Execution

	// Journaled is true when the batch was recorded for undo
	Journaled bool
}

// UndoResult represents the outcome of an undo.
type UndoResult struct {
	// Batch is the batch that was undone
	Batch journal.Batch

	// Reverted entries, in the order they were reverted
	Reverted []journal.Entry

	// RemovedDirectories are created directories removed again
	RemovedDirectories []string

	// Declined is true when the user answered no
	Declined bool
}
