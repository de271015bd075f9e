package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/danieljhkim/rnbuf/internal/journal"
	"github.com/danieljhkim/rnbuf/internal/pathset"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

// Run performs one batch.
//
// Algorithm steps:
//  1. List the roots into the canonical listing
//  2. Hand the listing to the editor and wait for the result
//  3. Parse the edited text
//  4. Plan activities; any planning error aborts before anything changes
//  5. Stop here for an empty plan or a dry run
//  6. Execute, confirming each activity unless Yes is set
//  7. Record what was applied in the journal, even after a failure
//
// A result is returned alongside an execution error so the caller can report
// the activities that were applied before it.
func (e *Engine) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	e.log.Debug("listing %s", strings.Join(req.Roots, ", "))
	original, err := e.list(req.Roots, req.List)
	if err != nil {
		return nil, err
	}
	if original.Len() == 0 {
		return nil, fmt.Errorf("%w: no files found under %s", ErrNoPaths, strings.Join(req.Roots, ", "))
	}

	e.log.Debug("editing %d paths", original.Len())
	edited, err := e.editor.Edit(ctx, original.Raw())
	if err != nil {
		return nil, fmt.Errorf("failed to edit listing: %w", err)
	}

	e.log.Debug("parsing edited listing")
	modified, err := pathset.Parse(edited)
	if err != nil {
		return nil, err
	}

	e.log.Debug("planning")
	plan, err := planner.NewDiffPlanner(e.fs, req.Plan).BuildPlan(original, modified)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Listed: original.Len(),
		Plan:   plan,
		DryRun: req.DryRun,
	}
	if plan.IsEmpty() || req.DryRun {
		return result, nil
	}

	e.log.Debug("executing %d activities", len(plan.Activities))
	execution, execErr := e.newExecutor(req.Yes, req.Quiet).Execute(ctx, plan)
	result.Execution = execution

	if req.Journal && len(execution.Applied) > 0 {
		if err := e.record(execution.Applied); err != nil {
			e.log.Warn("failed to record batch for undo: %v", err)
		} else {
			result.Journaled = true
		}
	}

	return result, execErr
}

// record appends the applied activities to the journal as one batch.
func (e *Engine) record(applied []AppliedActivity) error {
	workDir, err := e.getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	j, err := e.journal.Load()
	if err != nil {
		return err
	}

	batch := journal.Batch{
		Timestamp:  e.clock.Now(),
		WorkingDir: workDir,
		Entries:    make([]journal.Entry, 0, len(applied)),
	}
	for _, a := range applied {
		batch.Entries = append(batch.Entries, journal.Entry{
			Source:             a.Source,
			Destination:        a.Destination,
			Checksum:           e.checksum(a.Destination),
			CreatedDirectories: a.CreatedDirectories,
		})
	}

	j.Append(batch)
	return e.journal.Save(j)
}

// checksum fingerprints a regular file. Anything else, or a file that cannot
// be read, gets no fingerprint.
func (e *Engine) checksum(path string) string {
	info, err := e.fs.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	sum, err := e.hasher.HashFile(path)
	if err != nil {
		e.log.Warn("failed to hash %s: %v", path, err)
		return ""
	}
	return sum
}
