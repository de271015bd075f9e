package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/rnbuf/internal/hash"
	"github.com/danieljhkim/rnbuf/internal/journal"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

// revert is one journal entry resolved for undo.
type revert struct {
	entry journal.Entry
	from  string
	to    string
}

// Undo reverts the most recent batch in the journal.
//
// Algorithm steps:
//  1. Load the newest batch
//  2. Verify every destination still holds the file that was moved there and
//     every source is free; any difference fails with ErrUndoDrift
//  3. Ask once for the whole batch unless Yes is set
//  4. Rename back in reverse order, removing directories the batch created
//     once they are empty again
//  5. Drop the batch from the journal, or shrink it to the entries not yet
//     reverted when a rename fails
func (e *Engine) Undo(ctx context.Context, req *UndoRequest) (*UndoResult, error) {
	j, err := e.journal.Load()
	if err != nil {
		return nil, err
	}
	batch, ok := j.Last()
	if !ok || len(batch.Entries) == 0 {
		return nil, ErrNothingToUndo
	}

	reverts, err := e.verifyBatch(batch)
	if err != nil {
		return nil, err
	}

	result := &UndoResult{
		Batch:              batch,
		Reverted:           []journal.Entry{},
		RemovedDirectories: []string{},
	}

	if !req.Quiet {
		for _, r := range reverts {
			e.observer.Proposed(undoActivity(r.entry))
		}
	}

	if !req.Yes {
		question := fmt.Sprintf("Undo %d rename(s) from %s?", len(reverts), batch.Timestamp.Local().Format("2006-01-02 15:04:05"))
		ok, err := e.prompter.Confirm(question)
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			result.Declined = true
			return result, nil
		}
	}

	for i, r := range reverts {
		if err := ctx.Err(); err != nil {
			return result, e.keepUnreverted(j, reverts[i:], err)
		}

		if err := e.fs.Rename(r.from, r.to); err != nil {
			return result, e.keepUnreverted(j, reverts[i:], err)
		}
		e.log.Debug("reverted %s -> %s", r.from, r.to)
		result.Reverted = append(result.Reverted, r.entry)

		removed := e.removeCreatedDirs(r.entry.CreatedDirectories, batch.WorkingDir)
		result.RemovedDirectories = append(result.RemovedDirectories, removed...)

		if !req.Quiet {
			e.observer.Applied(AppliedActivity{Activity: undoActivity(r.entry)})
		}
	}

	j.DropLast()
	if err := e.journal.Save(j); err != nil {
		return result, err
	}

	return result, nil
}

// verifyBatch resolves the entries of batch in reverse order and checks that
// reverting them cannot overwrite or lose anything.
func (e *Engine) verifyBatch(batch journal.Batch) ([]revert, error) {
	reverts := make([]revert, 0, len(batch.Entries))
	for i := len(batch.Entries) - 1; i >= 0; i-- {
		entry := batch.Entries[i]
		r := revert{
			entry: entry,
			from:  resolvePath(entry.Destination, batch.WorkingDir),
			to:    resolvePath(entry.Source, batch.WorkingDir),
		}

		exists, err := e.fs.Exists(r.from)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", r.from, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s no longer exists", ErrUndoDrift, r.from)
		}

		same, err := hash.Matches(e.hasher, r.from, entry.Checksum)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", r.from, err)
		}
		if !same {
			return nil, fmt.Errorf("%w: %s was modified", ErrUndoDrift, r.from)
		}

		taken, err := e.fs.Exists(r.to)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", r.to, err)
		}
		if taken {
			return nil, fmt.Errorf("%w: %s is taken", ErrUndoDrift, r.to)
		}

		reverts = append(reverts, r)
	}
	return reverts, nil
}

// removeCreatedDirs removes dirs deepest first while they are empty and
// returns the ones removed.
func (e *Engine) removeCreatedDirs(dirs []string, workDir string) []string {
	var removed []string
	for i := len(dirs) - 1; i >= 0; i-- {
		dir := resolvePath(dirs[i], workDir)
		empty, err := e.fs.IsEmptyDir(dir)
		if err != nil || !empty {
			break
		}
		if err := e.fs.Remove(dir); err != nil {
			e.log.Warn("failed to remove directory %s: %v", dir, err)
			break
		}
		removed = append(removed, dirs[i])
	}
	return removed
}

// keepUnreverted shrinks the newest batch to the entries still applied and
// saves the journal, then returns cause.
func (e *Engine) keepUnreverted(j *journal.Journal, pending []revert, cause error) error {
	batch, _ := j.Last()
	j.DropLast()

	batch.Entries = make([]journal.Entry, 0, len(pending))
	for i := len(pending) - 1; i >= 0; i-- {
		batch.Entries = append(batch.Entries, pending[i].entry)
	}
	j.Append(batch)

	if err := e.journal.Save(j); err != nil {
		e.log.Error("journal no longer matches the files on disk: %v", err)
	}
	return cause
}

// undoActivity describes reverting entry as an activity for reporting.
func undoActivity(entry journal.Entry) planner.Activity {
	return planner.Activity{
		Source:      entry.Destination,
		Destination: entry.Source,
		Kind:        planner.KindOf(entry.Destination, entry.Source),
	}
}
