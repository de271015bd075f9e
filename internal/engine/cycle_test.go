package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/rnbuf/internal/clock"
	"github.com/danieljhkim/rnbuf/internal/fsops"
	"github.com/danieljhkim/rnbuf/internal/gitx"
	"github.com/danieljhkim/rnbuf/internal/hash"
	"github.com/danieljhkim/rnbuf/internal/journal"
	"github.com/danieljhkim/rnbuf/internal/logging"
)

// newFileEngine builds an engine whose journal lives on disk, as the CLI does.
func newFileEngine(fs fsops.FS, journalPath string, ed scriptedEditor) *Engine {
	return New(
		fs,
		ed,
		&answers{},
		&recorder{},
		journal.NewFileStore(fsops.NewRealFS(), journalPath),
		hash.SHA256{},
		clock.NewStepping(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), time.Second),
		logging.Discard(),
	)
}

func TestCycle_RunThenUndoAcrossProcesses(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt")
	journalPath := filepath.Join(t.TempDir(), "journal.json")
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")
	nested := filepath.Join(dir, "x", "y", "a.txt")

	req := recursive(dir)
	req.Yes = true
	req.Plan.Mkdir = true

	first := newFileEngine(fsops.NewRealFS(), journalPath, replacing(a, nested, b, filepath.Join(dir, "c.txt")))
	result, err := first.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Journaled || len(result.Execution.Applied) != 2 {
		t.Fatalf("Run() = %+v", result.Execution)
	}
	assertExists(t, nested)
	assertExists(t, filepath.Join(dir, "c.txt"))

	second := newFileEngine(fsops.NewRealFS(), journalPath, unchanged())
	undo, err := second.Undo(context.Background(), &UndoRequest{Yes: true, Quiet: true})
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if len(undo.Reverted) != 2 {
		t.Errorf("Reverted = %d, want 2", len(undo.Reverted))
	}
	assertExists(t, a)
	assertExists(t, b)
	assertMissing(t, filepath.Join(dir, "x"))

	j, err := journal.NewFileStore(fsops.NewRealFS(), journalPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(j.Batches) != 0 {
		t.Errorf("journal still holds %d batches", len(j.Batches))
	}
}

func TestCycle_GitBackend(t *testing.T) {
	dir := makeFiles(t, "tracked.txt", "plain.txt")
	tracked, plain := filepath.Join(dir, "tracked.txt"), filepath.Join(dir, "plain.txt")
	repo := gitx.NewFakeRepo(dir, tracked)
	fs := gitx.NewFS(fsops.NewRealFS(), repo)
	journalPath := filepath.Join(t.TempDir(), "journal.json")

	req := recursive(dir)
	req.Yes = true
	req.Quiet = true
	eng := newFileEngine(fs, journalPath, replacing(tracked, filepath.Join(dir, "t2.txt"), plain, filepath.Join(dir, "p2.txt")))
	if _, err := eng.Run(context.Background(), req); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(repo.Moves) != 1 {
		t.Fatalf("git moves = %v, want one", repo.Moves)
	}

	if _, err := eng.Undo(context.Background(), &UndoRequest{Yes: true, Quiet: true}); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if len(repo.Moves) != 2 || repo.Moves[1][1] != tracked {
		t.Errorf("undo did not move the tracked file back through git: %v", repo.Moves)
	}
	assertExists(t, tracked)
	assertExists(t, plain)
}
