package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/rnbuf/internal/fsops"
	"github.com/danieljhkim/rnbuf/internal/pathset"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

func TestRun_RenamesFile(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt")
	a, b, c := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.txt")

	te := newTestEngine(nil, replacing(b, c))
	req := recursive(dir)
	req.Yes = true

	result, err := te.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertExists(t, a)
	assertMissing(t, b)
	assertExists(t, c)

	if result.Listed != 2 {
		t.Errorf("Listed = %d, want 2", result.Listed)
	}
	if len(result.Execution.Applied) != 1 {
		t.Fatalf("Applied = %d, want 1", len(result.Execution.Applied))
	}
	got := result.Execution.Applied[0]
	if got.Source != b || got.Destination != c || got.Kind != planner.KindRename {
		t.Errorf("Applied[0] = %+v", got)
	}
	if len(te.prompter.questions) != 0 {
		t.Errorf("asked %d questions with Yes set", len(te.prompter.questions))
	}
	if len(te.observer.proposed) != 1 || len(te.observer.applied) != 1 {
		t.Errorf("observer saw proposed=%d applied=%d", len(te.observer.proposed), len(te.observer.applied))
	}

	if !result.Journaled {
		t.Fatal("batch was not journaled")
	}
	batch, ok := te.store.J.Last()
	if !ok || len(batch.Entries) != 1 {
		t.Fatalf("journal = %+v", te.store.J)
	}
	if batch.Entries[0].Checksum == "" {
		t.Error("journal entry has no checksum")
	}
}

func TestRun_NoChanges(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt")

	te := newTestEngine(nil, unchanged())
	result, err := te.Run(context.Background(), recursive(dir))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Plan.IsEmpty() {
		t.Errorf("plan has %d activities, want none", len(result.Plan.Activities))
	}
	if result.Execution != nil {
		t.Error("executed an empty plan")
	}
	if te.store.Saves != 0 {
		t.Error("journaled an empty batch")
	}
}

func TestRun_ReorderedLinesAreNotChanges(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt", "c.txt")

	reverse := scriptedEditor(func(buffer string) (string, error) {
		lines := strings.Split(strings.TrimSuffix(buffer, "\n"), "\n")
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
		return strings.Join(lines, "\n") + "\n", nil
	})

	te := newTestEngine(nil, reverse)
	result, err := te.Run(context.Background(), recursive(dir))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Plan.IsEmpty() {
		t.Errorf("plan has %d activities, want none", len(result.Plan.Activities))
	}
}

func TestRun_DryRun(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, z := filepath.Join(dir, "a.txt"), filepath.Join(dir, "z.txt")

	te := newTestEngine(nil, replacing(a, z))
	req := recursive(dir)
	req.DryRun = true

	result, err := te.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.DryRun || len(result.Plan.Activities) != 1 {
		t.Errorf("result = %+v", result)
	}
	assertExists(t, a)
	assertMissing(t, z)
	if len(te.prompter.questions) != 0 {
		t.Error("dry run asked for confirmation")
	}
}

func TestRun_DeclinedActivitiesAreSkipped(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt")
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")
	x, y := filepath.Join(dir, "x.txt"), filepath.Join(dir, "y.txt")

	te := newTestEngine(nil, replacing(a, x, b, y))
	te.prompter.replies = []bool{false, true}

	result, err := te.Run(context.Background(), recursive(dir))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertExists(t, a)
	assertMissing(t, x)
	assertMissing(t, b)
	assertExists(t, y)

	if len(result.Execution.Skipped) != 1 || result.Execution.Skipped[0].Source != a {
		t.Errorf("Skipped = %+v", result.Execution.Skipped)
	}
	if len(te.observer.skipped) != 1 {
		t.Errorf("observer saw %d skips, want 1", len(te.observer.skipped))
	}
	if len(te.prompter.questions) != 2 {
		t.Errorf("asked %d questions, want 2", len(te.prompter.questions))
	}
}

func TestRun_AllDeclined(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	te.prompter.replies = []bool{false}

	result, err := te.Run(context.Background(), recursive(dir))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Execution.Applied) != 0 {
		t.Errorf("Applied = %d, want 0", len(result.Execution.Applied))
	}
	if te.store.Saves != 0 {
		t.Error("journaled a batch with nothing applied")
	}
	assertExists(t, a)
}

func TestRun_QuietPutsActivityInQuestion(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	te.prompter.replies = []bool{true}
	req := recursive(dir)
	req.Quiet = true

	if _, err := te.Run(context.Background(), req); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(te.observer.proposed)+len(te.observer.applied) != 0 {
		t.Error("observer was called in quiet mode")
	}
	if len(te.prompter.questions) != 1 || !strings.Contains(te.prompter.questions[0], a+" -> "+x) {
		t.Errorf("questions = %q", te.prompter.questions)
	}
	assertExists(t, x)
}

func TestRun_QuietAndYesStillApplies(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	req := recursive(dir)
	req.Quiet = true
	req.Yes = true

	if _, err := te.Run(context.Background(), req); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(te.prompter.questions) != 0 {
		t.Error("asked for confirmation with Yes set")
	}
	assertExists(t, x)
}

func TestRun_PlanningErrorsChangeNothing(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(dir string) scriptedEditor
		setup   func(t *testing.T, dir string)
		wantErr error
	}{
		{
			name: "line removed",
			edit: func(dir string) scriptedEditor {
				return func(string) (string, error) { return filepath.Join(dir, "a.txt") + "\n", nil }
			},
			wantErr: planner.ErrCountMismatch,
		},
		{
			name: "duplicate line",
			edit: func(dir string) scriptedEditor {
				return replacing(filepath.Join(dir, "b.txt"), filepath.Join(dir, "a.txt"))
			},
			wantErr: pathset.ErrDuplicatePath,
		},
		{
			name: "destination exists",
			edit: func(dir string) scriptedEditor {
				return replacing(filepath.Join(dir, "b.txt"), filepath.Join(dir, "sub", "taken.txt"))
			},
			setup: func(t *testing.T, dir string) {
				if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, "sub", "taken.txt"), nil, 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: planner.ErrDestinationExists,
		},
		{
			name: "missing directories",
			edit: func(dir string) scriptedEditor {
				return replacing(filepath.Join(dir, "b.txt"), filepath.Join(dir, "new", "b.txt"))
			},
			wantErr: planner.ErrMissingDirectories,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeFiles(t, "a.txt", "b.txt")
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			roots := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}

			te := newTestEngine(nil, tt.edit(dir))
			_, err := te.Run(context.Background(), &RunRequest{Roots: roots, Yes: true, Journal: true})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}

			assertExists(t, filepath.Join(dir, "a.txt"))
			assertExists(t, filepath.Join(dir, "b.txt"))
			if te.store.Saves != 0 {
				t.Error("journal written after planning failure")
			}
		})
	}
}

func TestRun_AutomaticRename(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt", "taken.txt")
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")
	taken := filepath.Join(dir, "taken.txt")

	te := newTestEngine(nil, replacing(b, taken))
	req := &RunRequest{Roots: []string{a, b}, Yes: true}
	req.Plan.AutomaticRename = true

	result, err := te.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := result.Execution.Applied[0]
	if !got.Autonamed || got.Destination != filepath.Join(dir, "taken_1.txt") {
		t.Errorf("Applied[0] = %+v", got)
	}
	assertMissing(t, b)
	assertExists(t, filepath.Join(dir, "taken_1.txt"))

	data, err := os.ReadFile(taken)
	if err != nil || string(data) != "taken.txt" {
		t.Errorf("existing destination was touched: %q, %v", data, err)
	}
}

func TestRun_MkdirCreatesDirectories(t *testing.T) {
	dir := makeFiles(t, "b.txt")
	b := filepath.Join(dir, "b.txt")
	dst := filepath.Join(dir, "new", "sub", "b.txt")

	te := newTestEngine(nil, replacing(b, dst))
	req := recursive(dir)
	req.Yes = true
	req.Plan.Mkdir = true

	result, err := te.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertExists(t, dst)
	got := result.Execution.Applied[0]
	want := []string{filepath.Join(dir, "new"), filepath.Join(dir, "new", "sub")}
	if strings.Join(got.CreatedDirectories, ",") != strings.Join(want, ",") {
		t.Errorf("CreatedDirectories = %v, want %v", got.CreatedDirectories, want)
	}
	if got.Kind != planner.KindMove {
		t.Errorf("Kind = %s, want %s", got.Kind, planner.KindMove)
	}
}

func TestRun_SharedNewDirectoryCreatedOnce(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt")
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")
	newDir := filepath.Join(dir, "new")

	te := newTestEngine(nil, replacing(a, filepath.Join(newDir, "a.txt"), b, filepath.Join(newDir, "b.txt")))
	req := recursive(dir)
	req.Yes = true
	req.Plan.Mkdir = true

	result, err := te.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	applied := result.Execution.Applied
	if len(applied) != 2 {
		t.Fatalf("Applied = %d, want 2", len(applied))
	}
	if len(applied[0].CreatedDirectories) != 1 || len(applied[1].CreatedDirectories) != 0 {
		t.Errorf("created = %v and %v", applied[0].CreatedDirectories, applied[1].CreatedDirectories)
	}
}

func TestRun_AbortsOnFirstError(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt", "c.txt")
	a, b, c := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.txt")
	x, y, z := filepath.Join(dir, "x.txt"), filepath.Join(dir, "y.txt"), filepath.Join(dir, "z.txt")

	fs := &failingFS{RealFS: fsops.NewRealFS(), failRename: b}
	te := newTestEngine(fs, replacing(a, x, b, y, c, z))
	req := recursive(dir)
	req.Yes = true

	result, err := te.Run(context.Background(), req)
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("Run() error = %v, want permission error", err)
	}

	// The first rename stays applied; nothing after the failure runs.
	assertExists(t, x)
	assertExists(t, b)
	assertExists(t, c)
	assertMissing(t, z)

	if result == nil || len(result.Execution.Applied) != 1 {
		t.Fatalf("result = %+v", result)
	}
	batch, ok := te.store.J.Last()
	if !ok || len(batch.Entries) != 1 || batch.Entries[0].Destination != x {
		t.Errorf("journal = %+v", te.store.J)
	}
}

func TestRun_DestinationTakenAfterPlanning(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	te.prompter.replies = []bool{true}
	te.prompter.onAsk = func() {
		if err := os.WriteFile(x, []byte("late"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	_, err := te.Run(context.Background(), recursive(dir))
	if !errors.Is(err, planner.ErrDestinationExists) {
		t.Fatalf("Run() error = %v, want ErrDestinationExists", err)
	}

	assertExists(t, a)
	data, _ := os.ReadFile(x)
	if string(data) != "late" {
		t.Errorf("destination overwritten: %q", data)
	}
}

func TestRun_ConfirmationError(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	te.prompter.err = errors.New("terminal gone")

	_, err := te.Run(context.Background(), recursive(dir))
	if err == nil || !strings.Contains(err.Error(), "terminal gone") {
		t.Fatalf("Run() error = %v", err)
	}
	assertExists(t, a)
}

func TestRun_EditorError(t *testing.T) {
	dir := makeFiles(t, "a.txt")

	failing := scriptedEditor(func(string) (string, error) { return "", errors.New("editor crashed") })
	te := newTestEngine(nil, failing)

	_, err := te.Run(context.Background(), recursive(dir))
	if err == nil || !strings.Contains(err.Error(), "editor crashed") {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRun_EmptyListing(t *testing.T) {
	te := newTestEngine(nil, unchanged())

	_, err := te.Run(context.Background(), recursive(t.TempDir()))
	if !errors.Is(err, ErrNoPaths) {
		t.Fatalf("Run() error = %v, want ErrNoPaths", err)
	}
}

func TestRun_NoRoots(t *testing.T) {
	te := newTestEngine(nil, unchanged())

	_, err := te.Run(context.Background(), &RunRequest{})
	if !errors.Is(err, ErrNoPaths) {
		t.Fatalf("Run() error = %v, want ErrNoPaths", err)
	}
}

func TestRun_JournalDisabled(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	req := recursive(dir)
	req.Yes = true
	req.Journal = false

	result, err := te.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Journaled || te.store.Saves != 0 {
		t.Error("journal written with Journal disabled")
	}
}

func TestRun_JournalFailureDoesNotFailRun(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	te.store.SaveErr = errors.New("disk full")
	req := recursive(dir)
	req.Yes = true

	result, err := te.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Journaled {
		t.Error("Journaled = true after failed save")
	}
	assertExists(t, x)
}

func TestRun_Cancelled(t *testing.T) {
	dir := makeFiles(t, "a.txt")
	a, x := filepath.Join(dir, "a.txt"), filepath.Join(dir, "x.txt")

	te := newTestEngine(nil, replacing(a, x))
	ctx, cancel := context.WithCancel(context.Background())
	te.prompter.replies = []bool{true}
	te.prompter.onAsk = cancel
	req := recursive(dir)

	// Cancelling while the first activity is confirmed still applies it; the
	// check happens before each activity.
	result, err := te.Run(ctx, req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Execution.Applied) != 1 {
		t.Errorf("Applied = %d, want 1", len(result.Execution.Applied))
	}
}
