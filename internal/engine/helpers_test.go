package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/rnbuf/internal/clock"
	"github.com/danieljhkim/rnbuf/internal/fsops"
	"github.com/danieljhkim/rnbuf/internal/hash"
	"github.com/danieljhkim/rnbuf/internal/journal"
	"github.com/danieljhkim/rnbuf/internal/logging"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

// scriptedEditor edits the buffer with a function instead of a user.
type scriptedEditor func(buffer string) (string, error)

func (f scriptedEditor) Edit(_ context.Context, buffer string) (string, error) {
	return f(buffer)
}

// replacing returns an editor that swaps whole lines.
func replacing(pairs ...string) scriptedEditor {
	return func(buffer string) (string, error) {
		lines := strings.Split(buffer, "\n")
		for i, line := range lines {
			for p := 0; p+1 < len(pairs); p += 2 {
				if line == pairs[p] {
					lines[i] = pairs[p+1]
				}
			}
		}
		return strings.Join(lines, "\n"), nil
	}
}

func unchanged() scriptedEditor {
	return func(buffer string) (string, error) { return buffer, nil }
}

// answers replies to confirmations in order and remembers the questions.
type answers struct {
	replies   []bool
	questions []string
	onAsk     func()
	err       error
}

func (a *answers) Confirm(question string) (bool, error) {
	a.questions = append(a.questions, question)
	if a.onAsk != nil {
		a.onAsk()
	}
	if a.err != nil {
		return false, a.err
	}
	if len(a.replies) == 0 {
		return false, nil
	}
	reply := a.replies[0]
	a.replies = a.replies[1:]
	return reply, nil
}

// recorder captures observer calls.
type recorder struct {
	proposed []planner.Activity
	applied  []AppliedActivity
	skipped  []planner.Activity
}

func (r *recorder) Proposed(a planner.Activity) { r.proposed = append(r.proposed, a) }
func (r *recorder) Applied(a AppliedActivity)   { r.applied = append(r.applied, a) }
func (r *recorder) Skipped(a planner.Activity)  { r.skipped = append(r.skipped, a) }

// failingFS fails renames of one source path.
type failingFS struct {
	*fsops.RealFS
	failRename string
}

func (f *failingFS) Rename(oldpath, newpath string) error {
	if oldpath == f.failRename {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrPermission}
	}
	return f.RealFS.Rename(oldpath, newpath)
}

type testEngine struct {
	*Engine
	store    *journal.Memory
	prompter *answers
	observer *recorder
}

func newTestEngine(fs fsops.FS, ed scriptedEditor) *testEngine {
	if fs == nil {
		fs = fsops.NewRealFS()
	}
	te := &testEngine{
		store:    &journal.Memory{},
		prompter: &answers{},
		observer: &recorder{},
	}
	te.Engine = New(
		fs,
		ed,
		te.prompter,
		te.observer,
		te.store,
		hash.SHA256{},
		clock.NewStepping(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), time.Second),
		logging.Discard(),
	)
	return te
}

// makeFiles creates files with their name as content and returns dir.
func makeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be missing, got err=%v", path, err)
	}
}

func recursive(dir string) *RunRequest {
	req := &RunRequest{Roots: []string{dir}, Journal: true}
	req.List.Recursive = true
	return req
}
