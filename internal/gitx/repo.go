// Package gitx renames git-tracked files with "git mv" so the index follows
// the rename, exactly as if the user had run git mv by hand.
package gitx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotInRepo indicates a path is not inside a git work tree.
var ErrNotInRepo = errors.New("not in a git repository")

// Repo provides an abstraction for the git operations rnbuf needs.
type Repo interface {
	// Discover finds the work tree root containing dir.
	Discover(dir string) (root string, err error)

	// IsTracked reports whether path has tracked content in the index.
	IsTracked(root, path string) (bool, error)

	// Move runs git mv from oldpath to newpath.
	Move(root, oldpath, newpath string) error
}

// RealRepo implements Repo using the git command.
type RealRepo struct{}

// NewRealRepo creates a new RealRepo.
func NewRealRepo() *RealRepo {
	return &RealRepo{}
}

// Discover finds the repository root by walking up from dir looking for .git.
func (g *RealRepo) Discover(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		// .git is a file for worktrees and submodules
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotInRepo
		}
		current = parent
	}
}

// IsTracked asks git whether path matches anything in the index.
func (g *RealRepo) IsTracked(root, path string) (bool, error) {
	_, err := runGit(root, "ls-files", "--error-unmatch", "--", path)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

// Move runs git mv.
func (g *RealRepo) Move(root, oldpath, newpath string) error {
	_, err := runGit(root, "mv", "--", oldpath, newpath)
	return err
}

// runGit runs git in root and returns its standard output. The error
// carries git's own message.
func runGit(root string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", root}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}
		return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
	}
	return string(out), nil
}

// FakeRepo implements Repo for tests. Move renames on disk and records the
// call so tests can tell git moves from plain renames.
type FakeRepo struct {
	Root    string
	Tracked map[string]bool
	Moves   [][2]string
	Err     error
}

// NewFakeRepo creates a FakeRepo rooted at root.
func NewFakeRepo(root string, tracked ...string) *FakeRepo {
	r := &FakeRepo{Root: root, Tracked: make(map[string]bool)}
	for _, p := range tracked {
		r.Tracked[p] = true
	}
	return r
}

// Discover returns Root when dir is inside it.
func (g *FakeRepo) Discover(dir string) (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	if !within(g.Root, dir) {
		return "", ErrNotInRepo
	}
	return g.Root, nil
}

// IsTracked looks path up in Tracked.
func (g *FakeRepo) IsTracked(root, path string) (bool, error) {
	if g.Err != nil {
		return false, g.Err
	}
	return g.Tracked[path], nil
}

// Move renames on disk and records the move.
func (g *FakeRepo) Move(root, oldpath, newpath string) error {
	if g.Err != nil {
		return g.Err
	}
	if err := os.Rename(oldpath, newpath); err != nil {
		return err
	}
	g.Moves = append(g.Moves, [2]string{oldpath, newpath})
	delete(g.Tracked, oldpath)
	g.Tracked[newpath] = true
	return nil
}

// within reports whether path is root or below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
