// Package pathset implements the listing shown to and read back from the
// editor: an ordered, duplicate-free collection of paths with a position for
// every entry.
//
// A PathSet built from discovered files is canonicalized with Enumerate,
// which ranks entries by path and regenerates the text buffer. A PathSet
// parsed from an edited buffer keeps the line order the user left behind.
package pathset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicatePath indicates the same path appears twice in one listing.
var ErrDuplicatePath = errors.New("duplicate path")

// PositionedPath is one listing entry.
type PositionedPath struct {
	Path     string
	Position int
}

// PathSet is an ordered collection of unique paths plus its raw text form.
type PathSet struct {
	entries    []PositionedPath
	byPath     map[string]int // path -> index into entries
	byPosition map[int]int    // position -> index into entries
	raw        string
}

// New creates an empty PathSet.
func New() *PathSet {
	return &PathSet{
		entries:    []PositionedPath{},
		byPath:     make(map[string]int),
		byPosition: make(map[int]int),
	}
}

// Parse builds a PathSet from an edited buffer. Each non-empty line becomes an
// entry whose position is its index among the non-empty lines. Parsing fails
// as a whole on the first repeated line.
func Parse(text string) (*PathSet, error) {
	s := New()
	s.raw = text

	position := 0
	for _, line := range splitLines(text) {
		if line == "" {
			continue
		}
		if !s.Insert(line, position) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, line)
		}
		position++
	}

	return s, nil
}

// splitLines splits on \n and drops a trailing \r so buffers saved with CRLF
// line endings parse the same way.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Insert adds path at position. It returns false and leaves the set untouched
// when path is already present.
func (s *PathSet) Insert(path string, position int) bool {
	if _, ok := s.byPath[path]; ok {
		return false
	}

	s.entries = append(s.entries, PositionedPath{Path: path, Position: position})
	idx := len(s.entries) - 1
	s.byPath[path] = idx
	// Positions are only unique after Enumerate or Parse; the first entry
	// inserted at a position keeps the lookup slot.
	if _, taken := s.byPosition[position]; !taken {
		s.byPosition[position] = idx
	}
	return true
}

// Enumerate returns a new PathSet ranked by ascending path with positions
// 0..n-1 and a raw buffer of the paths in that order, one per line.
func (s *PathSet) Enumerate() *PathSet {
	paths := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		paths = append(paths, e.Path)
	}
	sort.Strings(paths)

	out := New()
	var raw strings.Builder
	for i, p := range paths {
		out.Insert(p, i)
		raw.WriteString(p)
		raw.WriteString("\n")
	}
	out.raw = raw.String()

	return out
}

// ByPosition returns the entry at position i.
func (s *PathSet) ByPosition(i int) (PositionedPath, bool) {
	idx, ok := s.byPosition[i]
	if !ok {
		return PositionedPath{}, false
	}
	return s.entries[idx], true
}

// ByPath returns the entry for path p (exact textual match).
func (s *PathSet) ByPath(p string) (PositionedPath, bool) {
	idx, ok := s.byPath[p]
	if !ok {
		return PositionedPath{}, false
	}
	return s.entries[idx], true
}

// Contains reports whether p is in the set.
func (s *PathSet) Contains(p string) bool {
	_, ok := s.byPath[p]
	return ok
}

// Len returns the number of entries.
func (s *PathSet) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in ascending position order.
func (s *PathSet) Entries() []PositionedPath {
	out := make([]PositionedPath, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// Paths returns the paths in ascending position order.
func (s *PathSet) Paths() []string {
	entries := s.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

// Raw returns the text buffer for the set.
func (s *PathSet) Raw() string {
	return s.raw
}
