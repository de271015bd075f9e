package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/danieljhkim/rnbuf/internal/fsops"
)

// Store persists the journal.
type Store interface {
	// Load returns the journal, or an empty one if none was saved yet.
	Load() (*Journal, error)

	// Save writes the journal atomically.
	Save(j *Journal) error
}

// FileStore implements Store with a JSON file.
type FileStore struct {
	fs   fsops.FS
	path string
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(fs fsops.FS, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Load reads the journal file.
func (s *FileStore) Load() (*Journal, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal: %w", err)
	}
	if j.Version > SchemaVersion {
		return nil, fmt.Errorf("journal version %d is newer than supported version %d", j.Version, SchemaVersion)
	}
	if j.Batches == nil {
		j.Batches = []Batch{}
	}
	j.Version = SchemaVersion

	return &j, nil
}

// Save writes the journal file.
func (s *FileStore) Save(j *Journal) error {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	if err := s.fs.AtomicWrite(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}

	return nil
}

// Memory is an in-memory Store for tests.
type Memory struct {
	J       *Journal
	SaveErr error
	Saves   int
}

// Load returns a copy of the stored journal.
func (m *Memory) Load() (*Journal, error) {
	if m.J == nil {
		return New(), nil
	}
	cp := *m.J
	cp.Batches = append([]Batch(nil), m.J.Batches...)
	return &cp, nil
}

// Save stores j.
func (m *Memory) Save(j *Journal) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	cp := *j
	cp.Batches = append([]Batch(nil), j.Batches...)
	m.J = &cp
	return nil
}
