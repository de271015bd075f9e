// Package journal records applied rename batches so the most recent one can
// be undone.
//
// The journal is a single JSON document. Batches are appended after each
// successful run and only the newest MaxBatches are kept.
package journal

import "time"

// SchemaVersion is the current journal document version.
const SchemaVersion = 1

// MaxBatches is the number of batches retained in the journal.
const MaxBatches = 20

// Journal is the on-disk document.
type Journal struct {
	// Version is the schema version of the document
	Version int `json:"version"`

	// Batches are ordered oldest first
	Batches []Batch `json:"batches"`
}

// Batch is the set of renames performed by one run.
type Batch struct {
	// Timestamp is when the batch finished applying
	Timestamp time.Time `json:"timestamp"`

	// WorkingDir is the directory relative paths were resolved against
	WorkingDir string `json:"workingDir"`

	// Entries are in the order they were applied
	Entries []Entry `json:"entries"`
}

// Entry records a single rename.
type Entry struct {
	// Source is the path the file had before the rename
	Source string `json:"source"`

	// Destination is the path the file was moved to
	Destination string `json:"destination"`

	// Checksum is the SHA-256 of the file contents after the move
	Checksum string `json:"checksum,omitempty"`

	// CreatedDirectories were created for this rename, shallowest first
	CreatedDirectories []string `json:"createdDirectories,omitempty"`
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{Version: SchemaVersion, Batches: []Batch{}}
}

// Append adds b and drops the oldest batches beyond MaxBatches.
func (j *Journal) Append(b Batch) {
	j.Batches = append(j.Batches, b)
	if extra := len(j.Batches) - MaxBatches; extra > 0 {
		j.Batches = append([]Batch(nil), j.Batches[extra:]...)
	}
}

// Last returns the newest batch, if any.
func (j *Journal) Last() (Batch, bool) {
	if len(j.Batches) == 0 {
		return Batch{}, false
	}
	return j.Batches[len(j.Batches)-1], true
}

// DropLast removes the newest batch.
func (j *Journal) DropLast() {
	if len(j.Batches) > 0 {
		j.Batches = j.Batches[:len(j.Batches)-1]
	}
}
