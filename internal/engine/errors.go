package engine

import (
	"errors"

	"github.com/danieljhkim/rnbuf/internal/lister"
)

var (
	// ErrNoPaths indicates there is nothing to list.
	ErrNoPaths = lister.ErrNoPaths

	// ErrNothingToUndo indicates the journal holds no batch.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrUndoDrift indicates files of the last batch changed after it was
	// applied, so reverting it could lose data.
	ErrUndoDrift = errors.New("files changed since the batch was applied")
)
