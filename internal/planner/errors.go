package planner

import "errors"

var (
	// ErrCountMismatch indicates the edited listing has a different number of
	// entries than the original. Creating and deleting files is not supported.
	ErrCountMismatch = errors.New("listing entry count changed")

	// ErrDestinationExists indicates a destination is already taken and
	// automatic renaming is disabled.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrMissingDirectories indicates a destination's parent directories do not
	// exist and directory creation is disabled.
	ErrMissingDirectories = errors.New("destination directories do not exist")
)
