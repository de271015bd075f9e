package planner

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// ExistsFunc reports whether a path is taken.
type ExistsFunc func(path string) (bool, error)

// Autonamer derives a free sibling name for a path that is already taken.
type Autonamer struct {
	exists ExistsFunc
}

// NewAutonamer creates an Autonamer that uses exists to probe candidates.
func NewAutonamer(exists ExistsFunc) *Autonamer {
	return &Autonamer{exists: exists}
}

// Autoname returns the first free name following path.
//
// The file name is split into stem and extension at the last dot, then the
// stem into base and counter at the last underscore. A counter that is not a
// non-negative integer restarts at zero with the whole stem as base. The
// counter is then incremented until "<base>_<counter>[.<ext>]" is free:
//
//	file.txt   -> file_1.txt
//	file_1.txt -> file_2.txt
//	notes      -> notes_1
//
// A leading dot starts an extension like any other, so ".env" becomes
// "_1.env". A counter at the largest uint64 is treated as part of the base.
func (a *Autonamer) Autoname(path string) (string, error) {
	dir, name := filepath.Split(path)
	base, counter, ext := splitName(name)

	for {
		counter++
		candidate := dir + base + "_" + strconv.FormatUint(counter, 10)
		if ext != "" {
			candidate += "." + ext
		}

		taken, err := a.exists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}

// splitName breaks a file name into base, numeric counter and extension.
// Separators are ASCII so byte indexing never splits a multi-byte rune.
func splitName(name string) (base string, counter uint64, ext string) {
	stem := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		stem, ext = name[:i], name[i+1:]
	}

	base = stem
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		if n, err := strconv.ParseUint(stem[i+1:], 10, 64); err == nil && n < math.MaxUint64 {
			base, counter = stem[:i], n
		}
	}

	return base, counter, ext
}
