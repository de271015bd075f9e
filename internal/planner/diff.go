package planner

import (
	"fmt"

	"github.com/danieljhkim/rnbuf/internal/fsops"
	"github.com/danieljhkim/rnbuf/internal/pathset"
)

// Options controls how the DiffPlanner resolves problems.
type Options struct {
	// AutomaticRename replaces a taken destination with a free sibling name
	// instead of failing with ErrDestinationExists
	AutomaticRename bool

	// Mkdir allows destinations whose directories do not exist yet; they are
	// recorded on the activity for the executor to create
	Mkdir bool
}

// DiffPlanner turns an original and an edited listing into a Plan.
type DiffPlanner struct {
	fs      fsops.FS
	dirs    *DirectoryPlanner
	options Options
}

// NewDiffPlanner creates a new DiffPlanner.
func NewDiffPlanner(fs fsops.FS, options Options) *DiffPlanner {
	return &DiffPlanner{
		fs:      fs,
		dirs:    NewDirectoryPlanner(fs),
		options: options,
	}
}

// BuildPlan correlates original (canonical, as shown to the user) with
// modified (parsed from the saved buffer) and plans one activity for every
// original path that no longer appears in the edited listing.
//
// Algorithm steps for each original entry, in canonical order:
//  1. A path still present anywhere in modified is unchanged
//  2. Otherwise the replacement is the edited entry on the line with the
//     same rank the original entry had in the canonical listing
//  3. A destination taken on disk, or by an earlier activity, fails the plan
//     or is autonamed
//  4. Missing ancestor directories fail the plan or are recorded
//
// Nothing on disk is modified; any error discards the whole plan.
func (p *DiffPlanner) BuildPlan(original, modified *pathset.PathSet) (*Plan, error) {
	if original.Len() != modified.Len() {
		return nil, fmt.Errorf("%w: %d paths listed, %d saved; files cannot be created or deleted",
			ErrCountMismatch, original.Len(), modified.Len())
	}

	claimed := make(map[string]struct{})
	taken := func(path string) (bool, error) {
		if _, ok := claimed[path]; ok {
			return true, nil
		}
		return p.fs.Exists(path)
	}
	autonamer := NewAutonamer(taken)

	plan := NewPlan()
	for _, entry := range original.Entries() {
		if modified.Contains(entry.Path) {
			continue
		}

		replacement, ok := modified.ByPosition(entry.Position)
		if !ok {
			return nil, fmt.Errorf("%w: no edited line at position %d for %s",
				ErrCountMismatch, entry.Position, entry.Path)
		}

		activity, err := p.planActivity(entry.Path, replacement.Path, taken, autonamer)
		if err != nil {
			return nil, err
		}

		claimed[activity.Destination] = struct{}{}
		plan.AddActivity(activity)
	}

	return plan, nil
}

// planActivity resolves the final destination and directory needs for one
// changed entry.
func (p *DiffPlanner) planActivity(source, destination string, taken ExistsFunc, autonamer *Autonamer) (Activity, error) {
	activity := Activity{Source: source, Destination: destination}

	exists, err := taken(destination)
	if err != nil {
		return Activity{}, fmt.Errorf("failed to check destination %s: %w", destination, err)
	}
	if exists {
		if !p.options.AutomaticRename {
			return Activity{}, fmt.Errorf("%w: %s (renaming %s)", ErrDestinationExists, destination, source)
		}
		activity.Destination, err = autonamer.Autoname(destination)
		if err != nil {
			return Activity{}, err
		}
		activity.Autonamed = true
	}

	missing, err := p.dirs.MissingAncestorDirs(activity.Destination)
	if err != nil {
		return Activity{}, fmt.Errorf("failed to check directories of %s: %w", activity.Destination, err)
	}
	if len(missing) > 0 {
		if !p.options.Mkdir {
			return Activity{}, fmt.Errorf("%w: %s (renaming %s)", ErrMissingDirectories, missing[0], source)
		}
		activity.CreatedDirectories = missing
	}

	activity.Kind = KindOf(source, activity.Destination)
	return activity, nil
}
