package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/rnbuf/internal/fsops"
	"github.com/danieljhkim/rnbuf/internal/logging"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

// Executor applies a plan to the filesystem, one activity at a time.
//
// Activities are applied in plan order. Declining an activity skips it. The
// first error aborts the rest of the plan; activities already applied stay
// applied.
type Executor struct {
	fs       fsops.FS
	dirs     *planner.DirectoryPlanner
	prompter Prompter
	observer Observer
	log      *logging.Logger

	// yes skips confirmation; quiet skips reporting. They are independent.
	yes   bool
	quiet bool
}

// Execute applies plan. The returned Execution is never nil and describes
// what was done even when an error is returned.
func (x *Executor) Execute(ctx context.Context, plan *planner.Plan) (*Execution, error) {
	result := &Execution{
		Applied: []AppliedActivity{},
		Skipped: []planner.Activity{},
	}

	for _, a := range plan.Activities {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !x.quiet {
			x.observer.Proposed(a)
		}

		if !x.yes {
			ok, err := x.prompter.Confirm(x.question(a))
			if err != nil {
				return result, fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !ok {
				x.log.Debug("skipped %s", a.Source)
				result.Skipped = append(result.Skipped, a)
				if !x.quiet {
					x.observer.Skipped(a)
				}
				continue
			}
		}

		applied, err := x.apply(a)
		if err != nil {
			result.StrayDirectories = append(result.StrayDirectories, applied.CreatedDirectories...)
			return result, err
		}

		result.Applied = append(result.Applied, applied)
		if !x.quiet {
			x.observer.Applied(applied)
		}
	}

	return result, nil
}

// question is the confirmation text for a. In quiet mode the activity line
// was not printed, so the question carries it.
func (x *Executor) question(a planner.Activity) string {
	if x.quiet {
		return fmt.Sprintf("%s %s -> %s?", a.Kind, a.Source, a.Destination)
	}
	return fmt.Sprintf("Apply %s?", a.Kind)
}

// apply creates the activity's directories and renames the file. The
// destination is checked again right before the rename since the plan was
// made before the user was asked.
func (x *Executor) apply(a planner.Activity) (AppliedActivity, error) {
	applied := AppliedActivity{Activity: a}

	if len(a.CreatedDirectories) > 0 {
		created, err := x.dirs.CreateMissingAncestorDirs(a.Destination)
		applied.CreatedDirectories = created
		if err != nil {
			return applied, err
		}
		for _, dir := range created {
			x.log.Debug("created directory %s", dir)
		}
	}

	exists, err := x.fs.Exists(a.Destination)
	if err != nil {
		return applied, err
	}
	if exists {
		return applied, fmt.Errorf("%w: %s (renaming %s)", planner.ErrDestinationExists, a.Destination, a.Source)
	}

	if err := x.fs.Rename(a.Source, a.Destination); err != nil {
		return applied, err
	}
	x.log.Debug("renamed %s -> %s", a.Source, a.Destination)

	return applied, nil
}
