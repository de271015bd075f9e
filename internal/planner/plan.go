package planner

import "path/filepath"

// Plan is the ordered list of activities produced from one edited listing.
type Plan struct {
	// Activities in the order they must be applied
	Activities []Activity
}

// Activity is one planned file operation.
type Activity struct {
	// Source is the path as it appears in the original listing
	Source string

	// Destination is the final target path, after any autonaming
	Destination string

	// CreatedDirectories lists the ancestor directories of Destination that
	// are missing at plan time, outermost first
	CreatedDirectories []string

	// Kind is KindMove or KindRename
	Kind string

	// Autonamed is true when Destination was derived because the requested
	// path was taken
	Autonamed bool
}

// Activity kind constants
const (
	// KindMove keeps the file name and changes the directory.
	KindMove = "move"

	// KindRename changes the file name and possibly the directory.
	KindRename = "rename"
)

// NewPlan creates a new empty Plan.
func NewPlan() *Plan {
	return &Plan{
		Activities: []Activity{},
	}
}

// IsEmpty returns true if there is nothing to apply.
func (p *Plan) IsEmpty() bool {
	return len(p.Activities) == 0
}

// AddActivity appends an activity to the plan.
func (p *Plan) AddActivity(a Activity) {
	p.Activities = append(p.Activities, a)
}

// KindOf classifies a source/destination pair by comparing file names.
func KindOf(source, destination string) string {
	if filepath.Base(source) == filepath.Base(destination) {
		return KindMove
	}
	return KindRename
}
