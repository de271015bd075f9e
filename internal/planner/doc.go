// Package planner handles the planning phase of a batch rename.
//
// The planner correlates the canonical listing shown to the user with the
// listing the user saved and turns the differences into an ordered list of
// Activities. Planning is side-effect free: it only queries the filesystem,
// and any failure aborts the whole plan before anything is renamed.
//
// Key responsibilities:
//   - Correlate original and edited entries (identity first, then position)
//   - Detect destinations that already exist and optionally autoname them
//   - Determine which ancestor directories a destination still needs
package planner
