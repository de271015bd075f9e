package engine

import "path/filepath"

// resolvePath anchors a journaled path to the directory it was recorded in.
// Absolute paths are returned cleaned.
func resolvePath(path, workDir string) string {
	if filepath.IsAbs(path) || workDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}
