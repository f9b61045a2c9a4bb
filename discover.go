// Recipe-file discovery: starting from the current working directory,
// walk upward until a file literally named "justfile" or "Justfile" is
// found. This is treated as an external collaborator, not core pipeline
// logic, but it is small enough to keep alongside main.

package main

import (
	"os"
	"path/filepath"
)

const (
	recipeFileNameLower = "justfile"
	recipeFileNameUpper = "Justfile"
)

// findRecipeFile ascends from dir until it locates a justfile/Justfile, or
// returns an IoFailure error once it reaches the filesystem root.
func findRecipeFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", wrapIoErr(err, "failed to resolve working directory: %s", err)
	}

	for {
		for _, name := range [...]string{recipeFileNameLower, recipeFileNameUpper} {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", newErrNoSpan(errIoFailure, "no justfile found in %s or any parent directory", dir)
		}
		dir = parent
	}
}
