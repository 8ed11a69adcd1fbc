package utils

import (
	"fmt"
	"os"
)

// EnsureDirs creates each directory (and parents) with 0755 permissions.
// Existing directories are left untouched.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}
