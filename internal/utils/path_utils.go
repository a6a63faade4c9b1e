package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/funvibe/defsub/internal/config"
)

// FindConfig searches for defsub.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, config.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// SourceName returns the name diagnostics use for path; "-" is stdin.
func SourceName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return filepath.ToSlash(filepath.Clean(path))
}
