// Package filex contains filesystem helpers for the client's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates base/sub (and parents) with owner-only permissions and
// returns its path. An empty sub returns base itself.
func EnsureDir(base, sub string) (string, error) {
	dir := filepath.Join(base, sub)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
