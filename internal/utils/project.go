package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRepoRoot walks upward from start until it finds a directory
// containing .git. If no repository is found, start itself is returned
// so the tool still works in a plain directory.
func FindRepoRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	for {
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			abs, err := filepath.Abs(start)
			if err != nil {
				return "", err
			}
			return abs, nil
		}
		cur = parent
	}
}

// ToSlashRel returns path relative to root in forward-slash form.
// Repo-relative paths are always compared and stored in this form
// regardless of platform separator.
func ToSlashRel(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}
