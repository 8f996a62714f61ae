package githook

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
)

// IsRepo reports whether root is inside a git repository.
func IsRepo(root string) bool {
	cmd := exec.Command("git", "-C", root, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// StagedPaths returns the repo-relative paths currently staged for
// commit, in git's order, forward-slash form.
func StagedPaths(root string) ([]string, error) {
	out, err := exec.Command("git", "-C", root, "diff", "--name-only", "--cached", "-z").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}

	var paths []string
	for _, raw := range bytes.Split(out, []byte{0}) {
		if len(raw) == 0 {
			continue
		}
		paths = append(paths, string(raw))
	}
	return paths, nil
}

// Add stages the given repo-relative paths.
func Add(root string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"-C", root, "add", "--"}, paths...)
	if err := exec.Command("git", args...).Run(); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	return nil
}

// HooksDir returns the directory git uses for hooks, honoring
// core.hooksPath. The result is absolute.
func HooksDir(root string) (string, error) {
	out, err := exec.Command("git", "-C", root, "rev-parse", "--git-path", "hooks").Output()
	if err != nil {
		return "", kerrors.ErrNotARepo
	}
	dir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}
