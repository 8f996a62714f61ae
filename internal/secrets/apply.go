package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eenv-dev/eenv/internal/envfile"
)

// ApplyResult reports what Materialize did.
type ApplyResult struct {
	// Written lists repo-relative paths that were created or overwritten.
	Written []string

	// Skipped lists repo-relative paths left untouched because the file
	// already existed and force was not set.
	Skipped []string
}

// Materialize writes a decrypted RepoEnvMap back to disk under root.
// Parent directories are created as needed. An existing file is only
// overwritten with force; otherwise it is counted as skipped. The
// existence check and the write are not one atomic transaction across
// processes — an accepted limitation for a single-operator local tool.
func Materialize(root string, m *envfile.RepoEnvMap, force bool) (*ApplyResult, error) {
	result := &ApplyResult{}
	for _, rel := range m.Paths() {
		if !safeRelPath(rel) {
			return nil, fmt.Errorf("refusing to write outside the repository: %q", rel)
		}
		target := filepath.Join(root, filepath.FromSlash(rel))

		if _, err := os.Stat(target); err == nil && !force {
			result.Skipped = append(result.Skipped, rel)
			continue
		} else if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to check %s: %w", target, err)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}

		env, _ := m.Get(rel)
		text := envfile.Serialize(env)
		// #nosec G306 -- Decrypted env files must stay editable by the user.
		if err := os.WriteFile(target, []byte(text), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", rel, err)
		}
		result.Written = append(result.Written, rel)
	}
	return result, nil
}

// safeRelPath rejects absolute paths and any path escaping the root.
func safeRelPath(rel string) bool {
	if rel == "" || strings.HasPrefix(rel, "/") {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
