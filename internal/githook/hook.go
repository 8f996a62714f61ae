package githook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/gitignore"
	"github.com/eenv-dev/eenv/internal/utils"
)

// HookMarker identifies hook scripts managed by eenv. Scripts without it
// are never overwritten or removed unless the user forces it.
const HookMarker = "# managed-by-eenv"

var hookNames = []string{"pre-commit", "pre-commit.ps1"}

func shellHook(exe string) string {
	return fmt.Sprintf(`#!/usr/bin/env bash
%s
set -euo pipefail
exec %q pre-commit --write
`, HookMarker, exe)
}

func powershellHook(exe string) string {
	return fmt.Sprintf(`%s
$ErrorActionPreference = "Stop"
& %q pre-commit --write
exit $LASTEXITCODE
`, HookMarker, exe)
}

// InstallHook writes the managed pre-commit hook scripts (bash and
// PowerShell) into git's hooks directory. An existing unmanaged hook is
// left alone and reported as ErrHookExists unless force is set, in which
// case it is backed up first. When the hooks directory lives inside the
// worktree, the managed files are added to .gitignore.
func InstallHook(root string, force bool) error {
	if !IsRepo(root) {
		return kerrors.ErrNotARepo
	}
	hooksDir, err := HooksDir(root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve own executable: %w", err)
	}

	contents := map[string]string{
		"pre-commit":     shellHook(exe),
		"pre-commit.ps1": powershellHook(exe),
	}

	for name, desired := range contents {
		path := filepath.Join(hooksDir, name)
		if err := writeHook(path, desired, force); err != nil {
			return err
		}
	}

	if err := os.Chmod(filepath.Join(hooksDir, "pre-commit"), 0755); err != nil {
		return fmt.Errorf("failed to mark hook executable: %w", err)
	}

	// Best-effort: generated hooks inside the worktree should not be
	// committed.
	_ = ensureHooksIgnored(root, hooksDir)
	return nil
}

func writeHook(path, desired string, force bool) error {
	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No hook yet; install ours.
	case err != nil:
		return fmt.Errorf("failed to read existing hook: %w", err)
	default:
		ours := strings.Contains(string(existing), HookMarker)
		if string(existing) == desired {
			return nil
		}
		if !ours && !force {
			return fmt.Errorf("%w: %s", kerrors.ErrHookExists, path)
		}
		if !ours && force {
			backup := utils.BackupPath(path)
			if err := os.WriteFile(backup, existing, 0644); err != nil {
				return fmt.Errorf("failed to back up existing hook: %w", err)
			}
		}
	}
	return utils.WriteFileAtomic(path, []byte(desired), 0755)
}

// UninstallHook removes the managed hook scripts. Unmanaged scripts are
// left in place unless force is set.
func UninstallHook(root string, force bool) error {
	hooksDir, err := HooksDir(root)
	if err != nil {
		return err
	}
	for _, name := range hookNames {
		path := filepath.Join(hooksDir, name)
		existing, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read hook: %w", err)
		}
		if force || strings.Contains(string(existing), HookMarker) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove hook: %w", err)
			}
		}
	}
	return nil
}

// ensureHooksIgnored adds managed hook files to .gitignore when the
// hooks directory is inside the worktree but outside .git.
func ensureHooksIgnored(root, hooksDir string) error {
	rel, err := filepath.Rel(root, hooksDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}
	if first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]; first == ".git" {
		return nil
	}
	var required []string
	for _, name := range hookNames {
		required = append(required, filepath.ToSlash(filepath.Join(rel, name)))
	}
	_, err = gitignore.Ensure(root, required)
	return err
}
