package workflows

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/githook"
	"github.com/eenv-dev/eenv/internal/precommit"
)

// PreCommitOptions configures the commit gate workflow.
type PreCommitOptions struct {
	// RepoRoot is the repository root directory.
	RepoRoot string

	// Write regenerates examples, the ignore file, and the artifact, and
	// re-stages the produced paths. Raw secret files are never staged.
	Write bool
}

// PreCommitResult contains the gate's decision and any write-mode
// side effects.
type PreCommitResult struct {
	Decision precommit.Decision

	// Updated holds the write-mode pipeline outcome, nil when the
	// pipeline did not run (non-write mode or no real files).
	Updated *UpdateResult

	// Restaged lists the repo-relative paths handed back to git.
	Restaged []string
}

// PreCommit evaluates the staged set and, in write mode, refreshes the
// committable artifacts and re-stages them. The decision itself is never
// altered by write mode: staged raw secret files keep blocking until
// they are unstaged or ignored.
func PreCommit(ctx context.Context, opts PreCommitOptions) (*PreCommitResult, error) {
	staged, err := githook.StagedPaths(opts.RepoRoot)
	if err != nil {
		return nil, err
	}

	result := &PreCommitResult{Decision: precommit.Evaluate(staged)}

	if !opts.Write {
		return result, nil
	}

	updated, err := Update(ctx, UpdateOptions{
		RepoRoot:     opts.RepoRoot,
		EnsureConfig: true,
	})
	if errors.Is(err, kerrors.ErrNoEnvFilesFound) {
		// Nothing to regenerate; the decision stands on its own.
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Updated = updated

	restage := append([]string{}, updated.ExampleFiles...)
	restage = append(restage, updated.ArtifactFile)
	if updated.Ignore.Changed {
		restage = append(restage, ".gitignore")
	}
	if err := githook.Add(opts.RepoRoot, restage); err != nil {
		return nil, fmt.Errorf("failed to re-stage produced files: %w", err)
	}
	result.Restaged = restage

	return result, nil
}
