package workflows

import (
	"context"
	"errors"

	"github.com/eenv-dev/eenv/internal/configs"
	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/githook"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// RepoRoot is the repository root directory.
	RepoRoot string

	// KeyPrompt is consulted when an artifact exists but the config is
	// missing or invalid, so a fresh clone can be bootstrapped from the
	// shared key instead of generating an unrelated one.
	KeyPrompt func() (string, error)

	// SkipHook disables pre-commit hook installation.
	SkipHook bool
}

// InitResult contains the outcome of an init run.
type InitResult struct {
	Census *Census

	// Applied holds the materialization outcome when an artifact was
	// present, nil otherwise.
	Applied *ApplyResult

	// Updated holds the encrypt-pipeline outcome when real secret files
	// were present, nil otherwise.
	Updated *UpdateResult

	// ConfigStatus reports what happened to the key config.
	ConfigStatus configs.Status

	// HookErr is a non-fatal hook installation failure.
	HookErr error
}

// Init brings a repository into the managed state. The order mirrors a
// fresh clone's needs: first recover existing secrets from an artifact
// (prompting for the key when the config cannot provide it), then
// derive examples, reconcile the ignore file, and encrypt whatever real
// files exist, and finally install the commit gate hook best-effort.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	census, err := Status(ctx, opts.RepoRoot)
	if err != nil {
		return nil, err
	}
	result := &InitResult{Census: census}

	if census.ArtifactPresent {
		applied, err := Apply(ctx, ApplyOptions{
			RepoRoot:  opts.RepoRoot,
			KeyPrompt: opts.KeyPrompt,
		})
		if err != nil {
			return nil, err
		}
		result.Applied = applied

		// A bootstrapped key means the config was just written; rescan
		// state so the update below sees it.
		if applied.KeyBootstrapped {
			census.ConfigPresent = true
			census.ConfigValid = true
		}
	}

	updated, err := Update(ctx, UpdateOptions{
		RepoRoot:     opts.RepoRoot,
		EnsureConfig: true,
	})
	switch {
	case err == nil:
		result.Updated = updated
		result.ConfigStatus = updated.ConfigStatus
	case errors.Is(err, kerrors.ErrNoEnvFilesFound):
		// Nothing to encrypt; still make sure a config exists so a
		// later update has a key to work with.
		ensured, ensureErr := configs.Ensure(opts.RepoRoot)
		if ensureErr != nil {
			return nil, ensureErr
		}
		result.ConfigStatus = ensured.Status
	default:
		return nil, err
	}

	if !opts.SkipHook {
		result.HookErr = githook.InstallHook(opts.RepoRoot, false)
	}
	return result, nil
}
