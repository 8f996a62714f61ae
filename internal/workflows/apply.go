package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/eenv-dev/eenv/internal/configs"
	"github.com/eenv-dev/eenv/internal/envfile"
	"github.com/eenv-dev/eenv/internal/envscan"
	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/gitignore"
	"github.com/eenv-dev/eenv/internal/secrets"
)

// ApplyOptions configures the apply workflow.
type ApplyOptions struct {
	// RepoRoot is the repository root directory.
	RepoRoot string

	// Force overwrites existing files instead of skipping them.
	Force bool

	// FilePatterns restricts materialization to stored paths matching
	// these doublestar patterns. Empty means everything in the artifact.
	FilePatterns []string

	// KeyPrompt, when non-nil, is asked for the key string if the config
	// is missing or invalid while an artifact exists. The entered key is
	// persisted only after it successfully authenticates a decryption.
	KeyPrompt func() (string, error)
}

// ApplyResult contains the outcome of an apply run.
type ApplyResult struct {
	// Written and Skipped list repo-relative paths.
	Written []string
	Skipped []string

	// KeyBootstrapped is true when the key was prompted for and saved to
	// a fresh config.
	KeyBootstrapped bool
}

// Apply decrypts the artifact and materializes the recovered files,
// skipping any that already exist unless forced.
//
// Returns ErrArtifactMissing when there is nothing to apply and
// ErrDecryptionAuthFailed when the key does not authenticate — the
// caller should prompt for the key again; no partial result exists.
func Apply(ctx context.Context, opts ApplyOptions) (*ApplyResult, error) {
	envelope, err := secrets.ReadArtifact(secrets.ArtifactPath(opts.RepoRoot))
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{}

	repoMap, err := decryptWithConfig(opts, envelope, result)
	if err != nil {
		return nil, err
	}
	repoMap, err = filterRepoMap(repoMap, opts.FilePatterns)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := secrets.Materialize(opts.RepoRoot, repoMap, opts.Force)
	if err != nil {
		return nil, err
	}
	result.Written = mat.Written
	result.Skipped = mat.Skipped
	return result, nil
}

func decryptWithConfig(opts ApplyOptions, envelope *secrets.Envelope, result *ApplyResult) (*envfile.RepoEnvMap, error) {
	cfg, err := configs.Load(opts.RepoRoot)
	switch {
	case err == nil:
		key, err := secrets.DeriveKey(cfg.Key)
		if err != nil {
			return nil, err
		}
		return secrets.Decrypt(envelope, key)

	case configLoadFailed(err) && opts.KeyPrompt != nil:
		return bootstrapKey(opts, envelope, result)
	}
	return nil, err
}

// bootstrapKey recovers from a missing or damaged config when an
// artifact exists: prompt for the key, prove it by decrypting, and only
// then persist it.
func bootstrapKey(opts ApplyOptions, envelope *secrets.Envelope, result *ApplyResult) (*envfile.RepoEnvMap, error) {
	keyString, err := opts.KeyPrompt()
	if err != nil {
		return nil, err
	}
	key, err := secrets.DeriveKey(keyString)
	if err != nil {
		return nil, err
	}
	repoMap, err := secrets.Decrypt(envelope, key)
	if err != nil {
		return nil, fmt.Errorf("entered key did not decrypt the artifact: %w", err)
	}

	if err := configs.Save(opts.RepoRoot, &configs.Config{Key: keyString}); err != nil {
		return nil, err
	}
	// The freshly written config must never be committed.
	if _, err := gitignore.Ensure(opts.RepoRoot, []string{envscan.ConfigFileName}); err != nil {
		return nil, err
	}
	result.KeyBootstrapped = true
	return repoMap, nil
}

// filterRepoMap narrows the decrypted map to paths matching the given
// patterns. An empty pattern list passes the map through untouched.
func filterRepoMap(m *envfile.RepoEnvMap, patterns []string) (*envfile.RepoEnvMap, error) {
	if len(patterns) == 0 {
		return m, nil
	}
	out := envfile.NewRepoEnvMap()
	for _, p := range m.Paths() {
		ok, err := envscan.MatchAny(patterns, p)
		if err != nil {
			return nil, err
		}
		if ok {
			env, _ := m.Get(p)
			out.Set(p, env)
		}
	}
	if out.Len() == 0 {
		return nil, kerrors.ErrNoFilesMatched
	}
	return out, nil
}

func configLoadFailed(err error) bool {
	return errors.Is(err, kerrors.ErrConfigMissing) ||
		errors.Is(err, kerrors.ErrConfigInvalid) ||
		errors.Is(err, kerrors.ErrKeyMissing)
}
