package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eenv-dev/eenv/internal/configs"
	"github.com/eenv-dev/eenv/internal/envfile"
	"github.com/eenv-dev/eenv/internal/envscan"
	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/gitignore"
	"github.com/eenv-dev/eenv/internal/secrets"
	"github.com/eenv-dev/eenv/internal/utils"
)

// UpdateOptions configures the update workflow.
type UpdateOptions struct {
	// RepoRoot is the repository root directory.
	RepoRoot string

	// FilePatterns restricts the run to real files matching these
	// doublestar patterns. Empty means all discovered real files.
	FilePatterns []string

	// EnsureConfig creates the key config when missing instead of
	// failing. The pre-commit and init flows set this; plain update
	// expects init to have run.
	EnsureConfig bool
}

// UpdateResult contains the outcome of an update run.
type UpdateResult struct {
	// SourceFiles lists the repo-relative real files that were encrypted.
	SourceFiles []string

	// ExampleFiles lists the repo-relative .example files written.
	ExampleFiles []string

	// ArtifactFile is the repo-relative artifact path.
	ArtifactFile string

	// ConfigStatus reports what happened to the key config when
	// EnsureConfig was set.
	ConfigStatus configs.Status

	// Ignore is the gitignore reconciliation outcome.
	Ignore gitignore.Result

	// IgnoreErr is a non-fatal reconciliation failure; the rest of the
	// update still completed.
	IgnoreErr error
}

// Update runs the full encrypt pipeline: discover real secret files,
// parse them into one RepoEnvMap, seal it into a fresh artifact, rewrite
// the example skeletons, and reconcile the ignore file. The artifact is
// rewritten whole on every run. A run restricted by FilePatterns merges
// the matched files over the entries already stored in the artifact, so
// stored paths the patterns do not name are never dropped.
//
// Returns ErrConfigMissing when no key config exists and EnsureConfig is
// unset, ErrNoEnvFilesFound when the repository has no real secret
// files, and ErrNoFilesMatched when FilePatterns exclude everything.
func Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	settings, err := configs.LoadSettings(opts.RepoRoot)
	if err != nil {
		return nil, err
	}

	scanner := envscan.Scanner{
		Root:     opts.RepoRoot,
		MaxDepth: settings.MaxDepth,
		SkipDirs: settings.ExtraIgnoreDirs,
	}
	paths, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan repository: %w", err)
	}
	inv := envscan.Split(paths)

	if len(inv.Real) == 0 {
		return nil, kerrors.ErrNoEnvFilesFound
	}
	real, err := envscan.FilterPatterns(inv.Real, opts.FilePatterns)
	if err != nil {
		return nil, err
	}
	if len(real) == 0 {
		return nil, kerrors.ErrNoFilesMatched
	}

	result := &UpdateResult{ArtifactFile: envscan.ArtifactFileName}

	var cfg *configs.Config
	if opts.EnsureConfig {
		ensured, err := configs.Ensure(opts.RepoRoot)
		if err != nil {
			return nil, err
		}
		cfg = ensured.Config
		result.ConfigStatus = ensured.Status
	} else {
		cfg, err = configs.Load(opts.RepoRoot)
		if err != nil {
			return nil, err
		}
	}

	key, err := secrets.DeriveKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	repoMap := envfile.NewRepoEnvMap()
	if len(opts.FilePatterns) > 0 {
		// A selective run only re-reads the matched files, but the
		// artifact is always rewritten whole: start from the stored map
		// so unmatched entries survive.
		stored, err := storedRepoMap(opts.RepoRoot, key)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			repoMap = stored
		}
	}

	var texts = make(map[string]string, len(real))
	for _, p := range real {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(p.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p.Rel, err)
		}
		texts[p.Rel] = string(raw)
		repoMap.Set(p.Rel, envfile.Parse(string(raw)))
		result.SourceFiles = append(result.SourceFiles, p.Rel)
	}

	envelope, err := secrets.Encrypt(repoMap, key, settings.EffectiveAlgorithm())
	if err != nil {
		return nil, err
	}
	if err := secrets.WriteArtifact(secrets.ArtifactPath(opts.RepoRoot), envelope); err != nil {
		return nil, err
	}

	for _, p := range real {
		skeleton := envfile.Skeleton(texts[p.Rel])
		exampleRel := p.Rel + ".example"
		examplePath := filepath.Join(opts.RepoRoot, filepath.FromSlash(exampleRel))
		if err := utils.WriteFileAtomic(examplePath, []byte(skeleton), 0644); err != nil {
			return nil, fmt.Errorf("failed to write example for %s: %w", p.Rel, err)
		}
		result.ExampleFiles = append(result.ExampleFiles, exampleRel)
	}

	// Ignore reconciliation is a best-effort side step; a failure here
	// must not abort the update.
	required := append([]string{envscan.ConfigFileName}, result.SourceFiles...)
	ignore, err := gitignore.Ensure(opts.RepoRoot, required)
	result.Ignore = ignore
	result.IgnoreErr = err

	return result, nil
}

// storedRepoMap decrypts the existing artifact so a selective update can
// merge into it. A missing artifact returns nil; an artifact the current
// key cannot open is an error, because proceeding would silently drop
// every stored entry the patterns did not match.
func storedRepoMap(root string, key [secrets.KeyLength]byte) (*envfile.RepoEnvMap, error) {
	envelope, err := secrets.ReadArtifact(secrets.ArtifactPath(root))
	if errors.Is(err, kerrors.ErrArtifactMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m, err := secrets.Decrypt(envelope, key)
	if err != nil {
		return nil, fmt.Errorf("cannot merge into the existing artifact: %w", err)
	}
	return m, nil
}
