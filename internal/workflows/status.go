package workflows

import (
	"context"
	"fmt"

	"github.com/eenv-dev/eenv/internal/configs"
	"github.com/eenv-dev/eenv/internal/envscan"
)

// Census is the classification snapshot of a repository.
type Census struct {
	RealFiles    []string
	ExampleFiles []string

	ArtifactPresent bool
	ConfigPresent   bool
	// ConfigValid means the config parses and holds a non-empty key.
	ConfigValid bool
}

// Status probes the repository state without changing anything.
func Status(ctx context.Context, repoRoot string) (*Census, error) {
	settings, err := configs.LoadSettings(repoRoot)
	if err != nil {
		return nil, err
	}
	scanner := envscan.Scanner{
		Root:     repoRoot,
		MaxDepth: settings.MaxDepth,
		SkipDirs: settings.ExtraIgnoreDirs,
	}
	paths, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan repository: %w", err)
	}
	inv := envscan.Split(paths)

	census := &Census{
		ArtifactPresent: inv.Artifact != nil,
		ConfigPresent:   inv.Config != nil,
	}
	for _, p := range inv.Real {
		census.RealFiles = append(census.RealFiles, p.Rel)
	}
	for _, p := range inv.Examples {
		census.ExampleFiles = append(census.ExampleFiles, p.Rel)
	}

	if census.ConfigPresent {
		if _, err := configs.Load(repoRoot); err == nil {
			census.ConfigValid = true
		} else if !configLoadFailed(err) {
			return nil, err
		}
	}
	return census, nil
}
