package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eenv-dev/eenv/internal/envscan"
	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/utils"
)

// ArtifactPath returns the path of the encrypted artifact under root.
func ArtifactPath(root string) string {
	return filepath.Join(root, envscan.ArtifactFileName)
}

// ReadArtifact loads and validates the envelope document.
func ReadArtifact(path string) (*Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrArtifactInvalid, err)
	}
	if env.Alg == "" || env.IV == "" || env.Tag == "" || env.Data == "" {
		return nil, fmt.Errorf("%w: missing envelope fields", kerrors.ErrArtifactInvalid)
	}
	return &env, nil
}

// WriteArtifact writes the envelope document atomically. The artifact is
// always rewritten whole, never patched.
func WriteArtifact(path string, env *Envelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	data = append(data, '\n')
	// The artifact is safe to commit; world-readable is fine.
	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}
