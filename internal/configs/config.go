package configs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eenv-dev/eenv/internal/envscan"
	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/secrets"
	"github.com/eenv-dev/eenv/internal/utils"
)

// Config is the key document, eenv.config.json. It holds the single
// shared secret key string — the root of trust for the whole artifact —
// and is never committed or copied into the artifact.
type Config struct {
	Key string `json:"key"`
}

// ConfigPath returns the path of the key config under root.
func ConfigPath(root string) string {
	return filepath.Join(root, envscan.ConfigFileName)
}

// Load reads and validates the key config.
//
// Returns ErrConfigMissing when the file does not exist, ErrConfigInvalid
// when it is not a JSON object, and ErrKeyMissing when the key field is
// absent or empty.
func Load(root string) (*Config, error) {
	path := ConfigPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrConfigInvalid, err)
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, kerrors.ErrKeyMissing
	}
	cfg.Key = strings.TrimSpace(cfg.Key)
	return &cfg, nil
}

// Save writes the key config atomically with owner-only permissions.
func Save(root string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append(data, '\n')
	if err := utils.WriteFileAtomic(ConfigPath(root), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Status describes what Ensure did to the key config.
type Status int

const (
	// StatusValid means an existing valid config was left untouched.
	StatusValid Status = iota
	// StatusCreated means a new config with a generated key was written.
	StatusCreated
	// StatusRepaired means an invalid config was backed up and rewritten.
	StatusRepaired
)

// EnsureResult reports the outcome of Ensure.
type EnsureResult struct {
	Config *Config
	Status Status
	// Backup is the path the previous content was saved to when the
	// config had to be rewritten.
	Backup string
}

// Ensure makes sure a valid key config exists under root, generating a
// key when there is none. An unreadable or keyless config is backed up
// with a timestamped suffix before being rewritten, so a mistyped edit
// never silently destroys a key string.
func Ensure(root string) (*EnsureResult, error) {
	cfg, err := Load(root)
	if err == nil {
		return &EnsureResult{Config: cfg, Status: StatusValid}, nil
	}

	switch {
	case isMissing(err):
		key, genErr := secrets.GenerateKeyString()
		if genErr != nil {
			return nil, genErr
		}
		cfg = &Config{Key: key}
		if err := Save(root, cfg); err != nil {
			return nil, err
		}
		return &EnsureResult{Config: cfg, Status: StatusCreated}, nil

	case isInvalid(err):
		path := ConfigPath(root)
		backup := utils.BackupPath(path)
		if old, readErr := os.ReadFile(path); readErr == nil {
			if err := utils.WriteFileAtomic(backup, old, 0600); err != nil {
				return nil, fmt.Errorf("failed to back up invalid config: %w", err)
			}
		}
		key, genErr := secrets.GenerateKeyString()
		if genErr != nil {
			return nil, genErr
		}
		cfg = &Config{Key: key}
		if err := Save(root, cfg); err != nil {
			return nil, err
		}
		return &EnsureResult{Config: cfg, Status: StatusRepaired, Backup: backup}, nil
	}

	return nil, err
}

func isMissing(err error) bool {
	return errors.Is(err, kerrors.ErrConfigMissing)
}

func isInvalid(err error) bool {
	return errors.Is(err, kerrors.ErrConfigInvalid) || errors.Is(err, kerrors.ErrKeyMissing)
}
