package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/eenv-dev/eenv/internal/secrets"
)

// SettingsFileName is the optional per-repo scanner settings file.
const SettingsFileName = ".eenv.toml"

// Settings tunes discovery and encryption. All fields are optional; an
// absent settings file yields defaults.
type Settings struct {
	// ExtraIgnoreDirs are directory names skipped during scanning, in
	// addition to the built-in well-known set.
	ExtraIgnoreDirs []string `toml:"extra_ignore_dirs"`

	// MaxDepth overrides the default traversal depth bound when > 0.
	MaxDepth int `toml:"max_depth"`

	// Algorithm selects the envelope algorithm. Empty means the default.
	Algorithm string `toml:"algorithm"`
}

// LoadSettings reads .eenv.toml from root. A missing file is not an
// error; a malformed one is, so a typo never silently reverts behavior
// to defaults.
func LoadSettings(root string) (*Settings, error) {
	path := filepath.Join(root, SettingsFileName)
	settings := &Settings{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SettingsFileName, err)
	}

	if settings.Algorithm != "" &&
		settings.Algorithm != secrets.AlgAESGCM &&
		settings.Algorithm != secrets.AlgChaCha20Poly1305 {
		return nil, fmt.Errorf("unsupported algorithm %q in %s", settings.Algorithm, SettingsFileName)
	}
	return settings, nil
}

// EffectiveAlgorithm returns the configured algorithm or the default.
func (s *Settings) EffectiveAlgorithm() string {
	if s.Algorithm == "" {
		return secrets.DefaultAlgorithm
	}
	return s.Algorithm
}
