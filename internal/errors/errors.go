package errors

import "errors"

// Config errors indicate problems with eenv.config.json.
var (
	// ErrConfigMissing indicates eenv.config.json does not exist.
	ErrConfigMissing = errors.New("eenv.config.json not found")

	// ErrConfigInvalid indicates eenv.config.json is not a valid JSON object.
	ErrConfigInvalid = errors.New("eenv.config.json is not a valid config document")

	// ErrKeyMissing indicates the config exists but holds no usable key.
	ErrKeyMissing = errors.New("config is missing a non-empty key")
)

// Artifact errors indicate problems with the encrypted envelope file.
var (
	// ErrArtifactMissing indicates the encrypted artifact does not exist.
	ErrArtifactMissing = errors.New("encrypted artifact not found")

	// ErrArtifactInvalid indicates the artifact is not a valid envelope document.
	ErrArtifactInvalid = errors.New("encrypted artifact is not a valid envelope document")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrDecryptionAuthFailed indicates the authentication tag did not verify.
	// The key is wrong or the artifact has been tampered with; no plaintext
	// is ever returned alongside this error.
	ErrDecryptionAuthFailed = errors.New("decryption failed authentication")

	// ErrUnknownAlgorithm indicates the envelope names an unsupported algorithm.
	ErrUnknownAlgorithm = errors.New("unknown envelope algorithm")
)

// File errors indicate issues with discovery or access.
var (
	// ErrNoEnvFilesFound indicates no secret files were discovered.
	ErrNoEnvFilesFound = errors.New("no environment files found")

	// ErrNoFilesMatched indicates no files matched the provided patterns.
	ErrNoFilesMatched = errors.New("no matching files found")
)

// Git integration errors and control signals.
var (
	// ErrNotARepo indicates the directory is not inside a git repository.
	ErrNotARepo = errors.New("not inside a git repository")

	// ErrHookExists indicates an unmanaged pre-commit hook is already installed.
	ErrHookExists = errors.New("an unmanaged pre-commit hook already exists")

	// ErrCommitBlocked signals that raw secret files are staged. This is a
	// deliberate control signal, not a failure: the CLI maps it to its own
	// exit code so git aborts the commit.
	ErrCommitBlocked = errors.New("commit blocked: raw secret files are staged")
)
