package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
)

// KeyLength is the symmetric key size required by every envelope
// algorithm (256 bits).
const KeyLength = 32

// keyStrategy is one interpretation of the stored key string. Strategies
// are tried in a fixed order; the first that yields a byte sequence wins.
type keyStrategy struct {
	name   string
	decode func(string) ([]byte, error)
}

var keyStrategies = []keyStrategy{
	{"base64url", decodeBase64URL},
	{"base64", decodeBase64Std},
	{"hash", func(s string) ([]byte, error) {
		sum := blake2b.Sum256([]byte(s))
		return sum[:], nil
	}},
}

func decodeBase64URL(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

func decodeBase64Std(s string) ([]byte, error) {
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// DeriveKey turns the stored key string into the 32-byte symmetric key.
//
// The key string is interpreted as URL-safe base64, then standard base64,
// then as raw text hashed with BLAKE2b-256. A decoded sequence that is
// not exactly 32 bytes is itself hashed down to 32 bytes; the same rule
// applies on both the encrypt and decrypt paths. The result must never be
// logged or persisted outside the config file.
func DeriveKey(keyString string) ([KeyLength]byte, error) {
	var key [KeyLength]byte
	trimmed := strings.TrimSpace(keyString)
	if trimmed == "" {
		return key, kerrors.ErrKeyMissing
	}
	for _, strat := range keyStrategies {
		decoded, err := strat.decode(trimmed)
		if err != nil || len(decoded) == 0 {
			continue
		}
		copy(key[:], normalizeKey(decoded))
		return key, nil
	}
	// Unreachable: the hash strategy always succeeds.
	return key, fmt.Errorf("no key interpretation succeeded")
}

// normalizeKey returns exactly KeyLength bytes: the input as-is when it
// already has the right size, otherwise its BLAKE2b-256 digest.
func normalizeKey(b []byte) []byte {
	if len(b) == KeyLength {
		return b
	}
	sum := blake2b.Sum256(b)
	return sum[:]
}

// GenerateKeyString creates a fresh random key string for a new config:
// 32 random bytes in unpadded URL-safe base64, so DeriveKey recovers the
// exact bytes via its first strategy.
func GenerateKeyString() (string, error) {
	raw := make([]byte, KeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
