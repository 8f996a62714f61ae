package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/eenv-dev/eenv/internal/envfile"
	kerrors "github.com/eenv-dev/eenv/internal/errors"
)

// Supported envelope algorithms. Both use a 96-bit nonce and a 128-bit
// authentication tag over a 256-bit key.
const (
	AlgAESGCM           = "aes-256-gcm"
	AlgChaCha20Poly1305 = "chacha20-poly1305"

	// DefaultAlgorithm is used when the settings file names none.
	DefaultAlgorithm = AlgAESGCM
)

const tagSize = 16

// Envelope is the JSON document stored as the encrypted artifact. Binary
// fields are unpadded URL-safe base64.
type Envelope struct {
	Alg       string    `json:"alg"`
	IV        string    `json:"iv"`
	Tag       string    `json:"tag"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// newAEAD constructs the AEAD for an algorithm identifier.
func newAEAD(alg string, key [KeyLength]byte) (cipher.AEAD, error) {
	switch alg {
	case AlgAESGCM:
		block, err := aes.NewCipher(key[:])
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return gcm, nil
	case AlgChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key[:])
		if err != nil {
			return nil, fmt.Errorf("failed to create chacha20-poly1305: %w", err)
		}
		return aead, nil
	}
	return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownAlgorithm, alg)
}

// Encrypt seals a whole RepoEnvMap into a fresh Envelope. The map is
// serialized to canonical JSON (path and key order preserved), a new
// random 96-bit nonce is drawn on every call, and the ciphertext and tag
// are stored separately in text-encoded form.
func Encrypt(m *envfile.RepoEnvMap, key [KeyLength]byte, alg string) (*Envelope, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize env map: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce generation failed: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return &Envelope{
		Alg:       alg,
		IV:        base64.RawURLEncoding.EncodeToString(nonce),
		Tag:       base64.RawURLEncoding.EncodeToString(tag),
		Data:      base64.RawURLEncoding.EncodeToString(ciphertext),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Decrypt opens an Envelope and parses the recovered document. On any
// authentication mismatch (wrong key, altered data or tag) it returns
// ErrDecryptionAuthFailed and no data: there is no partial plaintext.
func Decrypt(env *Envelope, key [KeyLength]byte) (*envfile.RepoEnvMap, error) {
	aead, err := newAEAD(env.Alg, key)
	if err != nil {
		return nil, err
	}

	nonce, err := base64.RawURLEncoding.DecodeString(env.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: bad iv encoding: %v", kerrors.ErrArtifactInvalid, err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: iv has %d bytes, want %d", kerrors.ErrArtifactInvalid, len(nonce), aead.NonceSize())
	}
	tag, err := base64.RawURLEncoding.DecodeString(env.Tag)
	if err != nil {
		return nil, fmt.Errorf("%w: bad tag encoding: %v", kerrors.ErrArtifactInvalid, err)
	}
	ciphertext, err := base64.RawURLEncoding.DecodeString(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: bad data encoding: %v", kerrors.ErrArtifactInvalid, err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, kerrors.ErrDecryptionAuthFailed
	}

	m := envfile.NewRepoEnvMap()
	if err := json.Unmarshal(plaintext, m); err != nil {
		return nil, fmt.Errorf("%w: decrypted document is not an env map: %v", kerrors.ErrArtifactInvalid, err)
	}
	return m, nil
}
