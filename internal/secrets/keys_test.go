package secrets

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"golang.org/x/crypto/blake2b"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
)

func TestDeriveKeyBase64URL(t *testing.T) {
	raw := bytes.Repeat([]byte{0xAB}, KeyLength)
	keyString := base64.RawURLEncoding.EncodeToString(raw)

	key, err := DeriveKey(keyString)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if !bytes.Equal(key[:], raw) {
		t.Error("Expected a 32-byte base64url key to be used verbatim")
	}
}

func TestDeriveKeyStandardBase64(t *testing.T) {
	// Bytes whose encoding contains '+' or '/' only decode as standard
	// base64, exercising the second strategy.
	raw := bytes.Repeat([]byte{0xFB, 0xEF}, KeyLength/2)
	keyString := base64.StdEncoding.EncodeToString(raw)

	key, err := DeriveKey(keyString)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if !bytes.Equal(key[:], raw) {
		t.Error("Expected a 32-byte standard-base64 key to be used verbatim")
	}
}

func TestDeriveKeyPassphraseHash(t *testing.T) {
	// Not valid base64 in either alphabet, so the hash strategy applies.
	passphrase := "correct horse battery staple!"
	key, err := DeriveKey(passphrase)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	want := blake2b.Sum256([]byte(passphrase))
	if !bytes.Equal(key[:], want[:]) {
		t.Error("Expected passphrase to derive via BLAKE2b-256")
	}
}

// A base64 string decoding to fewer or more than 32 bytes must be hashed
// down to exactly 32, and the same rule must hold on both the encrypt and
// decrypt paths.
func TestDeriveKeyNormalizationSymmetric(t *testing.T) {
	short := base64.RawURLEncoding.EncodeToString([]byte("only-10-by"))

	key, err := DeriveKey(short)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	want := blake2b.Sum256([]byte("only-10-by"))
	if !bytes.Equal(key[:], want[:]) {
		t.Error("Expected a short decoded key to be hashed to 32 bytes")
	}

	// Deriving twice gives the same key, so whatever one direction
	// derives the other can open.
	again, err := DeriveKey(short)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if key != again {
		t.Error("DeriveKey is not deterministic")
	}
}

func TestDeriveKeyWhitespaceTrimmed(t *testing.T) {
	raw := bytes.Repeat([]byte{0x01}, KeyLength)
	keyString := base64.RawURLEncoding.EncodeToString(raw)

	a, err := DeriveKey(keyString)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	b, err := DeriveKey("  " + keyString + "\n")
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if a != b {
		t.Error("Expected surrounding whitespace to be ignored")
	}
}

func TestDeriveKeyEmpty(t *testing.T) {
	if _, err := DeriveKey("   "); !errors.Is(err, kerrors.ErrKeyMissing) {
		t.Errorf("Expected ErrKeyMissing, got %v", err)
	}
}

func TestGenerateKeyStringRoundTrip(t *testing.T) {
	keyString, err := GenerateKeyString()
	if err != nil {
		t.Fatalf("GenerateKeyString failed: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(keyString)
	if err != nil {
		t.Fatalf("Generated key is not unpadded base64url: %v", err)
	}
	if len(raw) != KeyLength {
		t.Fatalf("Expected %d raw bytes, got %d", KeyLength, len(raw))
	}

	key, err := DeriveKey(keyString)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if !bytes.Equal(key[:], raw) {
		t.Error("Expected DeriveKey to recover the generated bytes exactly")
	}
}

func TestGenerateKeyStringsDiffer(t *testing.T) {
	a, err := GenerateKeyString()
	if err != nil {
		t.Fatalf("GenerateKeyString failed: %v", err)
	}
	b, err := GenerateKeyString()
	if err != nil {
		t.Fatalf("GenerateKeyString failed: %v", err)
	}
	if a == b {
		t.Error("Two generated keys are identical")
	}
}
