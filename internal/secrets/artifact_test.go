package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
)

func TestArtifactWriteReadRoundTrip(t *testing.T) {
	root := t.TempDir()
	key := testKey(t)
	env, err := Encrypt(testRepoMap(), key, AlgAESGCM)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	path := ArtifactPath(root)
	if err := WriteArtifact(path, env); err != nil {
		t.Fatalf("WriteArtifact failed: %v", err)
	}

	back, err := ReadArtifact(path)
	if err != nil {
		t.Fatalf("ReadArtifact failed: %v", err)
	}
	if back.Alg != env.Alg || back.IV != env.IV || back.Tag != env.Tag || back.Data != env.Data {
		t.Error("Envelope changed across write/read")
	}

	m, err := Decrypt(back, key)
	if err != nil {
		t.Fatalf("Decrypt of stored artifact failed: %v", err)
	}
	if !testRepoMap().Equal(m) {
		t.Error("Stored artifact does not round trip")
	}
}

func TestArtifactDocumentShape(t *testing.T) {
	root := t.TempDir()
	env, err := Encrypt(testRepoMap(), testKey(t), AlgAESGCM)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	path := ArtifactPath(root)
	if err := WriteArtifact(path, env); err != nil {
		t.Fatalf("WriteArtifact failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	for _, field := range []string{`"alg"`, `"iv"`, `"tag"`, `"data"`, `"createdAt"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Artifact document missing field %s", field)
		}
	}
}

func TestReadArtifactMissing(t *testing.T) {
	_, err := ReadArtifact(filepath.Join(t.TempDir(), "eenv.enc.json"))
	if !errors.Is(err, kerrors.ErrArtifactMissing) {
		t.Errorf("Expected ErrArtifactMissing, got %v", err)
	}
}

func TestReadArtifactInvalid(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "eenv.enc.json")

	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := ReadArtifact(path); !errors.Is(err, kerrors.ErrArtifactInvalid) {
		t.Errorf("Expected ErrArtifactInvalid for garbage, got %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"alg":"aes-256-gcm"}`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := ReadArtifact(path); !errors.Is(err, kerrors.ErrArtifactInvalid) {
		t.Errorf("Expected ErrArtifactInvalid for missing fields, got %v", err)
	}
}
