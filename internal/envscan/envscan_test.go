package envscan

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile is a helper to write test files with 0644 permissions.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create test dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		ok    bool
	}{
		{".env", ClassReal, true},
		{".env.local", ClassReal, true},
		{".env.production", ClassReal, true},
		{".env.example", ClassExample, true},
		{".env.local.example", ClassExample, true},
		{"eenv.enc.json", ClassArtifact, true},
		{"eenv.config.json", ClassConfig, true},
		{"README.md", 0, false},
		{"env", 0, false},
		{"config.json", 0, false},
	}
	for _, tt := range tests {
		class, ok := Classify(tt.name)
		if ok != tt.ok {
			t.Errorf("Classify(%q): ok = %t, want %t", tt.name, ok, tt.ok)
			continue
		}
		if ok && class != tt.class {
			t.Errorf("Classify(%q) = %v, want %v", tt.name, class, tt.class)
		}
	}
}

func TestScanClassifiesTree(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".env"), "A=1\n")
	writeTestFile(t, filepath.Join(root, ".env.example"), "A=\n")
	writeTestFile(t, filepath.Join(root, "eenv.enc.json"), "{}")
	writeTestFile(t, filepath.Join(root, "eenv.config.json"), "{}")
	writeTestFile(t, filepath.Join(root, "services", "api", ".env.local"), "B=2\n")
	writeTestFile(t, filepath.Join(root, "README.md"), "ignored")

	paths, err := Scanner{Root: root}.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	inv := Split(paths)
	if len(inv.Real) != 2 {
		t.Fatalf("Expected 2 real files, got %v", inv.Real)
	}
	if inv.Real[0].Rel != ".env" || inv.Real[1].Rel != "services/api/.env.local" {
		t.Errorf("Unexpected real set or order: %v", inv.Real)
	}
	if len(inv.Examples) != 1 || inv.Examples[0].Rel != ".env.example" {
		t.Errorf("Unexpected examples: %v", inv.Examples)
	}
	if inv.Artifact == nil || inv.Artifact.Rel != "eenv.enc.json" {
		t.Error("Expected the artifact to be classified")
	}
	if inv.Config == nil || inv.Config.Rel != "eenv.config.json" {
		t.Error("Expected the config to be classified")
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "b", ".env"), "B=1\n")
	writeTestFile(t, filepath.Join(root, "a", ".env"), "A=1\n")
	writeTestFile(t, filepath.Join(root, ".env"), "R=1\n")

	for i := 0; i < 3; i++ {
		paths, err := Scanner{Root: root}.Scan()
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(paths) != 3 {
			t.Fatalf("Expected 3 paths, got %v", paths)
		}
		if paths[0].Rel != ".env" || paths[1].Rel != "a/.env" || paths[2].Rel != "b/.env" {
			t.Fatalf("Expected lexical order, got %v", paths)
		}
	}
}

func TestScanSkipsWellKnownDirs(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".env"), "A=1\n")
	writeTestFile(t, filepath.Join(root, "node_modules", "pkg", ".env"), "X=1\n")
	writeTestFile(t, filepath.Join(root, ".git", ".env"), "X=1\n")
	writeTestFile(t, filepath.Join(root, "vendor", ".env"), "X=1\n")

	paths, err := Scanner{Root: root}.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(paths) != 1 || paths[0].Rel != ".env" {
		t.Errorf("Expected generated dirs skipped, got %v", paths)
	}
}

func TestScanExtraSkipDirs(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "generated", ".env"), "X=1\n")

	paths, err := Scanner{Root: root, SkipDirs: []string{"generated"}}.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Expected extra skip dir honored, got %v", paths)
	}
}

func TestScanDepthBound(t *testing.T) {
	root := t.TempDir()
	shallow := filepath.Join(root, "a", ".env")
	deep := filepath.Join(root, "a", "b", "c", "d", ".env")
	writeTestFile(t, shallow, "S=1\n")
	writeTestFile(t, deep, "D=1\n")

	paths, err := Scanner{Root: root, MaxDepth: 2}.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(paths) != 1 || paths[0].Rel != "a/.env" {
		t.Errorf("Expected only the shallow file within depth 2, got %v", paths)
	}
}

func TestFilterPatterns(t *testing.T) {
	real := []ClassifiedPath{
		{Rel: ".env", Class: ClassReal},
		{Rel: "services/api/.env", Class: ClassReal},
		{Rel: "services/web/.env.local", Class: ClassReal},
	}

	// Empty pattern list passes everything through.
	out, err := FilterPatterns(real, nil)
	if err != nil {
		t.Fatalf("FilterPatterns failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("Expected all files with no patterns, got %v", out)
	}

	out, err = FilterPatterns(real, []string{"services/**"})
	if err != nil {
		t.Fatalf("FilterPatterns failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 matches for services/**, got %v", out)
	}

	out, err = FilterPatterns(real, []string{".env"})
	if err != nil {
		t.Fatalf("FilterPatterns failed: %v", err)
	}
	if len(out) != 1 || out[0].Rel != ".env" {
		t.Fatalf("Expected exact match only, got %v", out)
	}

	if _, err := FilterPatterns(real, []string{"[bad"}); err == nil {
		t.Error("Expected error for a malformed pattern")
	}
}
