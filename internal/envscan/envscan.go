package envscan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Well-known file names for the encrypted artifact and the key config.
const (
	ArtifactFileName = "eenv.enc.json"
	ConfigFileName   = "eenv.config.json"
)

const (
	envPrefix     = ".env"
	exampleMarker = ".example"

	// DefaultMaxDepth bounds directory recursion so pathological trees
	// cannot make discovery unbounded.
	DefaultMaxDepth = 8
)

// defaultSkipDirs are well-known generated or dependency directories
// that never hold committable secrets worth scanning.
var defaultSkipDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"target",
	"dist",
	"build",
	".next",
	"__pycache__",
	".venv",
}

// Class tags a discovered path. Classification is a pure function of the
// base name and the tags are mutually exclusive.
type Class int

const (
	// ClassReal is a raw secret file (.env, .env.local, ...).
	ClassReal Class = iota
	// ClassExample is a sanitized skeleton (.env.example).
	ClassExample
	// ClassArtifact is the encrypted envelope file.
	ClassArtifact
	// ClassConfig is the file holding the shared key.
	ClassConfig
)

func (c Class) String() string {
	switch c {
	case ClassReal:
		return "real"
	case ClassExample:
		return "example"
	case ClassArtifact:
		return "artifact"
	case ClassConfig:
		return "config"
	}
	return "unknown"
}

// ClassifiedPath is a discovered file with its classification. Rel is
// repo-relative in forward-slash form; Path is absolute.
type ClassifiedPath struct {
	Path  string
	Rel   string
	Class Class
}

// Classify tags a base file name. The second return is false for files
// the inventory ignores entirely.
func Classify(name string) (Class, bool) {
	switch name {
	case ArtifactFileName:
		return ClassArtifact, true
	case ConfigFileName:
		return ClassConfig, true
	}
	if !strings.HasPrefix(name, envPrefix) {
		return 0, false
	}
	if strings.Contains(name, exampleMarker) {
		return ClassExample, true
	}
	return ClassReal, true
}

// Scanner walks a repository tree and classifies candidate paths.
type Scanner struct {
	Root     string
	MaxDepth int      // 0 means DefaultMaxDepth
	SkipDirs []string // appended to the built-in skip set
}

// Scan returns classified paths in deterministic (lexical) traversal
// order. Unreadable directories are skipped silently: discovery is
// best-effort, and a missing subtree is never fatal.
func (s Scanner) Scan() ([]ClassifiedPath, error) {
	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	skip := make(map[string]bool, len(defaultSkipDirs)+len(s.SkipDirs))
	for _, d := range defaultSkipDirs {
		skip[d] = true
	}
	for _, d := range s.SkipDirs {
		skip[d] = true
	}

	var out []ClassifiedPath
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Best-effort discovery: skip what we cannot read.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(s.Root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if skip[d.Name()] {
				return filepath.SkipDir
			}
			if strings.Count(rel, "/")+1 >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip irregular files such as sockets, pipes, devices, etc.
		if !d.Type().IsRegular() {
			return nil
		}

		class, ok := Classify(d.Name())
		if !ok {
			return nil
		}
		out = append(out, ClassifiedPath{Path: path, Rel: rel, Class: class})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Inventory is the split view of a scan.
type Inventory struct {
	Real     []ClassifiedPath
	Examples []ClassifiedPath
	Artifact *ClassifiedPath
	Config   *ClassifiedPath
}

// Split groups classified paths by class.
func Split(paths []ClassifiedPath) Inventory {
	var inv Inventory
	for i := range paths {
		p := paths[i]
		switch p.Class {
		case ClassReal:
			inv.Real = append(inv.Real, p)
		case ClassExample:
			inv.Examples = append(inv.Examples, p)
		case ClassArtifact:
			if inv.Artifact == nil {
				inv.Artifact = &p
			}
		case ClassConfig:
			if inv.Config == nil {
				inv.Config = &p
			}
		}
	}
	return inv
}

// MatchAny reports whether a repo-relative path matches at least one
// doublestar pattern.
func MatchAny(patterns []string, rel string) (bool, error) {
	for _, pat := range patterns {
		ok, err := doublestar.Match(filepath.ToSlash(pat), rel)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// FilterPatterns narrows real paths to those matching at least one
// doublestar pattern (matched against the repo-relative form). An empty
// pattern list returns the input unchanged.
func FilterPatterns(real []ClassifiedPath, patterns []string) ([]ClassifiedPath, error) {
	if len(patterns) == 0 {
		return real, nil
	}
	var out []ClassifiedPath
	for _, p := range real {
		ok, err := MatchAny(patterns, p.Rel)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}
