package envfile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EnvMap is an ordered mapping of environment keys to values. Keys are
// unique; setting an existing key replaces the value but keeps the key's
// original position.
type EnvMap struct {
	keys   []string
	values map[string]string
}

// NewEnvMap returns an empty EnvMap.
func NewEnvMap() *EnvMap {
	return &EnvMap{values: make(map[string]string)}
}

// Set inserts or updates a key. Re-setting a key keeps its position.
func (m *EnvMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it is present.
func (m *EnvMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *EnvMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *EnvMap) Len() int { return len(m.keys) }

// Equal reports whether both maps hold the same keys in the same order
// with the same values.
func (m *EnvMap) Equal(other *EnvMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		if m.values[k] != other.values[k] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the map as a JSON object preserving key order.
// encoding/json sorts map keys, which would destroy file ordering, so
// the object is assembled by hand from encoded members.
func (m *EnvMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving document order.
func (m *EnvMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	m.keys = nil
	m.values = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value for %q is not a string: %w", key, err)
		}
		m.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// RepoEnvMap is an ordered mapping of repo-relative file paths (in
// forward-slash form) to their parsed EnvMaps. This is the unit the
// envelope encrypts and decrypts as a whole.
type RepoEnvMap struct {
	paths []string
	files map[string]*EnvMap
}

// NewRepoEnvMap returns an empty RepoEnvMap.
func NewRepoEnvMap() *RepoEnvMap {
	return &RepoEnvMap{files: make(map[string]*EnvMap)}
}

// Set inserts or replaces the EnvMap for a path.
func (r *RepoEnvMap) Set(path string, m *EnvMap) {
	if r.files == nil {
		r.files = make(map[string]*EnvMap)
	}
	if _, ok := r.files[path]; !ok {
		r.paths = append(r.paths, path)
	}
	r.files[path] = m
}

// Get returns the EnvMap for a path and whether it is present.
func (r *RepoEnvMap) Get(path string) (*EnvMap, bool) {
	m, ok := r.files[path]
	return m, ok
}

// Paths returns the file paths in insertion order.
func (r *RepoEnvMap) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Len returns the number of files.
func (r *RepoEnvMap) Len() int { return len(r.paths) }

// Equal reports whether both maps hold the same paths in the same order
// with equal EnvMaps.
func (r *RepoEnvMap) Equal(other *RepoEnvMap) bool {
	if r.Len() != other.Len() {
		return false
	}
	for i, p := range r.paths {
		if other.paths[i] != p {
			return false
		}
		if !r.files[p].Equal(other.files[p]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the map as a JSON object preserving path order.
func (r *RepoEnvMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r.paths {
		if i > 0 {
			buf.WriteByte(',')
		}
		pb, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		fb, err := r.files[p].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(pb)
		buf.WriteByte(':')
		buf.Write(fb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving document order.
func (r *RepoEnvMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	r.paths = nil
	r.files = make(map[string]*EnvMap)
	for dec.More() {
		pathTok, err := dec.Token()
		if err != nil {
			return err
		}
		path, ok := pathTok.(string)
		if !ok {
			return fmt.Errorf("expected string path, got %v", pathTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		m := NewEnvMap()
		if err := m.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("entry for %q: %w", path, err)
		}
		r.Set(path, m)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
