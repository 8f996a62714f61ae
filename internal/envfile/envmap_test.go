package envfile

import (
	"encoding/json"
	"testing"
)

func TestEnvMapMarshalPreservesOrder(t *testing.T) {
	m := NewEnvMap()
	m.Set("ZULU", "1")
	m.Set("ALPHA", "2")
	m.Set("MIKE", "3")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"ZULU":"1","ALPHA":"2","MIKE":"3"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestEnvMapJSONRoundTrip(t *testing.T) {
	m := NewEnvMap()
	m.Set("B", "two words")
	m.Set("A", "")
	m.Set("C", `with "quotes" and \slashes\`)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back := NewEnvMap()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !m.Equal(back) {
		t.Errorf("Round trip changed the map: %s", data)
	}
}

func TestEnvMapSetKeepsPosition(t *testing.T) {
	m := NewEnvMap()
	m.Set("A", "1")
	m.Set("B", "2")
	m.Set("A", "updated")

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "A" || keys[1] != "B" {
		t.Fatalf("Expected [A B], got %v", keys)
	}
	if v, _ := m.Get("A"); v != "updated" {
		t.Errorf("Expected updated value, got %q", v)
	}
}

func TestEnvMapUnmarshalRejectsNonObject(t *testing.T) {
	m := NewEnvMap()
	if err := json.Unmarshal([]byte(`["not","an","object"]`), m); err == nil {
		t.Error("Expected error for non-object JSON")
	}
	if err := json.Unmarshal([]byte(`{"key": 42}`), m); err == nil {
		t.Error("Expected error for non-string value")
	}
}

func TestRepoEnvMapJSONRoundTrip(t *testing.T) {
	a := NewEnvMap()
	a.Set("A", "1")
	a.Set("B", "two words")
	b := NewEnvMap()
	b.Set("TOKEN", "xyz")

	r := NewRepoEnvMap()
	r.Set("services/api/.env", a)
	r.Set(".env", b)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	back := NewRepoEnvMap()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !r.Equal(back) {
		t.Errorf("Round trip changed the map: %s", data)
	}

	paths := back.Paths()
	if paths[0] != "services/api/.env" || paths[1] != ".env" {
		t.Errorf("Path order not preserved: %v", paths)
	}
}

func TestRepoEnvMapEqual(t *testing.T) {
	a := NewRepoEnvMap()
	am := NewEnvMap()
	am.Set("A", "1")
	a.Set(".env", am)

	b := NewRepoEnvMap()
	bm := NewEnvMap()
	bm.Set("A", "1")
	b.Set(".env", bm)

	if !a.Equal(b) {
		t.Error("Expected equal maps")
	}

	bm.Set("A", "2")
	if a.Equal(b) {
		t.Error("Expected inequality after value change")
	}
}
