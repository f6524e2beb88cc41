package source

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Classes: []string{"A", "B", "C"},
		Edges: []hierarchy.Edge{
			{Sub: "A", Super: "B"},
			{Sub: "B", Super: "C"},
		},
		Entailed: []hierarchy.Edge{
			{Sub: "A", Super: "B"},
			{Sub: "B", Super: "C"},
			{Sub: "A", Super: "C"},
		},
	}
}

func TestStatic(t *testing.T) {
	p := NewStatic(sampleSnapshot())

	names, edges, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(names, []string{"A", "B", "C"}) {
		t.Errorf("names = %v", names)
	}
	if len(edges) != 2 {
		t.Errorf("edges = %v", edges)
	}

	entailed, err := p.Materialize(context.Background())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(entailed) != 3 {
		t.Errorf("entailed = %v", entailed)
	}
}

func TestStatic_MaterializeFallsBackToAsserted(t *testing.T) {
	snap := sampleSnapshot()
	snap.Entailed = nil
	p := NewStatic(snap)

	entailed, err := p.Materialize(context.Background())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(entailed) != 2 {
		t.Errorf("fallback entailed = %v, want asserted edges", entailed)
	}
}

func TestJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hierarchy.json")
	if err := WriteJSON(path, sampleSnapshot()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	p := NewJSONFile(path)
	names, edges, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(names, []string{"A", "B", "C"}) {
		t.Errorf("names = %v", names)
	}
	want := sampleSnapshot().Edges
	if !slices.Equal(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}

	entailed, err := p.Materialize(context.Background())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(entailed) != 3 {
		t.Errorf("entailed = %v", entailed)
	}
}

func TestJSONFile_Missing(t *testing.T) {
	p := NewJSONFile(filepath.Join(t.TempDir(), "nope.json"))
	_, _, err := p.Load(context.Background())
	if errors.GetCode(err) != errors.ErrCodeSourceLoad {
		t.Errorf("error = %v, want SOURCE_LOAD_FAILED", err)
	}
}

func TestJSONFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewJSONFile(path)
	_, _, err := p.Load(context.Background())
	if errors.GetCode(err) != errors.ErrCodeSourceLoad {
		t.Errorf("error = %v, want SOURCE_LOAD_FAILED", err)
	}
}

func TestTOMLFile(t *testing.T) {
	doc := `
classes = ["A", "B", "C"]

[[edges]]
sub = "A"
super = "B"

[[edges]]
sub = "B"
super = "C"

[[entailed]]
sub = "A"
super = "C"
`
	path := filepath.Join(t.TempDir(), "hierarchy.toml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewTOMLFile(path)
	names, edges, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(names, []string{"A", "B", "C"}) {
		t.Errorf("names = %v", names)
	}
	if len(edges) != 2 || edges[0] != (hierarchy.Edge{Sub: "A", Super: "B"}) {
		t.Errorf("edges = %v", edges)
	}

	entailed, err := p.Materialize(context.Background())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(entailed) != 1 || entailed[0] != (hierarchy.Edge{Sub: "A", Super: "C"}) {
		t.Errorf("entailed = %v", entailed)
	}
}

func TestTOMLFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("classes = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewTOMLFile(path)
	_, _, err := p.Load(context.Background())
	if errors.GetCode(err) != errors.ErrCodeSourceLoad {
		t.Errorf("error = %v, want SOURCE_LOAD_FAILED", err)
	}
}

func TestProviderEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hierarchy.json")
	if err := WriteJSON(path, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	h, err := hierarchy.Construct(context.Background(), NewJSONFile(path), hierarchy.Config{})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	if h.ClassCount() != 3 || h.EdgeCount() != 2 {
		t.Errorf("classes=%d edges=%d, want 3 and 2", h.ClassCount(), h.EdgeCount())
	}
}
