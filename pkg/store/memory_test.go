package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/ontomat/pkg/hierarchy"
	"github.com/matzehuels/ontomat/pkg/hierarchy/closure"
)

type chainProvider struct{}

func (chainProvider) Load(context.Context) ([]string, []hierarchy.Edge, error) {
	return []string{"A", "B", "C"}, []hierarchy.Edge{
		{Sub: "A", Super: "B"},
		{Sub: "B", Super: "C"},
	}, nil
}

func buildHierarchy(t *testing.T) *hierarchy.Hierarchy {
	t.Helper()
	h, err := hierarchy.Construct(context.Background(), chainProvider{},
		hierarchy.Config{Transitivity: closure.ModeWarshall})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	return h
}

func TestRecordRoundTrip(t *testing.T) {
	h := buildHierarchy(t)

	rec, err := NewRecord("animals", h)
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if rec.ID == "" {
		t.Error("record has no ID")
	}
	if !slices.Equal(rec.Classes, []string{"A", "B", "C"}) {
		t.Errorf("Classes = %v", rec.Classes)
	}

	rebuilt, err := rec.Hierarchy()
	if err != nil {
		t.Fatalf("Hierarchy() error = %v", err)
	}

	want, _ := h.Results()
	got, names := rebuilt.Results()
	if !want.Equal(got) {
		t.Error("rehydrated result matrix differs")
	}
	if !slices.Equal(names, []string{"A", "B", "C"}) {
		t.Errorf("rehydrated names = %v", names)
	}
	if rebuilt.Config().Transitivity != closure.ModeWarshall {
		t.Errorf("rehydrated mode = %v", rebuilt.Config().Transitivity)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	h := buildHierarchy(t)
	rec, err := NewRecord("animals", h)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Label != "animals" {
		t.Errorf("Label = %q", got.Label)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}

	// Deleting an absent record is not an error
	if err := s.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	h := buildHierarchy(t)

	older, err := NewRecord("older", h)
	if err != nil {
		t.Fatal(err)
	}
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer, err := NewRecord("newer", h)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Put(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, newer); err != nil {
		t.Fatal(err)
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List() returned %d records", len(recs))
	}
	if recs[0].Label != "newer" || recs[1].Label != "older" {
		t.Errorf("List() order = [%s, %s], want newest first", recs[0].Label, recs[1].Label)
	}
}
