// Package store persists constructed hierarchies so queries can be served
// without reconstructing the matrices each time.
//
// Two backends exist: an in-memory store for a single-process server and
// tests, and a MongoDB store for deployments where hierarchies outlive the
// process. Records carry the serialized matrices plus the construction
// config, enough to rehydrate a hierarchy without re-reading the source.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ontomat/pkg/hierarchy"
	"github.com/matzehuels/ontomat/pkg/matrix"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("hierarchy not found")

// Record is a persisted hierarchy: the class order, both matrices in binary
// form, and the config they were built under.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Label     string           `json:"label" bson:"label"`
	Classes   []string         `json:"classes" bson:"classes"`
	Asserted  []byte           `json:"asserted" bson:"asserted"`
	Closed    []byte           `json:"closed" bson:"closed"`
	Config    hierarchy.Config `json:"config" bson:"config"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// NewRecord serializes a hierarchy under a fresh UUID.
func NewRecord(label string, h *hierarchy.Hierarchy) (Record, error) {
	asserted, err := h.Asserted().MarshalBinary()
	if err != nil {
		return Record{}, err
	}
	closed, err := h.Closed().MarshalBinary()
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:        uuid.NewString(),
		Label:     label,
		Classes:   h.Index().Names(),
		Asserted:  asserted,
		Closed:    closed,
		Config:    h.Config(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Hierarchy rehydrates the stored matrices into a queryable hierarchy.
func (r Record) Hierarchy() (*hierarchy.Hierarchy, error) {
	var asserted, closed matrix.Matrix
	if err := asserted.UnmarshalBinary(r.Asserted); err != nil {
		return nil, err
	}
	if err := closed.UnmarshalBinary(r.Closed); err != nil {
		return nil, err
	}
	return hierarchy.FromParts(hierarchy.NewIndex(r.Classes), &asserted, &closed, r.Config)
}

// Store is the interface for hierarchy persistence backends.
type Store interface {
	// Put stores or replaces a record.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all records, newest first. Matrices are included, so
	// callers listing large stores should project what they need.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a record. Deleting an absent record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
