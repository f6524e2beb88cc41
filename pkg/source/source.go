// Package source provides hierarchy data providers: in-memory snapshots and
// file-backed JSON/TOML snapshot formats.
//
// A snapshot is the parsed, named-entity view of an ontology's class
// hierarchy: the declared class names, the asserted subclass edges, and
// optionally the edge set entailed by a logical reasoner. Providers hand this
// data to hierarchy.Construct; they never see matrix state.
package source

import (
	"context"

	"github.com/matzehuels/ontomat/pkg/hierarchy"
)

// Snapshot is the wire form of extracted hierarchy data, shared by the JSON
// and TOML file formats.
type Snapshot struct {
	// Classes lists the declared class names. May be empty, in which case
	// the class set is derived from edge endpoints.
	Classes []string `json:"classes"`

	// Edges are the asserted subclass pairs.
	Edges []hierarchy.Edge `json:"edges"`

	// Entailed optionally carries reasoner-materialized edges. Required for
	// reasoning-mode construction, ignored otherwise.
	Entailed []hierarchy.Edge `json:"entailed,omitempty"`
}

// Static serves a fixed snapshot from memory. It implements
// [hierarchy.Provider], and [hierarchy.Materializer] when Entailed is set.
type Static struct {
	snap Snapshot
}

// NewStatic wraps a snapshot in a provider.
func NewStatic(snap Snapshot) *Static {
	return &Static{snap: snap}
}

// Load returns the snapshot's class names and asserted edges.
func (s *Static) Load(context.Context) ([]string, []hierarchy.Edge, error) {
	return s.snap.Classes, s.snap.Edges, nil
}

// Materialize returns the snapshot's entailed edges. When the snapshot
// carries none, the asserted edges stand in: an ontology without equivalence
// or property axioms entails exactly what it asserts.
func (s *Static) Materialize(context.Context) ([]hierarchy.Edge, error) {
	if len(s.snap.Entailed) == 0 {
		return s.snap.Edges, nil
	}
	return s.snap.Entailed, nil
}
