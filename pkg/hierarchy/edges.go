package hierarchy

import "github.com/matzehuels/ontomat/pkg/matrix"

// Edge is an asserted "is-a" pair: Sub is a subclass of Super.
// Duplicate edges are idempotent during matrix construction.
type Edge struct {
	Sub   string `json:"sub"`
	Super string `json:"super"`
}

// BuildAdjacency renders edges into an N×N boolean matrix under the index
// ordering: cell (i,j) is set iff edge (name_i, name_j) appears. Edges whose
// endpoints are not in the index are dropped, matching how the edge extractor
// treats subclass assertions over undeclared names. Edge order and duplicates
// do not affect the result.
func BuildAdjacency(ix Index, edges []Edge) *matrix.Matrix {
	m := matrix.New(ix.Len())
	for _, e := range edges {
		i, ok := ix.Lookup(e.Sub)
		if !ok {
			continue
		}
		j, ok := ix.Lookup(e.Super)
		if !ok {
			continue
		}
		m.Set(i, j)
	}
	return m
}

// buildIrreflexive is BuildAdjacency with reflexive pairs excluded. The
// reasoning mode rebuilds its matrix this way: materialized edge sets mix
// self-loops entailed by transitivity over cycles with those entailed by
// reflexivity, and the two cannot be told apart, so all are dropped here and
// the cycle-induced ones are recovered by a closure pass afterwards.
func buildIrreflexive(ix Index, edges []Edge) *matrix.Matrix {
	m := matrix.New(ix.Len())
	for _, e := range edges {
		i, ok := ix.Lookup(e.Sub)
		if !ok {
			continue
		}
		j, ok := ix.Lookup(e.Super)
		if !ok || i == j {
			continue
		}
		m.Set(i, j)
	}
	return m
}
