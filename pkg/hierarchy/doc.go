// Package hierarchy turns a set of named classes and asserted "is-a" edges
// into a boolean adjacency matrix and answers graph queries over it.
//
// # Architecture
//
// Construction is a one-way pipeline executed once:
//
//	names+edges → Index → asserted matrix → closure matrix → frozen Hierarchy
//
// The Index fixes a deterministic ordering (lexicographically sorted class
// names), the asserted matrix encodes exactly the declared edges, and the
// closure package derives the configured transitive/reflexive variant.
// A constructed Hierarchy is immutable; Results, LongestPath and Cycles
// only read frozen state, so multiple goroutines may query it concurrently.
//
// # Usage
//
//	h, err := hierarchy.Construct(ctx, provider, hierarchy.Config{
//	    Transitivity: closure.ModeWarshall,
//	    Reflexivity:  closure.ReflexivityOn,
//	    Scope:        closure.ScopeClosure,
//	})
//	if err != nil {
//	    return err
//	}
//	m, names := h.Results()
package hierarchy
