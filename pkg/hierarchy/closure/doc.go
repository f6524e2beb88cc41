// Package closure derives transitive-closure variants of a class-hierarchy
// adjacency matrix.
//
// Two interchangeable algorithms implement the shared [Closer] interface:
// union-of-powers (boolean OR of the matrix powers 1..N) and Warshall's
// algorithm. They are required to produce bit-identical output for every
// input, and tests cross-validate them rather than trusting either alone.
// A third mode consumes an edge set pre-materialized by an external
// reasoner; it is handled by the hierarchy package because it rebuilds the
// matrix from richer edges before closing.
//
// Reflexivity composes post-hoc with any mode: the identity matrix is ORed
// into either the asserted or the closure matrix, per the configured scope.
package closure
