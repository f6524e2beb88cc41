package closure

import "github.com/matzehuels/ontomat/pkg/matrix"

// Closer computes the reachability closure of a boolean adjacency matrix.
// The input is never modified. Implementations must be deterministic and
// mutually bit-identical: for every matrix m, all Closers return equal
// results. Tests cross-validate [UnionOfPowers] against [Warshall] on this
// property instead of trusting a single code path.
type Closer interface {
	Close(m *matrix.Matrix) *matrix.Matrix
}

// ForMode returns the Closer for a transitivity mode, or nil for modes that
// do not run a closure algorithm over the asserted matrix (ModeAsserted).
// ModeReasoning closes its rebuilt materialized matrix with union-of-powers.
func ForMode(mode Mode) Closer {
	switch mode {
	case ModeUnionOfPowers, ModeReasoning:
		return UnionOfPowers{}
	case ModeWarshall:
		return Warshall{}
	}
	return nil
}

// UnionOfPowers finds the transitive closure as the boolean OR of the matrix
// powers A, A², ..., Aᴺ. Powers beyond N add nothing in an N-node graph: any
// longer walk revisits a node and contributes no new reachability. The loop
// is therefore capped at N multiplications rather than iterating to a
// fixpoint with no bound, and exits early when the union stops changing,
// when a power goes all-zero, or when the union saturates.
type UnionOfPowers struct{}

// Close implements [Closer].
func (UnionOfPowers) Close(m *matrix.Matrix) *matrix.Matrix {
	n := m.Size()
	union := m.Clone()
	power := m.Clone()

	for k := 2; k <= n; k++ {
		power = power.Mul(m)

		previous := union.Clone()
		union.Or(power)

		if union.Equal(previous) {
			break
		}
		if power.IsZero() || union.Full() {
			break
		}
	}
	return union
}

// Warshall finds the transitive closure with Warshall's algorithm: for each
// pivot k, every row that reaches k absorbs k's row. O(N³) over bit-packed
// rows, so the inner OR runs a word at a time.
type Warshall struct{}

// Close implements [Closer].
func (Warshall) Close(m *matrix.Matrix) *matrix.Matrix {
	n := m.Size()
	out := m.Clone()
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if out.Get(i, k) {
				out.OrRow(i, k)
			}
		}
	}
	return out
}
