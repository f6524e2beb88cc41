package closure

import "github.com/matzehuels/ontomat/pkg/errors"

// Mode selects how the closure matrix is derived from the asserted matrix.
type Mode string

const (
	// ModeAsserted skips closure entirely: the closure matrix equals the
	// asserted matrix.
	ModeAsserted Mode = "asserted"

	// ModeUnionOfPowers computes the boolean OR of the asserted matrix
	// raised to powers 1..N under the (AND, OR) semiring.
	ModeUnionOfPowers Mode = "powers"

	// ModeWarshall computes reachability with Warshall's algorithm.
	// Bit-identical to ModeUnionOfPowers on every input.
	ModeWarshall Mode = "warshall"

	// ModeReasoning rebuilds the matrix from an edge set pre-materialized by
	// an external logical reasoner. It can contain edges the other modes
	// structurally cannot derive from literal "is-a" assertions.
	ModeReasoning Mode = "reasoning"
)

// ParseMode converts a string to a Mode.
// Returns an INVALID_MODE error for unrecognised input.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAsserted, ModeUnionOfPowers, ModeWarshall, ModeReasoning:
		return Mode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode,
		"transitivity mode not recognised: %q (must be one of: asserted, powers, warshall, reasoning)", s)
}

// Valid reports whether m is a recognised mode.
func (m Mode) Valid() bool {
	_, err := ParseMode(string(m))
	return err == nil
}

// Reflexivity controls whether the identity matrix is unioned in.
type Reflexivity string

const (
	// ReflexivityOff leaves the diagonal as computed.
	ReflexivityOff Reflexivity = "off"

	// ReflexivityOn ORs the identity matrix into the scoped matrix.
	ReflexivityOn Reflexivity = "on"
)

// Scope names the matrix the reflexive union applies to. Reflexive-asserted
// and reflexive-closure are distinct results and are never conflated.
type Scope string

const (
	// ScopeAsserted applies reflexivity to the asserted matrix.
	ScopeAsserted Scope = "asserted"

	// ScopeClosure applies reflexivity to the closure matrix.
	ScopeClosure Scope = "closure"
)

// ParseScope converts a string to a Scope.
// Returns an INVALID_SCOPE error for unrecognised input.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeAsserted, ScopeClosure:
		return Scope(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidScope,
		"reflexivity scope not recognised: %q (must be asserted or closure)", s)
}
