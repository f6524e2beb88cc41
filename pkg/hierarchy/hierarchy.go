package hierarchy

import (
	"context"
	stderrors "errors"
	"iter"

	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy/closure"
	"github.com/matzehuels/ontomat/pkg/hierarchy/search"
	"github.com/matzehuels/ontomat/pkg/matrix"
)

// Provider supplies pre-extracted class-hierarchy data: the set of declared
// class names and the asserted "is-a" edges. Parsing the ontology source
// syntax is the provider's concern, not this package's; Load must return
// clean named-entity data with anonymous class expressions already excluded.
type Provider interface {
	Load(ctx context.Context) (names []string, edges []Edge, err error)
}

// Materializer is the optional provider-side extension required by
// [closure.ModeReasoning]: it returns the edge set entailed by the ontology's
// axioms, pre-materialized by an external logical reasoner. The result is a
// superset of the asserted edges and may contain pairs the asserted extractor
// structurally cannot represent.
type Materializer interface {
	Materialize(ctx context.Context) ([]Edge, error)
}

// Config selects the closure variant built at construction.
type Config struct {
	Transitivity closure.Mode        `json:"transitivity"`
	Reflexivity  closure.Reflexivity `json:"reflexivity"`
	Scope        closure.Scope       `json:"scope"`
}

// ValidateAndSetDefaults checks the config and fills in zero values:
// transitivity defaults to asserted, reflexivity to off, scope to closure.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Transitivity == "" {
		c.Transitivity = closure.ModeAsserted
	}
	if !c.Transitivity.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "transitivity mode not recognised: %q", c.Transitivity)
	}
	if c.Reflexivity == "" {
		c.Reflexivity = closure.ReflexivityOff
	}
	if c.Reflexivity != closure.ReflexivityOff && c.Reflexivity != closure.ReflexivityOn {
		return errors.New(errors.ErrCodeInvalidInput, "reflexivity setting not recognised: %q", c.Reflexivity)
	}
	if c.Scope == "" {
		c.Scope = closure.ScopeClosure
	}
	if _, err := closure.ParseScope(string(c.Scope)); err != nil {
		return err
	}
	return nil
}

// Hierarchy is a frozen class hierarchy: index, asserted matrix, and the
// configured closure variant, all built exactly once at construction.
// Queries only read stored state, so a Hierarchy is safe for concurrent use.
type Hierarchy struct {
	ix       Index
	asserted *matrix.Matrix
	closed   *matrix.Matrix
	result   *matrix.Matrix // points at asserted or closed per config
	cfg      Config
}

// Construct builds a Hierarchy from a provider and configuration.
// The provider is invoked exactly once (plus one Materialize call when
// reasoning mode is requested). Construction is atomic: any provider failure
// aborts with a SOURCE_LOAD_FAILED error and no partially-built instance.
//
// A provider that declares no class names has the class set derived from its
// edge endpoints. Zero classes is legal and yields a 0×0 matrix.
func Construct(ctx context.Context, p Provider, cfg Config) (*Hierarchy, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	names, edges, err := p.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceLoad, err, "load class hierarchy")
	}
	if len(names) == 0 && len(edges) > 0 {
		for _, e := range edges {
			names = append(names, e.Sub, e.Super)
		}
	}

	ix := NewIndex(names)
	asserted := BuildAdjacency(ix, edges)

	var closed *matrix.Matrix
	switch cfg.Transitivity {
	case closure.ModeAsserted:
		closed = asserted.Clone()
	case closure.ModeReasoning:
		mat, ok := p.(Materializer)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidMode,
				"reasoning mode requires a provider that materializes entailed edges")
		}
		entailed, err := mat.Materialize(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSourceLoad, err, "materialize entailed edges")
		}
		// Reflexive pairs are dropped during the rebuild and the closure
		// pass recovers the ones genuine cycles induce.
		closed = closure.ForMode(cfg.Transitivity).Close(buildIrreflexive(ix, entailed))
	default:
		closed = closure.ForMode(cfg.Transitivity).Close(asserted)
	}

	if cfg.Reflexivity == closure.ReflexivityOn {
		switch cfg.Scope {
		case closure.ScopeAsserted:
			asserted.OrIdentity()
		case closure.ScopeClosure:
			closed.OrIdentity()
		}
	}

	return newHierarchy(ix, asserted, closed, cfg), nil
}

// FromParts assembles a Hierarchy from previously computed matrices, e.g.
// when rehydrating a cached closure or a stored result. Reflexivity is
// assumed to be baked into the supplied matrices already. Both matrices must
// match the index size.
func FromParts(ix Index, asserted, closed *matrix.Matrix, cfg Config) (*Hierarchy, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if asserted.Size() != ix.Len() || closed.Size() != ix.Len() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"matrix size %d×%d does not match %d classes", asserted.Size(), closed.Size(), ix.Len())
	}
	return newHierarchy(ix, asserted, closed, cfg), nil
}

func newHierarchy(ix Index, asserted, closed *matrix.Matrix, cfg Config) *Hierarchy {
	h := &Hierarchy{ix: ix, asserted: asserted, closed: closed, cfg: cfg}
	if cfg.Transitivity == closure.ModeAsserted {
		h.result = asserted
	} else {
		h.result = closed
	}
	return h
}

// Results returns the result matrix and the ordered class-name list.
// Row/column i of the matrix corresponds to the i-th name. Both are copies;
// the frozen instance cannot be modified through them.
func (h *Hierarchy) Results() (*matrix.Matrix, []string) {
	return h.result.Clone(), h.ix.Names()
}

// Asserted returns a copy of the asserted adjacency matrix.
func (h *Hierarchy) Asserted() *matrix.Matrix { return h.asserted.Clone() }

// Closed returns a copy of the closure matrix. For asserted-only
// transitivity this equals the asserted matrix (modulo reflexivity scope).
func (h *Hierarchy) Closed() *matrix.Matrix { return h.closed.Clone() }

// Index returns the class index.
func (h *Hierarchy) Index() Index { return h.ix }

// Config returns the configuration the hierarchy was built with.
func (h *Hierarchy) Config() Config { return h.cfg }

// ClassCount returns the number of classes.
func (h *Hierarchy) ClassCount() int { return h.ix.Len() }

// EdgeCount returns the number of set cells in the asserted matrix.
func (h *Hierarchy) EdgeCount() int { return h.asserted.Ones() }

// Path is a walk along true result-matrix cells, reported as names and as
// matrix indices. Length counts edges, so len(Names) == Length+1.
type Path struct {
	Names   []string `json:"names"`
	Indices []int    `json:"indices"`
	Length  int      `json:"length"`
}

// LongestPath finds a longest simple path from any source class to the
// target over the result matrix. Ties between equal-length paths resolve to
// the lexicographically smallest index sequence.
//
// Sources must be non-empty and every name must exist in the index; an
// unknown name yields an UNKNOWN_CLASS error and no path at all yields
// NOT_FOUND — both are no-result answers, not crashes. budget caps DFS node
// visits (zero means unbounded) and maps to RESOURCE_EXHAUSTED.
func (h *Hierarchy) LongestPath(ctx context.Context, sources []string, target string, budget int) (Path, error) {
	if len(sources) == 0 {
		return Path{}, errors.New(errors.ErrCodeInvalidInput, "expected one or more source class names")
	}

	srcIdx := make([]int, 0, len(sources))
	for _, name := range sources {
		i, ok := h.ix.Lookup(name)
		if !ok {
			return Path{}, errors.New(errors.ErrCodeUnknownClass, "source class name not recognised: %s", name)
		}
		srcIdx = append(srcIdx, i)
	}
	tgt, ok := h.ix.Lookup(target)
	if !ok {
		return Path{}, errors.New(errors.ErrCodeUnknownClass, "target class name not recognised: %s", target)
	}

	indices, err := search.LongestPath(ctx, h.result, srcIdx, tgt, budget)
	switch {
	case err == nil:
	case stderrors.Is(err, search.ErrNoPath):
		return Path{}, errors.New(errors.ErrCodeNotFound, "no path from sources to %s", target)
	case stderrors.Is(err, search.ErrBudgetExceeded):
		return Path{}, errors.Wrap(errors.ErrCodeResourceExhausted, err, "longest-path search")
	default:
		return Path{}, err
	}

	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = h.ix.Name(idx)
	}
	return Path{Names: names, Indices: indices, Length: len(indices) - 1}, nil
}

// Cycles lazily enumerates every elementary cycle of the result matrix as
// class-name sequences, self-loops included. The sequence is restartable and
// deterministically ordered; see the search package for the ordering rule.
func (h *Hierarchy) Cycles() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for c := range search.Cycles(h.result) {
			names := make([]string, len(c))
			for i, idx := range c {
				names[i] = h.ix.Name(idx)
			}
			if !yield(names) {
				return
			}
		}
	}
}

// CollectCycles materializes the cycle sequence. limit caps the number of
// cycles (zero means unbounded); exceeding it returns the partial result and
// a RESOURCE_EXHAUSTED error.
func (h *Hierarchy) CollectCycles(limit int) ([][]string, error) {
	var out [][]string
	for c := range h.Cycles() {
		if limit > 0 && len(out) >= limit {
			return out, errors.New(errors.ErrCodeResourceExhausted,
				"cycle enumeration exceeded limit of %d", limit)
		}
		out = append(out, c)
	}
	return out, nil
}
