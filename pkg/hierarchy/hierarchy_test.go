package hierarchy

import (
	"context"
	stderrors "errors"
	"slices"
	"testing"

	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy/closure"
)

// staticProvider serves fixed in-memory hierarchy data.
type staticProvider struct {
	names []string
	edges []Edge
	err   error
}

func (p staticProvider) Load(context.Context) ([]string, []Edge, error) {
	return p.names, p.edges, p.err
}

// reasonedProvider additionally serves pre-materialized entailed edges.
type reasonedProvider struct {
	staticProvider
	entailed []Edge
	matErr   error
}

func (p reasonedProvider) Materialize(context.Context) ([]Edge, error) {
	return p.entailed, p.matErr
}

func chain() staticProvider {
	return staticProvider{
		names: []string{"A", "B", "C", "D"},
		edges: []Edge{{"A", "B"}, {"B", "C"}, {"C", "D"}},
	}
}

func TestConstruct_AssertedOnly(t *testing.T) {
	h, err := Construct(context.Background(), chain(), Config{Transitivity: closure.ModeAsserted})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	m, names := h.Results()
	if !slices.Equal(names, []string{"A", "B", "C", "D"}) {
		t.Fatalf("names = %v", names)
	}
	if m.Ones() != 3 {
		t.Errorf("asserted-only result has %d cells, want 3", m.Ones())
	}
	if m.Get(0, 2) {
		t.Error("asserted-only result contains derived edge A->C")
	}
}

func TestConstruct_ChainClosure(t *testing.T) {
	for _, mode := range []closure.Mode{closure.ModeUnionOfPowers, closure.ModeWarshall} {
		t.Run(string(mode), func(t *testing.T) {
			h, err := Construct(context.Background(), chain(), Config{Transitivity: mode})
			if err != nil {
				t.Fatalf("Construct() error = %v", err)
			}

			m, _ := h.Results()
			// Closure of A->B->C->D is the full strict upper triangle.
			want := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
			if got := m.Cells(); !slices.EqualFunc(got, want, func(a, b [2]int) bool { return a == b }) {
				t.Errorf("closure cells = %v, want %v", got, want)
			}
			if h.EdgeCount() != 3 {
				t.Errorf("EdgeCount() = %d, want 3 asserted edges", h.EdgeCount())
			}
		})
	}
}

func TestConstruct_MutualPairSelfLoops(t *testing.T) {
	p := staticProvider{
		names: []string{"A", "B"},
		edges: []Edge{{"A", "B"}, {"B", "A"}},
	}
	h, err := Construct(context.Background(), p, Config{Transitivity: closure.ModeWarshall})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	m, _ := h.Results()
	if !m.Full() {
		t.Errorf("closure of a mutual pair should be all-ones, got:\n%s", m.String())
	}
	if h.Asserted().Get(0, 0) {
		t.Error("cycle-induced self-loop leaked into the asserted matrix")
	}
}

func TestConstruct_IsolatedClassStaysIsolated(t *testing.T) {
	p := staticProvider{
		names: []string{"A", "B", "C", "D", "E"},
		edges: []Edge{{"A", "B"}, {"B", "C"}, {"C", "D"}},
	}
	h, err := Construct(context.Background(), p, Config{Transitivity: closure.ModeUnionOfPowers})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	m, _ := h.Results()
	for j := 0; j < 5; j++ {
		if m.Get(4, j) || m.Get(j, 4) {
			t.Errorf("isolated class E gained cell involving column/row %d", j)
		}
	}
}

func TestConstruct_EmptyOntology(t *testing.T) {
	h, err := Construct(context.Background(), staticProvider{}, Config{Transitivity: closure.ModeWarshall})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	m, names := h.Results()
	if m.Size() != 0 || len(names) != 0 {
		t.Fatalf("empty ontology: size=%d names=%v", m.Size(), names)
	}

	if _, err := h.LongestPath(context.Background(), []string{"A"}, "B", 0); errors.GetCode(err) != errors.ErrCodeUnknownClass {
		t.Errorf("LongestPath on empty hierarchy error = %v, want UNKNOWN_CLASS", err)
	}
	if got, err := h.CollectCycles(0); err != nil || len(got) != 0 {
		t.Errorf("CollectCycles on empty hierarchy = %v, %v", got, err)
	}
}

func TestConstruct_NamesDerivedFromEdges(t *testing.T) {
	p := staticProvider{edges: []Edge{{"B", "A"}, {"C", "A"}}}
	h, err := Construct(context.Background(), p, Config{})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	_, names := h.Results()
	if !slices.Equal(names, []string{"A", "B", "C"}) {
		t.Errorf("derived names = %v, want [A B C]", names)
	}
}

func TestConstruct_ProviderFailureIsAtomic(t *testing.T) {
	p := staticProvider{err: stderrors.New("connection reset")}
	h, err := Construct(context.Background(), p, Config{})
	if h != nil {
		t.Fatal("Construct returned a partially built hierarchy alongside an error")
	}
	if errors.GetCode(err) != errors.ErrCodeSourceLoad {
		t.Errorf("error code = %v, want SOURCE_LOAD_FAILED", errors.GetCode(err))
	}
}

func TestConstruct_InvalidMode(t *testing.T) {
	_, err := Construct(context.Background(), chain(), Config{Transitivity: "dijkstra"})
	if errors.GetCode(err) != errors.ErrCodeInvalidMode {
		t.Errorf("error code = %v, want INVALID_MODE", errors.GetCode(err))
	}
}

func TestConstruct_ReflexivityScopes(t *testing.T) {
	p := chain()

	asserted, err := Construct(context.Background(), p, Config{
		Transitivity: closure.ModeWarshall,
		Reflexivity:  closure.ReflexivityOn,
		Scope:        closure.ScopeAsserted,
	})
	if err != nil {
		t.Fatalf("Construct(scope=asserted) error = %v", err)
	}
	closed, err := Construct(context.Background(), p, Config{
		Transitivity: closure.ModeWarshall,
		Reflexivity:  closure.ReflexivityOn,
		Scope:        closure.ScopeClosure,
	})
	if err != nil {
		t.Fatalf("Construct(scope=closure) error = %v", err)
	}

	// Reflexive-asserted: diagonal appears in the asserted matrix only.
	if !asserted.Asserted().Get(0, 0) {
		t.Error("scope=asserted: asserted diagonal not set")
	}
	if asserted.Closed().Get(0, 0) {
		t.Error("scope=asserted: reflexivity leaked into the closure matrix")
	}

	// Reflexive-closure: the inverse.
	if closed.Asserted().Get(0, 0) {
		t.Error("scope=closure: reflexivity leaked into the asserted matrix")
	}
	if !closed.Closed().Get(0, 0) {
		t.Error("scope=closure: closure diagonal not set")
	}
}

func TestConstruct_ReasoningMode(t *testing.T) {
	p := reasonedProvider{
		staticProvider: staticProvider{
			names: []string{"A", "B", "C"},
			edges: []Edge{{"A", "B"}},
		},
		// The reasoner contributes B->C (entailed via an equivalence axiom,
		// say), plus reflexive noise that must be dropped and not recovered
		// because no cycle induces it.
		entailed: []Edge{{"A", "B"}, {"B", "C"}, {"A", "A"}, {"B", "B"}, {"C", "C"}},
	}

	h, err := Construct(context.Background(), p, Config{Transitivity: closure.ModeReasoning})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	m, _ := h.Results()
	want := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	if got := m.Cells(); !slices.EqualFunc(got, want, func(a, b [2]int) bool { return a == b }) {
		t.Errorf("reasoning result cells = %v, want %v", got, want)
	}
}

func TestConstruct_ReasoningModeRecoversCycleSelfLoops(t *testing.T) {
	p := reasonedProvider{
		staticProvider: staticProvider{
			names: []string{"A", "B"},
			edges: []Edge{{"A", "B"}, {"B", "A"}},
		},
		entailed: []Edge{{"A", "B"}, {"B", "A"}, {"A", "A"}, {"B", "B"}},
	}

	h, err := Construct(context.Background(), p, Config{Transitivity: closure.ModeReasoning})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}

	m, _ := h.Results()
	if !m.Full() {
		t.Errorf("mutual-pair reasoning closure should be all-ones, got:\n%s", m.String())
	}
}

func TestConstruct_ReasoningModeRequiresMaterializer(t *testing.T) {
	_, err := Construct(context.Background(), chain(), Config{Transitivity: closure.ModeReasoning})
	if errors.GetCode(err) != errors.ErrCodeInvalidMode {
		t.Errorf("error code = %v, want INVALID_MODE", errors.GetCode(err))
	}
}

func TestConstruct_Deterministic(t *testing.T) {
	shuffled := staticProvider{
		names: []string{"D", "A", "C", "B"},
		edges: []Edge{{"C", "D"}, {"A", "B"}, {"B", "C"}},
	}
	cfg := Config{Transitivity: closure.ModeUnionOfPowers}

	a, err := Construct(context.Background(), chain(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Construct(context.Background(), shuffled, cfg)
	if err != nil {
		t.Fatal(err)
	}

	ma, na := a.Results()
	mb, nb := b.Results()
	if !slices.Equal(na, nb) {
		t.Errorf("names differ across input orderings: %v vs %v", na, nb)
	}
	if !ma.Equal(mb) {
		t.Error("matrices differ across input orderings")
	}
}

func TestLongestPath_ChainEndToEnd(t *testing.T) {
	h, err := Construct(context.Background(), chain(), Config{Transitivity: closure.ModeWarshall})
	if err != nil {
		t.Fatal(err)
	}

	p, err := h.LongestPath(context.Background(), []string{"A"}, "D", 0)
	if err != nil {
		t.Fatalf("LongestPath() error = %v", err)
	}
	if !slices.Equal(p.Names, []string{"A", "B", "C", "D"}) {
		t.Errorf("path = %v, want [A B C D]", p.Names)
	}
	if p.Length != 3 {
		t.Errorf("Length = %d, want 3", p.Length)
	}
	if !slices.Equal(p.Indices, []int{0, 1, 2, 3}) {
		t.Errorf("indices = %v, want [0 1 2 3]", p.Indices)
	}
}

func TestLongestPath_Errors(t *testing.T) {
	h, err := Construct(context.Background(), chain(), Config{Transitivity: closure.ModeAsserted})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := h.LongestPath(context.Background(), nil, "D", 0); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("empty sources error = %v, want INVALID_INPUT", err)
	}
	if _, err := h.LongestPath(context.Background(), []string{"Z"}, "D", 0); errors.GetCode(err) != errors.ErrCodeUnknownClass {
		t.Errorf("unknown source error = %v, want UNKNOWN_CLASS", err)
	}
	if _, err := h.LongestPath(context.Background(), []string{"A"}, "Z", 0); errors.GetCode(err) != errors.ErrCodeUnknownClass {
		t.Errorf("unknown target error = %v, want UNKNOWN_CLASS", err)
	}
	if _, err := h.LongestPath(context.Background(), []string{"D"}, "A", 0); errors.GetCode(err) != errors.ErrCodeNotFound {
		t.Errorf("unreachable target error = %v, want NOT_FOUND", err)
	}
}

func TestLongestPath_BudgetExhausted(t *testing.T) {
	h, err := Construct(context.Background(), chain(), Config{Transitivity: closure.ModeWarshall})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := h.LongestPath(context.Background(), []string{"A"}, "D", 1); errors.GetCode(err) != errors.ErrCodeResourceExhausted {
		t.Errorf("budget error = %v, want RESOURCE_EXHAUSTED", err)
	}
}

func TestCycles_NamedAndRestartable(t *testing.T) {
	p := staticProvider{
		names: []string{"A", "B", "C"},
		edges: []Edge{{"A", "A"}, {"B", "C"}, {"C", "B"}},
	}
	h, err := Construct(context.Background(), p, Config{Transitivity: closure.ModeAsserted})
	if err != nil {
		t.Fatal(err)
	}

	want := [][]string{{"A"}, {"B", "C"}}
	for pass := 0; pass < 2; pass++ {
		var got [][]string
		for c := range h.Cycles() {
			got = append(got, c)
		}
		if len(got) != len(want) {
			t.Fatalf("pass %d: %d cycles, want %d: %v", pass, len(got), len(want), got)
		}
		for i := range want {
			if !slices.Equal(got[i], want[i]) {
				t.Errorf("pass %d: cycle %d = %v, want %v", pass, i, got[i], want[i])
			}
		}
	}
}

func TestCollectCycles_Limit(t *testing.T) {
	p := staticProvider{
		names: []string{"A", "B", "C"},
		edges: []Edge{{"A", "A"}, {"B", "B"}, {"C", "C"}},
	}
	h, err := Construct(context.Background(), p, Config{})
	if err != nil {
		t.Fatal(err)
	}

	got, err := h.CollectCycles(2)
	if errors.GetCode(err) != errors.ErrCodeResourceExhausted {
		t.Fatalf("error = %v, want RESOURCE_EXHAUSTED", err)
	}
	if len(got) != 2 {
		t.Errorf("partial result has %d cycles, want 2", len(got))
	}
}

func TestFromParts_RoundTrip(t *testing.T) {
	h, err := Construct(context.Background(), chain(), Config{Transitivity: closure.ModeWarshall})
	if err != nil {
		t.Fatal(err)
	}

	rebuilt, err := FromParts(h.Index(), h.Asserted(), h.Closed(), h.Config())
	if err != nil {
		t.Fatalf("FromParts() error = %v", err)
	}

	ma, _ := h.Results()
	mb, _ := rebuilt.Results()
	if !ma.Equal(mb) {
		t.Error("rehydrated result matrix differs from the original")
	}
}

func TestFromParts_SizeMismatch(t *testing.T) {
	h, err := Construct(context.Background(), chain(), Config{})
	if err != nil {
		t.Fatal(err)
	}

	ix := NewIndex([]string{"A", "B"})
	if _, err := FromParts(ix, h.Asserted(), h.Closed(), h.Config()); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
