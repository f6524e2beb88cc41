package closure

import (
	"math/rand"
	"testing"

	"github.com/matzehuels/ontomat/pkg/matrix"
)

func chainMatrix(n int) *matrix.Matrix {
	m := matrix.New(n)
	for i := 0; i < n-1; i++ {
		m.Set(i, i+1)
	}
	return m
}

func TestClose_Chain(t *testing.T) {
	// a→b→c→d closes to all forward pairs.
	for _, c := range []Closer{UnionOfPowers{}, Warshall{}} {
		got := c.Close(chainMatrix(4))
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				want := j > i
				if got.Get(i, j) != want {
					t.Errorf("%T: Get(%d, %d) = %v, want %v", c, i, j, got.Get(i, j), want)
				}
			}
		}
	}
}

func TestClose_MutualPair(t *testing.T) {
	// a→b, b→a yields self-loops at both nodes plus mutual reachability.
	m := matrix.New(2)
	m.Set(0, 1)
	m.Set(1, 0)

	for _, c := range []Closer{UnionOfPowers{}, Warshall{}} {
		got := c.Close(m)
		if !got.Full() {
			t.Errorf("%T: closure of 2-cycle = %q, want saturated", c, got.String())
		}
	}
}

func TestClose_CycleInducesSelfLoops(t *testing.T) {
	// 3-cycle a→b→c→a: every node on the cycle gains a self-loop.
	m := matrix.New(3)
	m.Set(0, 1)
	m.Set(1, 2)
	m.Set(2, 0)

	for _, c := range []Closer{UnionOfPowers{}, Warshall{}} {
		got := c.Close(m)
		for i := 0; i < 3; i++ {
			if !got.Get(i, i) {
				t.Errorf("%T: Get(%d, %d) = false, want self-loop", c, i, i)
			}
		}
	}
}

func TestClose_UnrelatedNodeUntouched(t *testing.T) {
	// 4-node chain plus isolated node e: no row or column of e is set.
	m := matrix.New(5)
	m.Set(0, 1)
	m.Set(1, 2)
	m.Set(2, 3)

	for _, c := range []Closer{UnionOfPowers{}, Warshall{}} {
		got := c.Close(m)
		for i := 0; i < 5; i++ {
			if got.Get(4, i) || got.Get(i, 4) {
				t.Errorf("%T: closure touches isolated node: %q", c, got.String())
			}
		}
		if got.Ones() != 6 {
			t.Errorf("%T: Ones() = %d, want 6 (3 asserted + 3 shortcuts)", c, got.Ones())
		}
	}
}

func TestClose_EmptyMatrix(t *testing.T) {
	for _, c := range []Closer{UnionOfPowers{}, Warshall{}} {
		got := c.Close(matrix.New(0))
		if got.Size() != 0 {
			t.Errorf("%T: Size() = %d, want 0", c, got.Size())
		}
	}
}

func TestClose_Monotone(t *testing.T) {
	m := matrix.New(4)
	m.Set(0, 1)
	m.Set(1, 2)
	m.Set(3, 0)

	for _, c := range []Closer{UnionOfPowers{}, Warshall{}} {
		got := c.Close(m)
		for _, cell := range m.Cells() {
			if !got.Get(cell[0], cell[1]) {
				t.Errorf("%T: asserted cell (%d,%d) missing from closure", c, cell[0], cell[1])
			}
		}
	}
}

func TestClose_Idempotent(t *testing.T) {
	m := matrix.New(5)
	m.Set(0, 1)
	m.Set(1, 2)
	m.Set(2, 0)
	m.Set(3, 4)

	for _, c := range []Closer{UnionOfPowers{}, Warshall{}} {
		once := c.Close(m)
		twice := c.Close(once)
		if !once.Equal(twice) {
			t.Errorf("%T: closure(closure(m)) != closure(m)", c)
		}
	}
}

func TestClose_AlgorithmsAgreeOnRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(12)
		m := matrix.New(n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if rng.Float64() < 0.25 {
					m.Set(i, j)
				}
			}
		}

		up := UnionOfPowers{}.Close(m)
		wa := Warshall{}.Close(m)
		if !up.Equal(wa) {
			t.Fatalf("trial %d: union-of-powers and Warshall disagree on\n%s\nup:\n%s\nwarshall:\n%s",
				trial, m, up, wa)
		}
	}
}

func TestClose_InputNotModified(t *testing.T) {
	m := matrix.New(3)
	m.Set(0, 1)
	m.Set(1, 2)
	before := m.Clone()

	UnionOfPowers{}.Close(m)
	Warshall{}.Close(m)

	if !m.Equal(before) {
		t.Error("Close modified its input")
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"asserted", "powers", "warshall", "reasoning"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q) error: %v", s, err)
		}
	}
	if _, err := ParseMode("dijkstra"); err == nil {
		t.Error("ParseMode(\"dijkstra\") = nil error, want INVALID_MODE")
	}
}

func TestParseScope(t *testing.T) {
	for _, s := range []string{"asserted", "closure"} {
		if _, err := ParseScope(s); err != nil {
			t.Errorf("ParseScope(%q) error: %v", s, err)
		}
	}
	if _, err := ParseScope("everything"); err == nil {
		t.Error("ParseScope(\"everything\") = nil error, want INVALID_SCOPE")
	}
}

func TestForMode(t *testing.T) {
	if ForMode(ModeAsserted) != nil {
		t.Error("ForMode(asserted) != nil, want nil")
	}
	if _, ok := ForMode(ModeUnionOfPowers).(UnionOfPowers); !ok {
		t.Error("ForMode(powers) is not UnionOfPowers")
	}
	if _, ok := ForMode(ModeWarshall).(Warshall); !ok {
		t.Error("ForMode(warshall) is not Warshall")
	}
	if _, ok := ForMode(ModeReasoning).(UnionOfPowers); !ok {
		t.Error("ForMode(reasoning) is not UnionOfPowers")
	}
}
