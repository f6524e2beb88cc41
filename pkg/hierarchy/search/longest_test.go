package search

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/ontomat/pkg/matrix"
)

func buildMatrix(n int, edges [][2]int) *matrix.Matrix {
	m := matrix.New(n)
	for _, e := range edges {
		m.Set(e[0], e[1])
	}
	return m
}

func TestLongestPath_PrefersLongRouteOverShortcut(t *testing.T) {
	// a→b, b→c, c→d, a→d: the 3-edge chain beats the 1-edge shortcut.
	m := buildMatrix(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 3}})

	got, err := LongestPath(context.Background(), m, []int{0}, 3, 0)
	if err != nil {
		t.Fatalf("LongestPath() error: %v", err)
	}

	want := []int{0, 1, 2, 3}
	if !equalInts(got, want) {
		t.Errorf("LongestPath() = %v, want %v", got, want)
	}
}

func TestLongestPath_TieBreaksLexicographically(t *testing.T) {
	// Two 2-edge paths to node 3: [0 1 3] and [0 2 3]. The smaller index
	// sequence wins.
	m := buildMatrix(4, [][2]int{{0, 1}, {1, 3}, {0, 2}, {2, 3}})

	got, err := LongestPath(context.Background(), m, []int{0}, 3, 0)
	if err != nil {
		t.Fatalf("LongestPath() error: %v", err)
	}

	want := []int{0, 1, 3}
	if !equalInts(got, want) {
		t.Errorf("LongestPath() = %v, want %v", got, want)
	}
}

func TestLongestPath_MultipleSources(t *testing.T) {
	// Source 2 reaches 4 in one edge, source 0 in three.
	m := buildMatrix(5, [][2]int{{0, 1}, {1, 3}, {3, 4}, {2, 4}})

	got, err := LongestPath(context.Background(), m, []int{2, 0}, 4, 0)
	if err != nil {
		t.Fatalf("LongestPath() error: %v", err)
	}

	want := []int{0, 1, 3, 4}
	if !equalInts(got, want) {
		t.Errorf("LongestPath() = %v, want %v", got, want)
	}
}

func TestLongestPath_NoPath(t *testing.T) {
	m := buildMatrix(3, [][2]int{{0, 1}})

	if _, err := LongestPath(context.Background(), m, []int{0}, 2, 0); !errors.Is(err, ErrNoPath) {
		t.Errorf("LongestPath() error = %v, want ErrNoPath", err)
	}
}

func TestLongestPath_SourceEqualsTarget(t *testing.T) {
	m := buildMatrix(2, [][2]int{{0, 1}, {1, 0}})

	if _, err := LongestPath(context.Background(), m, []int{0}, 0, 0); !errors.Is(err, ErrNoPath) {
		t.Errorf("LongestPath() error = %v, want ErrNoPath", err)
	}
}

func TestLongestPath_TerminatesOnCyclicGraph(t *testing.T) {
	// 0↔1 cycle on the way to 2: the no-repeat constraint bounds the search.
	m := buildMatrix(3, [][2]int{{0, 1}, {1, 0}, {1, 2}})

	got, err := LongestPath(context.Background(), m, []int{0}, 2, 0)
	if err != nil {
		t.Fatalf("LongestPath() error: %v", err)
	}

	want := []int{0, 1, 2}
	if !equalInts(got, want) {
		t.Errorf("LongestPath() = %v, want %v", got, want)
	}
}

func TestLongestPath_BudgetExceeded(t *testing.T) {
	// Dense 8-node graph: a 2-visit budget cannot cover it.
	n := 8
	m := matrix.New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				m.Set(i, j)
			}
		}
	}

	if _, err := LongestPath(context.Background(), m, []int{0}, n-1, 2); !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("LongestPath() error = %v, want ErrBudgetExceeded", err)
	}
}

func TestLongestPath_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Large enough that the periodic context check fires.
	n := 12
	m := matrix.New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				m.Set(i, j)
			}
		}
	}

	if _, err := LongestPath(ctx, m, []int{0}, n-1, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("LongestPath() error = %v, want context.Canceled", err)
	}
}

func TestLongestPath_EmptyGraph(t *testing.T) {
	m := matrix.New(0)

	if _, err := LongestPath(context.Background(), m, nil, 0, 0); !errors.Is(err, ErrNoPath) {
		t.Errorf("LongestPath() error = %v, want ErrNoPath", err)
	}
}

func TestLongestPath_Deterministic(t *testing.T) {
	m := buildMatrix(6, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {1, 4}, {4, 5}})

	first, err := LongestPath(context.Background(), m, []int{0}, 5, 0)
	if err != nil {
		t.Fatalf("LongestPath() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := LongestPath(context.Background(), m, []int{0}, 5, 0)
		if err != nil {
			t.Fatalf("LongestPath() error: %v", err)
		}
		if !equalInts(first, again) {
			t.Fatalf("run %d: LongestPath() = %v, want %v", i, again, first)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
