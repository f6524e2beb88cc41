package search

import (
	"context"
	"errors"
	"slices"
)

var (
	// ErrNoPath is returned by [LongestPath] when no simple path connects
	// any source to the target.
	ErrNoPath = errors.New("no path to target")

	// ErrBudgetExceeded is returned when a search visits more nodes than
	// its configured budget allows.
	ErrBudgetExceeded = errors.New("search budget exceeded")
)

// Graph is the read-only adjacency view the searches traverse.
// *matrix.Matrix satisfies it.
type Graph interface {
	Size() int
	Get(i, j int) bool
	Successors(i int) []int
}

// LongestPath finds a longest simple path from any of the sources to the
// target and returns its node indices. The path length in edges is
// len(path)-1. Among equal-length candidates the lexicographically smallest
// index sequence wins, so results are stable across runs.
//
// Sources are deduplicated and visited in ascending order. A source equal to
// the target yields no path: simple paths carry at least one edge and never
// repeat a node.
//
// budget caps the number of DFS node visits; zero or negative means
// unbounded. Exceeding it returns [ErrBudgetExceeded], and ctx cancellation
// aborts with the context's error. When no candidate exists the result is
// nil and [ErrNoPath].
func LongestPath(ctx context.Context, g Graph, sources []int, target int, budget int) ([]int, error) {
	starts := slices.Clone(sources)
	slices.Sort(starts)
	starts = slices.Compact(starts)

	var (
		best    []int
		visited = make([]bool, g.Size())
		path    = make([]int, 0, g.Size())
		visits  int
	)

	var dfs func(v int) error
	dfs = func(v int) error {
		visits++
		if budget > 0 && visits > budget {
			return ErrBudgetExceeded
		}
		if visits%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		visited[v] = true
		path = append(path, v)

		if v == target && len(path) > 1 {
			if better(path, best) {
				best = slices.Clone(path)
			}
		} else {
			for _, w := range g.Successors(v) {
				if visited[w] {
					continue
				}
				if err := dfs(w); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		visited[v] = false
		return nil
	}

	for _, s := range starts {
		if s < 0 || s >= g.Size() || s == target {
			continue
		}
		if err := dfs(s); err != nil {
			return nil, err
		}
	}

	if best == nil {
		return nil, ErrNoPath
	}
	return best, nil
}

// better reports whether candidate beats current: strictly longer, or equal
// length with a lexicographically smaller index sequence.
func better(candidate, current []int) bool {
	if current == nil {
		return true
	}
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	return slices.Compare(candidate, current) < 0
}
