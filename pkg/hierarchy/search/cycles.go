package search

import "iter"

// Cycles enumerates every elementary cycle of the directed graph, including
// length-1 self-loops read off the diagonal. The sequence is lazy and
// restartable: each range over it re-runs the enumeration from the start.
//
// Cycles are produced grouped by their smallest node index ascending (each
// elementary cycle is emitted exactly once, rooted at its smallest node),
// then in DFS order with successors visited ascending, so output order is
// deterministic for a given matrix.
//
// The algorithm follows Johnson's elementary-circuit enumeration: for each
// root s, the DFS is restricted to the strongly connected component of s
// within the subgraph induced on nodes ≥ s, with blocked-set bookkeeping to
// avoid fruitless re-exploration.
func Cycles(g Graph) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := g.Size()
		for s := 0; s < n; s++ {
			if g.Get(s, s) {
				if !yield([]int{s}) {
					return
				}
			}
			comp := sccContaining(g, s)
			if comp == nil {
				continue
			}
			if !circuits(g, s, comp, yield) {
				return
			}
		}
	}
}

// CollectCycles materializes the cycle sequence with a cap. limit zero or
// negative means unbounded. Exceeding the cap returns the partial result and
// [ErrBudgetExceeded].
func CollectCycles(g Graph, limit int) ([][]int, error) {
	var out [][]int
	for c := range Cycles(g) {
		if limit > 0 && len(out) >= limit {
			return out, ErrBudgetExceeded
		}
		out = append(out, c)
	}
	return out, nil
}

// sccContaining returns membership of the strongly connected component of s
// in the subgraph induced on nodes ≥ s, or nil when that component is
// trivial (just s with no multi-node cycle through it).
func sccContaining(g Graph, s int) []bool {
	n := g.Size()
	const unvisited = -1

	index := make([]int, n)
	low := make([]int, n)
	for i := range index {
		index[i] = unvisited
	}
	onStack := make([]bool, n)
	var stack []int
	next := 0

	var comp []bool

	var strongConnect func(v int)
	strongConnect = func(v int) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Successors(v) {
			if w < s {
				continue
			}
			if index[w] == unvisited {
				strongConnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] && index[w] < low[v] {
				low[v] = index[w]
			}
		}

		if low[v] == index[v] {
			members := make([]bool, n)
			size := 0
			contains := false
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				members[w] = true
				size++
				if w == s {
					contains = true
				}
				if w == v {
					break
				}
			}
			if contains && size > 1 {
				comp = members
			}
		}
	}

	strongConnect(s)
	return comp
}

// circuits emits every elementary cycle rooted at s inside its component,
// Johnson-style. Returns false when the consumer stopped the sequence.
func circuits(g Graph, s int, comp []bool, yield func([]int) bool) bool {
	n := g.Size()
	blocked := make([]bool, n)
	blockList := make([][]int, n)
	var path []int
	stopped := false

	var unblock func(v int)
	unblock = func(v int) {
		blocked[v] = false
		for _, w := range blockList[v] {
			if blocked[w] {
				unblock(w)
			}
		}
		blockList[v] = nil
	}

	var dfs func(v int) bool
	dfs = func(v int) bool {
		found := false
		blocked[v] = true
		path = append(path, v)

		for _, w := range g.Successors(v) {
			if !comp[w] || w == v {
				continue // self-loops are emitted at their own root
			}
			if stopped {
				break
			}
			if w == s {
				cycle := make([]int, len(path))
				copy(cycle, path)
				if !yield(cycle) {
					stopped = true
					break
				}
				found = true
			} else if !blocked[w] {
				if dfs(w) {
					found = true
				}
			}
		}

		if found {
			unblock(v)
		} else {
			for _, w := range g.Successors(v) {
				if !comp[w] || w == v {
					continue
				}
				blockList[w] = append(blockList[w], v)
			}
		}

		path = path[:len(path)-1]
		return found
	}

	dfs(s)
	return !stopped
}
