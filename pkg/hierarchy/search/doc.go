// Package search runs simple-path and elementary-cycle queries over a
// boolean adjacency matrix, treating cell (i,j) as a directed edge i→j.
//
// Both searches are explicit DFS backtracking. The no-repeated-node
// constraint keeps enumeration finite even on cyclic graphs; worst-case cost
// is exponential in N and is inherent to the problem, so callers working
// with anything beyond small class universes should pass a visit budget.
//
// All results are deterministic for a given matrix: sources and successors
// are visited in ascending index order, longest-path ties break to the
// lexicographically smallest index sequence, and cycles are produced grouped
// by their smallest node index.
package search
