// Package matrix implements a dense boolean square matrix with bit-packed
// rows, used as the adjacency representation for class hierarchies.
//
// The matrix supports the (AND, OR) boolean semiring operations needed for
// reachability closure: element access, row-wise OR, boolean matrix product,
// and identity union. All operations are deterministic; two matrices built
// from the same cells compare equal bit for bit.
package matrix
