package matrix

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// Matrix is an N×N boolean matrix with rows packed into 64-bit words.
// Cell (i,j) set means there is a directed edge i→j.
//
// The zero value is a valid 0×0 matrix. Matrix is not safe for concurrent
// mutation; concurrent reads are fine.
type Matrix struct {
	n     int
	wpr   int // words per row
	words []uint64
}

// New creates an n×n matrix with all cells unset.
// Panics if n is negative.
func New(n int) *Matrix {
	if n < 0 {
		panic(fmt.Sprintf("matrix: negative size %d", n))
	}
	wpr := (n + wordBits - 1) / wordBits
	return &Matrix{n: n, wpr: wpr, words: make([]uint64, n*wpr)}
}

// Identity creates an n×n matrix with exactly the diagonal set.
func Identity(n int) *Matrix {
	m := New(n)
	for i := 0; i < n; i++ {
		m.Set(i, i)
	}
	return m
}

// Size returns the dimension N.
func (m *Matrix) Size() int { return m.n }

// Set marks cell (i,j). Indices must be in [0,N).
func (m *Matrix) Set(i, j int) {
	m.words[i*m.wpr+j/wordBits] |= 1 << (uint(j) % wordBits)
}

// Get reports whether cell (i,j) is set. Indices must be in [0,N).
func (m *Matrix) Get(i, j int) bool {
	return m.words[i*m.wpr+j/wordBits]&(1<<(uint(j)%wordBits)) != 0
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{n: m.n, wpr: m.wpr, words: make([]uint64, len(m.words))}
	copy(c.words, m.words)
	return c
}

// Equal reports whether both matrices have the same size and cells.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.n != o.n {
		return false
	}
	for i, w := range m.words {
		if o.words[i] != w {
			return false
		}
	}
	return true
}

// Or sets every cell of m that is set in o. Both matrices must have the
// same size.
func (m *Matrix) Or(o *Matrix) {
	if m.n != o.n {
		panic(fmt.Sprintf("matrix: size mismatch %d vs %d", m.n, o.n))
	}
	for i := range m.words {
		m.words[i] |= o.words[i]
	}
}

// OrIdentity sets every diagonal cell, leaving off-diagonal cells unchanged.
func (m *Matrix) OrIdentity() {
	for i := 0; i < m.n; i++ {
		m.Set(i, i)
	}
}

// OrRow ORs row src into row dst in place.
func (m *Matrix) OrRow(dst, src int) {
	d := m.words[dst*m.wpr : (dst+1)*m.wpr]
	s := m.words[src*m.wpr : (src+1)*m.wpr]
	for i := range d {
		d[i] |= s[i]
	}
}

// Mul returns the boolean matrix product m∘o under the (AND, OR) semiring:
// out[i][j] is set iff some k has m[i][k] and o[k][j]. Both matrices must
// have the same size.
func (m *Matrix) Mul(o *Matrix) *Matrix {
	if m.n != o.n {
		panic(fmt.Sprintf("matrix: size mismatch %d vs %d", m.n, o.n))
	}
	out := New(m.n)
	for i := 0; i < m.n; i++ {
		dst := out.words[i*out.wpr : (i+1)*out.wpr]
		for k := 0; k < m.n; k++ {
			if !m.Get(i, k) {
				continue
			}
			src := o.words[k*o.wpr : (k+1)*o.wpr]
			for w := range dst {
				dst[w] |= src[w]
			}
		}
	}
	return out
}

// IsZero reports whether no cell is set.
func (m *Matrix) IsZero() bool {
	for _, w := range m.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Ones returns the number of set cells.
func (m *Matrix) Ones() int {
	total := 0
	for _, w := range m.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// Full reports whether every cell is set (the universal relation).
func (m *Matrix) Full() bool {
	return m.Ones() == m.n*m.n
}

// Successors returns the column indices set in row i, in ascending order.
func (m *Matrix) Successors(i int) []int {
	var out []int
	row := m.words[i*m.wpr : (i+1)*m.wpr]
	for w, word := range row {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, w*wordBits+b)
			word &= word - 1
		}
	}
	return out
}

// Cells returns every set cell as (row, col) pairs in row-major order.
func (m *Matrix) Cells() [][2]int {
	var out [][2]int
	for i := 0; i < m.n; i++ {
		for _, j := range m.Successors(i) {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// Rows returns the matrix as nested bool slices, row-major.
// The result is independent of the matrix.
func (m *Matrix) Rows() [][]bool {
	rows := make([][]bool, m.n)
	for i := range rows {
		rows[i] = make([]bool, m.n)
		for _, j := range m.Successors(i) {
			rows[i][j] = true
		}
	}
	return rows
}

// String renders the matrix as lines of 0s and 1s, one row per line.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if m.Get(i, j) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		if i < m.n-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// MarshalBinary encodes the matrix as an 8-byte big-endian size followed by
// the packed row words. The encoding is deterministic.
func (m *Matrix) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8+8*len(m.words))
	binary.BigEndian.PutUint64(buf, uint64(m.n))
	for i, w := range m.words {
		binary.BigEndian.PutUint64(buf[8+8*i:], w)
	}
	return buf, nil
}

// UnmarshalBinary decodes a matrix produced by MarshalBinary.
func (m *Matrix) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("matrix: truncated header")
	}
	n := int(binary.BigEndian.Uint64(data))
	wpr := (n + wordBits - 1) / wordBits
	if len(data) != 8+8*n*wpr {
		return fmt.Errorf("matrix: size %d needs %d bytes, have %d", n, 8+8*n*wpr, len(data))
	}
	m.n = n
	m.wpr = wpr
	m.words = make([]uint64, n*wpr)
	for i := range m.words {
		m.words[i] = binary.BigEndian.Uint64(data[8+8*i:])
	}
	return nil
}
