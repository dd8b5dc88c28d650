package sparse

import "hydrosolve/hydroerr"

// Matrix holds the numeric values of a symmetric matrix A whose structural
// nonzeros are a subset of a Symbolic factor's predicted pattern (A's own
// pattern is always contained in L's, since L's pattern is A's plus fill).
// Values are stored aligned with the Symbolic's Li array so assembly and
// factorization share one set of offsets.
type Matrix struct {
	sym *Symbolic
	Ax  []float64
}

// NewMatrix allocates a zeroed Matrix over sym's pattern.
func NewMatrix(sym *Symbolic) *Matrix {
	return &Matrix{sym: sym, Ax: make([]float64, len(sym.Li))}
}

// Reset zeroes all values without reallocating, for reuse across Newton
// iterations within a time-step.
func (m *Matrix) Reset() {
	for i := range m.Ax {
		m.Ax[i] = 0
	}
}

// Add accumulates val into A[row,col] (either order; the pair is swapped so
// that row >= col, since only the lower triangle is stored) by scanning the
// column for its offset via Symbolic.RowPos. This is NOT the assembler's hot
// path — hydraulic.newtonLoop never calls it — it exists for tests and any
// one-off diagnostic write where a precomputed CSCIndex isn't on hand.
// Returns a Numeric error if (row,col) falls outside the predicted pattern,
// which would indicate a symbolic/numeric assembly mismatch.
func (m *Matrix) Add(row, col int, val float64) error {
	if row < col {
		row, col = col, row
	}
	pos, ok := m.sym.RowPos(col, row)
	if !ok {
		return hydroerr.New(hydroerr.Numeric, "", "assembly position (%d,%d) not in predicted sparsity pattern", row, col)
	}
	m.Ax[pos] += val
	return nil
}

// AddAt accumulates val directly into the value array at pos, a position
// previously returned by Symbolic.RowPos and cached in a link's CSCIndex
// (network.Link.CSC). This is the assembler's actual hot path: every Newton
// iteration scatters each link's (gInv, -gInv) contributions through
// AddAt, never through a column scan — the per-link precomputed indices
// spec.md §4.2 names as eliminating hashing/searching from assembly. A
// negative pos (CSCIndex's "not present" marker, e.g. an off-diagonal term
// whose other endpoint is fixed-head) is a no-op.
func (m *Matrix) AddAt(pos int, val float64) {
	if pos < 0 {
		return
	}
	m.Ax[pos] += val
}

// Diag returns the current value of A[i,i], found by a RowPos scan; like
// Add, it is a diagnostic read that the assembler does not use.
func (m *Matrix) Diag(i int) float64 {
	pos, ok := m.sym.RowPos(i, i)
	if !ok {
		return 0
	}
	return m.Ax[pos]
}
