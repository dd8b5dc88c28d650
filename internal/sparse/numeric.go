package sparse

import (
	"math"

	"hydrosolve/hydroerr"
)

// Factor holds the numeric Cholesky factor L (A = L*L^T) over a Symbolic
// pattern: Lx is aligned with sym.Li exactly as Matrix.Ax is.
type Factor struct {
	sym *Symbolic
	Lx  []float64
}

// childBuckets groups, for each row k, the columns j < k whose column
// pattern's first off-diagonal entry is k. This only seeds Numeric's
// buckets: Numeric re-files each column under its next off-diagonal row
// once that column has updated row k, so that when column k is formed
// buckets[k] holds every earlier column j with L[k,j] != 0. It is rebuilt
// on every Numeric call.
func childBuckets(sym *Symbolic) [][]int {
	n := sym.N
	buckets := make([][]int, n)
	for j := 0; j < n; j++ {
		lo, hi := sym.Lp[j], sym.Lp[j+1]
		if hi-lo > 1 {
			k := sym.Li[lo+1]
			buckets[k] = append(buckets[k], j)
		}
	}
	return buckets
}

// Numeric performs a left-looking sparse Cholesky factorization of m over
// its Symbolic pattern: for each column k, subtract every earlier column
// j's contribution (where L[k,j] != 0) from k's own entries, then divide by
// the square root of the resulting diagonal. Returns a Numeric error — not
// a panic — if a diagonal pivot is non-positive, which for this solver's
// SPD-by-construction Jacobian indicates a modeling bug (e.g. a
// disconnected component that slipped past Network.Finalize) rather than an
// expected runtime condition.
func Numeric(m *Matrix) (*Factor, error) {
	sym := m.sym
	n := sym.N
	lx := make([]float64, len(sym.Li))
	buckets := childBuckets(sym)
	// next[j] is the position in column j of the row its next update targets.
	next := make([]int, n)
	for j := 0; j < n; j++ {
		next[j] = sym.Lp[j] + 1
	}

	// scratch values of the column being formed, keyed by row, cleared per column.
	work := make(map[int]float64, 8)

	for k := 0; k < n; k++ {
		lo, hi := sym.Lp[k], sym.Lp[k+1]
		for idx := lo; idx < hi; idx++ {
			work[sym.Li[idx]] = m.Ax[idx]
		}

		for _, j := range buckets[k] {
			pos, jhi := next[j], sym.Lp[j+1]
			ljk := lx[pos] // L[k,j]: column j is filed under k only while its next row is k
			if ljk != 0 {
				for idx := pos; idx < jhi; idx++ {
					work[sym.Li[idx]] -= ljk * lx[idx]
				}
			}
			next[j] = pos + 1
			if pos+1 < jhi {
				nk := sym.Li[pos+1]
				buckets[nk] = append(buckets[nk], j)
			}
		}

		dkk := work[k]
		if dkk <= 0 {
			return nil, hydroerr.New(hydroerr.Numeric, "", "non-positive pivot at column %d (got %g); Jacobian is not SPD", k, dkk)
		}
		lkk := math.Sqrt(dkk)
		for idx := lo; idx < hi; idx++ {
			r := sym.Li[idx]
			v := work[r]
			if r == k {
				lx[idx] = lkk
			} else {
				lx[idx] = v / lkk
			}
		}
		for key := range work {
			delete(work, key)
		}
	}

	return &Factor{sym: sym, Lx: lx}, nil
}
