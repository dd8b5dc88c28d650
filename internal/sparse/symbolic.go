package sparse

// Symbolic is the predicted fill-in pattern of the Cholesky factor L: Lp is
// the CSC column-pointer array, Li the row indices (column j's entries are
// Li[Lp[j]:Lp[j+1]], sorted ascending, first entry always j itself).
type Symbolic struct {
	N  int
	Lp []int
	Li []int

	// scanCalls counts RowPos invocations. Only BuildLayout (once per
	// solver setup) and tests/diagnostics (Matrix.Add) should ever drive
	// this up; a hot assembly loop scanning instead of using a cached
	// CSCIndex would show up here as growth proportional to iteration
	// count, which TestAssemblyHotPathNeverScans in sparse_test.go checks for.
	scanCalls int
}

// RowPos maps (col, row) to its offset into Li/Lx, or returns ok=false if
// (col, row) is not in the predicted pattern. Used by BuildLayout (once per
// solver setup), Matrix.Add/Diag and the CSC-index-correctness tests; the
// numeric factorization does not call it.
func (s *Symbolic) RowPos(col, row int) (int, bool) {
	s.scanCalls++
	for k := s.Lp[col]; k < s.Lp[col+1]; k++ {
		if s.Li[k] == row {
			return k, true
		}
	}
	return 0, false
}

// ScanCalls reports how many times RowPos has been invoked on s so far.
func (s *Symbolic) ScanCalls() int { return s.scanCalls }

// Factorize predicts L's fill-in from a Pattern by simulating left-looking
// elimination one column at a time: column k's structure starts as A's own
// lower pattern in column k, then absorbs the fill each earlier column j
// contributes wherever L[k,j] != 0 (tracked via "bucket", the classic
// linked-list-of-columns-touching-row-k device from sparse symbolic
// factorization, e.g. George & Liu's elimination-graph method).
func Factorize(p *Pattern) *Symbolic {
	n := p.N
	cols := make([][]int, n)
	bucket := make([][]int, n)

	for k := 0; k < n; k++ {
		present := make(map[int]bool)
		var rows []int
		add := func(r int) {
			if !present[r] {
				present[r] = true
				rows = append(rows, r)
			}
		}
		add(k)
		for _, r := range p.Column(k) {
			add(r)
		}
		for _, j := range bucket[k] {
			for _, r := range cols[j] {
				if r > k {
					add(r)
				}
			}
		}
		sortInts(rows)
		cols[k] = rows
		if len(rows) > 1 {
			next := rows[1]
			bucket[next] = append(bucket[next], k)
		}
	}

	lp := make([]int, n+1)
	var li []int
	for j := 0; j < n; j++ {
		lp[j] = len(li)
		li = append(li, cols[j]...)
	}
	lp[n] = len(li)
	return &Symbolic{N: n, Lp: lp, Li: li}
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
