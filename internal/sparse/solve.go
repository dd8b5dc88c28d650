package sparse

// Solve solves A*x = b in place given A's Cholesky factor L (A = L*L^T):
// forward substitution L*z = b, then backward substitution L^T*x = z.
// b is consumed as scratch and holds x on return.
func (f *Factor) Solve(b []float64) []float64 {
	sym := f.sym
	n := sym.N

	// forward: L*z = b
	for k := 0; k < n; k++ {
		lo, hi := sym.Lp[k], sym.Lp[k+1]
		b[k] /= f.Lx[lo]
		for idx := lo + 1; idx < hi; idx++ {
			b[sym.Li[idx]] -= f.Lx[idx] * b[k]
		}
	}
	// backward: L^T*x = z
	for k := n - 1; k >= 0; k-- {
		lo, hi := sym.Lp[k], sym.Lp[k+1]
		sum := b[k]
		for idx := lo + 1; idx < hi; idx++ {
			sum -= f.Lx[idx] * b[sym.Li[idx]]
		}
		b[k] = sum / f.Lx[lo]
	}
	return b
}
