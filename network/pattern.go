package network

// Pattern is a cyclic sequence of multipliers used to scale a base demand
// or a reservoir's fixed head over the course of an extended-period
// simulation.
type Pattern struct {
	ID          string
	Multipliers []float64
}

// At returns the multiplier in effect at simulation clock time t (seconds),
// given the pattern's time step (seconds). The sequence is cyclic:
// index = (t / step) mod len(Multipliers).
func (p *Pattern) At(t, step int) float64 {
	if len(p.Multipliers) == 0 {
		return 1.0
	}
	if step <= 0 {
		step = 3600
	}
	idx := (t / step) % len(p.Multipliers)
	if idx < 0 {
		idx += len(p.Multipliers)
	}
	return p.Multipliers[idx]
}

// Curve is an ordered sequence of (x, y) points defining a piecewise-linear
// function. Pump head-vs-flow curves are fitted from its points
// (inp.resolvePumpCurves); tank volume curves are rejected by
// Network.Finalize, and a GPV's curve (Link.GPVCurveID) is not evaluated.
type Curve struct {
	ID     string
	X      []float64
	Y      []float64
}

// Eval returns the piecewise-linear interpolated value of the curve at x,
// clamping to the first/last segment's slope outside the curve's domain.
func (c *Curve) Eval(x float64) float64 {
	n := len(c.X)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return c.Y[0]
	}
	if x <= c.X[0] {
		return extrapolate(c.X[0], c.Y[0], c.X[1], c.Y[1], x)
	}
	if x >= c.X[n-1] {
		return extrapolate(c.X[n-2], c.Y[n-2], c.X[n-1], c.Y[n-1], x)
	}
	for i := 0; i < n-1; i++ {
		if x >= c.X[i] && x <= c.X[i+1] {
			return interp(c.X[i], c.Y[i], c.X[i+1], c.Y[i+1], x)
		}
	}
	return c.Y[n-1]
}

func interp(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

func extrapolate(x0, y0, x1, y1, x float64) float64 {
	return interp(x0, y0, x1, y1, x)
}
