package inp

// appendPattern accumulates "id v1 v2 ..." lines; a pattern id spanning
// multiple lines (EPANET wraps long patterns across rows) appends rather
// than overwrites.
func appendPattern(vals map[string][]float64, f []string) {
	if len(f) < 2 {
		return
	}
	id := f[0]
	for _, tok := range f[1:] {
		if v, err := parseFloat(tok); err == nil {
			vals[id] = append(vals[id], v)
		}
	}
}

// appendCurve accumulates "id x y" lines.
func appendCurve(pts map[string][][2]float64, f []string) {
	if len(f) < 3 {
		return
	}
	x, e1 := parseFloat(f[1])
	y, e2 := parseFloat(f[2])
	if e1 != nil || e2 != nil {
		return
	}
	pts[f[0]] = append(pts[f[0]], [2]float64{x, y})
}
