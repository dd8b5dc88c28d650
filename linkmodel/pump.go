package linkmodel

import "math"

// FitSinglePoint fits H(q) = H0 - a*q^b with b=2 from a single design point
// (shutoffHead, designHead, designFlow), per spec.md §4.1.
func FitSinglePoint(shutoffHead, designHead, designFlow float64) (a, b float64) {
	b = 2.0
	if designFlow == 0 {
		return 0, b
	}
	a = (shutoffHead - designHead) / (designFlow * designFlow)
	return
}

// FitCurve fits H(q) = H0 - a*q^b from an ordered multi-point pump curve
// (q increasing, h decreasing). It uses the classic three-point EPANET fit:
// the first point's q is taken as 0 with head H0 (a curve that does not
// start at q=0 is extrapolated back to q=0 using the first segment's
// slope); the middle point is treated as the design point and the last as
// the low-head/high-flow point, giving
//
//	b = ln((H0-h1)/(H0-h2)) / ln(q1/q2)
//	a = (H0-h1) / q1^b
//
// A 2-point curve degenerates to FitSinglePoint with b=2.
func FitCurve(qs, hs []float64) (h0, a, b float64, err error) {
	n := len(qs)
	if n == 0 {
		return 0, 0, 0, errNoCurvePoints
	}
	if qs[0] == 0 {
		h0 = hs[0]
	} else {
		// extrapolate back to q=0 using the first segment's slope
		if n < 2 {
			h0 = hs[0]
		} else {
			slope := (hs[1] - hs[0]) / (qs[1] - qs[0])
			h0 = hs[0] - slope*qs[0]
		}
	}
	if n == 1 {
		a, b = FitSinglePoint(h0, hs[0], qs[0])
		return h0, a, b, nil
	}
	// pick the middle point as design, the last as the high-flow point
	mid := n / 2
	if qs[0] == 0 {
		if mid == 0 {
			mid = 1
		}
	}
	last := n - 1
	if mid == last {
		mid = last - 1
	}
	if mid <= 0 || qs[mid] <= 0 || qs[last] <= 0 || qs[mid] == qs[last] {
		a, b = FitSinglePoint(h0, hs[last], qs[last])
		return h0, a, b, nil
	}
	num1 := h0 - hs[mid]
	num2 := h0 - hs[last]
	if num1 <= 0 || num2 <= 0 {
		a, b = FitSinglePoint(h0, hs[last], qs[last])
		return h0, a, b, nil
	}
	b = math.Log(num1/num2) / math.Log(qs[mid]/qs[last])
	a = num1 / math.Pow(qs[mid], b)
	return h0, a, b, nil
}

var errNoCurvePoints = pumpCurveError("pump curve has no points")

type pumpCurveError string

func (e pumpCurveError) Error() string { return string(e) }

// pumpCoefficients implements a pump's (gInv, y) using the fitted
// H0, PumpA, PumpB for the *effective* headloss start->end:
// H(q) = a*qe^b - H0 where qe = max(q, QLin) (a pump only operates for
// q >= 0; the status-management step closes a pump whose Newton iterate
// drives q negative, spec.md §4.1).
func pumpCoefficients(h0, a, b, speed, q float64) (gInv, y float64) {
	if speed <= 0 {
		speed = 1.0
	}
	// speed affects the curve per the pump affinity laws: H scales with
	// speed^2, Q scales with speed.
	qe := q / speed
	if qe < QLin {
		qe = QLin
	}
	h0s := h0 * speed * speed
	hloss := a*math.Pow(qe, b)*speed*speed - h0s
	slope := a * b * math.Pow(qe, b-1) * speed
	if slope < 1/BigValue {
		slope = 1 / BigValue
	}
	gInv = 1.0 / slope
	y = q - gInv*hloss
	return
}
