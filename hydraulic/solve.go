package hydraulic

import (
	"math"

	"hydrosolve/hydroerr"
	"hydrosolve/internal/sparse"
	"hydrosolve/internal/trace"
	"hydrosolve/linkmodel"
	"hydrosolve/network"
)

// Options tunes convergence and iteration limits for Solve.
type Options struct {
	MaxIter         int
	MaxStatusChecks int
	HeadTol         float64 // max |ΔH| across variable nodes, feet
	FlowTol         float64 // max |ΔQ| across links, CFS
}

// DefaultOptions mirrors EPANET2's defaults.
func DefaultOptions() Options {
	return Options{MaxIter: 200, MaxStatusChecks: 10, HeadTol: 0.0005, FlowTol: 0.0001}
}

// Solve runs one steady-state Global Gradient Algorithm solve: assemble the
// head-equation system from each link's (gInv, y) coefficients, Cholesky
// solve it for node heads, recompute link flows from the new heads, run
// link status management, and repeat until converged. heads and flows are
// both read (as the Newton iterate's starting point) and written (the
// solution) in place; fixed-head node entries of heads must already hold
// their reservoir/tank head on entry. baseStatus gives each link's starting
// status for this solve (the caller's simple-control evaluation already
// folded in); it is copied, never mutated. Returns the number of Newton
// iterations taken, or a hydroerr.NonConvergence error if MaxIter is
// exhausted without reaching tolerance.
func Solve(net *network.Network, s *Solver, demands []float64, heads, flows []float64, baseStatus []network.Status, opts Options) (int, error) {
	status := append([]network.Status(nil), baseStatus...)

	totalIters := 0
	for statusPass := 0; statusPass < opts.MaxStatusChecks; statusPass++ {
		iters, err := newtonLoop(net, s, demands, heads, flows, status, opts)
		totalIters += iters
		if err != nil {
			return totalIters, err
		}
		if !updateStatuses(net, heads, flows, status) {
			return totalIters, nil
		}
	}
	return totalIters, hydroerr.New(hydroerr.NonConvergence, "", "link status did not stabilize within %d passes", opts.MaxStatusChecks)
}

func newtonLoop(net *network.Network, s *Solver, demands []float64, heads, flows []float64, status []network.Status, opts Options) (int, error) {
	n := s.NVars()
	for iter := 0; iter < opts.MaxIter; iter++ {
		mat := sparse.NewMatrix(s.sym)
		rhs := make([]float64, n)
		for vi, ni := range s.nodeOf {
			rhs[vi] = -demands[ni]
		}

		for i, l := range net.Links {
			gInv, y, err := linkmodel.Coefficients(l, status[i], flows[i])
			if err != nil {
				return iter, err
			}

			uFixed, vFixed := s.varOf[l.StartNode] < 0, s.varOf[l.EndNode] < 0

			if !uFixed {
				rhs[s.varOf[l.StartNode]] -= y
				mat.AddAt(l.CSC.DiagU, gInv)
			}
			if !vFixed {
				rhs[s.varOf[l.EndNode]] += y
				mat.AddAt(l.CSC.DiagV, gInv)
			}

			switch {
			case !uFixed && !vFixed:
				mat.AddAt(l.CSC.OffDiagUV, -gInv)
			case !uFixed && vFixed:
				rhs[s.varOf[l.StartNode]] += gInv * heads[l.EndNode]
			case uFixed && !vFixed:
				rhs[s.varOf[l.EndNode]] += gInv * heads[l.StartNode]
			}

			if side, target, ok := linkmodel.ActiveValvePin(l, status[i]); ok {
				switch {
				case side == 0 && !uFixed:
					mat.AddAt(l.CSC.DiagU, linkmodel.PinGInv)
					rhs[s.varOf[l.StartNode]] += linkmodel.PinGInv * target
				case side == 1 && !vFixed:
					mat.AddAt(l.CSC.DiagV, linkmodel.PinGInv)
					rhs[s.varOf[l.EndNode]] += linkmodel.PinGInv * target
				}
			}
		}

		fact, err := sparse.Numeric(mat)
		if err != nil {
			return iter, err
		}
		newHeads := fact.Solve(rhs)

		maxDH := 0.0
		for vi, ni := range s.nodeOf {
			dh := math.Abs(newHeads[vi] - heads[ni])
			if dh > maxDH {
				maxDH = dh
			}
			heads[ni] = newHeads[vi]
		}

		maxDQ := 0.0
		for i, l := range net.Links {
			if _, _, ok := linkmodel.ActiveValvePin(l, status[i]); ok {
				continue // recovered below, from the pinned node's own mass balance
			}
			gInv, y, err := linkmodel.Coefficients(l, status[i], flows[i])
			if err != nil {
				return iter, err
			}
			qNew := y + gInv*(heads[l.StartNode]-heads[l.EndNode])
			if iter >= 10 {
				// past 10 iterations, relax the flow correction by 0.6
				qNew = flows[i] + 0.6*(qNew-flows[i])
			}
			if status[i] == network.Closed {
				qNew = 0
			}
			dq := math.Abs(qNew - flows[i])
			if dq > maxDQ {
				maxDQ = dq
			}
			flows[i] = qNew
		}

		// An Active PRV/PSV's (gInv, y) deliberately keeps it almost
		// decoupled from the rest of the network (the pin term above does
		// the regulating), so it never gets a meaningful flow out of the
		// formula above. Recover it from whatever its pinned node's other
		// links and demand require instead.
		for i, l := range net.Links {
			side, _, ok := linkmodel.ActiveValvePin(l, status[i])
			if !ok {
				continue
			}
			ctrlNode, pinIsEnd := l.StartNode, false
			if side == 1 {
				ctrlNode, pinIsEnd = l.EndNode, true
			}
			qNew := pinnedValveFlow(net, demands, flows, i, ctrlNode, pinIsEnd)
			dq := math.Abs(qNew - flows[i])
			if dq > maxDQ {
				maxDQ = dq
			}
			flows[i] = qNew
		}

		trace.Debug("newton iter %d: maxDH=%.6g maxDQ=%.6g", iter, maxDH, maxDQ)
		if maxDH < opts.HeadTol && maxDQ < opts.FlowTol {
			return iter + 1, nil
		}
	}
	return opts.MaxIter, hydroerr.New(hydroerr.NonConvergence, "", "Newton iteration did not converge within %d iterations", opts.MaxIter)
}

// pinnedValveFlow recovers the flow through the Active PRV/PSV at net.Links[linkIdx]
// from conservation at its pinned node ctrlNode: sum of flows into ctrlNode from
// links ending there, minus flows out through links starting there, equals
// ctrlNode's demand. pinIsEnd reports whether this valve is itself one of the
// "ending there" links (PRV, ctrlNode==l.EndNode) or one of the "starting there"
// links (PSV, ctrlNode==l.StartNode); every other link touching ctrlNode already
// has its converged flow by the time this runs.
func pinnedValveFlow(net *network.Network, demands, flows []float64, linkIdx, ctrlNode int, pinIsEnd bool) float64 {
	acc := 0.0
	for j, lk := range net.Links {
		if j == linkIdx {
			continue
		}
		if lk.EndNode == ctrlNode {
			acc += flows[j]
		}
		if lk.StartNode == ctrlNode {
			acc -= flows[j]
		}
	}
	if pinIsEnd {
		return demands[ctrlNode] - acc
	}
	return acc - demands[ctrlNode]
}
