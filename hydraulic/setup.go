// Package hydraulic implements one steady-state Global Gradient Algorithm
// solve: assemble the sparse SPD head-equation system, Cholesky-solve it,
// update link flows from the new heads, run link status management, and
// iterate to convergence or report hydroerr.NonConvergence (spec.md §4).
//
// The teacher's FEsolver interface + solverallocators registry collapses to
// a single exported Solve function here: there is exactly one hydraulic
// algorithm in scope, so a registry of interchangeable solvers would be
// unused machinery (documented simplification, not a dropped feature).
package hydraulic

import (
	"hydrosolve/internal/sparse"
	"hydrosolve/network"
)

// Solver holds the one-time, topology-derived setup a Network's repeated
// steady-state solves all share: which nodes are variable, the symbolic
// Cholesky pattern, and (written back onto the network's own links) each
// link's CSC scatter offsets. Rebuilding this per time-step would be pure
// waste, since topology never changes mid-run (spec.md §9).
type Solver struct {
	net      *network.Network
	varOf    []int // node index -> variable index, or -1 if fixed-head
	nodeOf   []int // variable index -> node index
	sym      *sparse.Symbolic
}

// NewSolver builds a Solver for net, assigning variable indices to every
// non-fixed node and precomputing each link's CSC index quad via
// sparse.BuildLayout. Call once per Network; reuse across every EPS
// time-step solve.
func NewSolver(net *network.Network) *Solver {
	s := &Solver{
		net:    net,
		varOf:  make([]int, len(net.Nodes)),
		nodeOf: net.VariableNodes(),
	}
	for i := range s.varOf {
		s.varOf[i] = -1
	}
	for vi, ni := range s.nodeOf {
		s.varOf[ni] = vi
	}

	u := make([]int, len(net.Links))
	v := make([]int, len(net.Links))
	for i, l := range net.Links {
		u[i] = s.varOf[l.StartNode]
		v[i] = s.varOf[l.EndNode]
	}
	sym, idx := sparse.BuildLayout(len(s.nodeOf), u, v)
	s.sym = sym
	for i, l := range net.Links {
		l.CSC = idx[i]
	}
	return s
}

// NVars returns the number of variable (non-fixed-head) nodes.
func (s *Solver) NVars() int { return len(s.nodeOf) }
