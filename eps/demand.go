// Package eps runs an extended-period simulation: repeated steady-state
// hydraulic.Solve calls advanced through time by demand patterns, simple
// controls, and tank level integration (spec.md §4.4), with an optional
// goroutine-parallel mode for tank-free networks (spec.md §4.5).
//
// The overall Run loop follows the teacher's FEM.Run shape (fem/fem.go):
// read/validate once, then loop over stages calling a single solver entry
// point and accumulating a result buffer — generalized here from FEM load
// stages to EPS time-steps.
package eps

import "hydrosolve/network"

// computeDemands returns each node's demand at simTime, in canonical CFS:
// Junction.BaseDemand scaled by its pattern's current multiplier (1.0 if
// unpatterned); fixed-head nodes contribute 0 (their "demand" slot is
// unused by hydraulic.Solve, which only reads demands at variable nodes).
func computeDemands(net *network.Network, simTime, patternStep int) []float64 {
	demands := make([]float64, len(net.Nodes))
	for _, n := range net.Nodes {
		if n.Kind != network.Junction {
			continue
		}
		mult := 1.0
		if n.PatternID != "" {
			if p, ok := net.Patterns[n.PatternID]; ok {
				mult = p.At(simTime, patternStep)
			}
		}
		demands[n.Index] = n.BaseDemand * mult
	}
	return demands
}

// reservoirHead returns a reservoir's head at simTime, applying its head
// pattern (if any) as a multiplier on elevation — mirroring how a demand
// pattern multiplies BaseDemand, per spec.md §3.
func reservoirHead(net *network.Network, n *network.Node, simTime, patternStep int) float64 {
	if n.HeadPatternID == "" {
		return n.Elevation
	}
	if p, ok := net.Patterns[n.HeadPatternID]; ok {
		return n.Elevation * p.At(simTime, patternStep)
	}
	return n.Elevation
}
