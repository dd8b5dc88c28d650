// Package linkmodel implements the per-link-variant coefficients() contract
// spec.md §4.1 requires: given a link's current flow, precomputed
// resistance, setting and status, return (gInv, y) — the inverse headloss
// derivative and the flow-correction term the Global Gradient Algorithm
// assembles into the Jacobian and RHS. Every variant (Pipe, Pump, Valve)
// satisfies the same contract; dispatch is a switch on network.Link.Kind,
// not virtual dispatch (spec.md §9), mirroring the teacher's tagged-sum
// element style.
package linkmodel

// EPANET2 reference regularization constants (spec.md §9 Open Questions,
// resolved in favor of the EPANET2 values rather than the varying values
// found in assorted source comments).
const (
	// QLin is the flow magnitude below which a pipe's Hazen-Williams
	// headloss is linearized to keep the Jacobian bounded near zero flow.
	QLin = 2.2284e-5
	// BigValue stands in for an "effectively infinite" headloss slope; a
	// closed link's gInv is 1/BigValue (no flow regardless of head
	// difference), and every slope is clamped to at least 1/BigValue.
	BigValue = 1e10
	// SmallValue stands in for an "effectively zero" headloss slope; an Open
	// PRV/PSV/FCV's gInv is 1/SmallValue (negligible loss).
	SmallValue = 1e-6
	// PinGInv is the diagonal conductance hydraulic.newtonLoop adds, on top
	// of a link's own (gInv, y), to the controlled node of an Active
	// PRV/PSV (see ActiveValvePin): large enough to dominate every other
	// term in that node's row — including another link's own BigValue-
	// clamped conductance — so the node's head converges to l.Setting
	// regardless of what the rest of the network would otherwise give it.
	PinGInv = 1e14
)

// HW exponent used throughout the Hazen-Williams formula.
const hwExponent = 1.852
