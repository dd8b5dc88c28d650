// Package result holds the time-indexed output buffer a simulation run
// produces and converts it back to user-chosen units on demand. Internally
// every value is stored in the engine's canonical basis (CFS, feet); a
// SolverResult is otherwise a passive data holder with no solving logic of
// its own, mirroring the teacher's small struct-plus-pure-method shape
// (mdl/fluid.Model.Calc).
package result

import "hydrosolve/units"

// Step holds one time-step's complete solved state, in canonical units.
type Step struct {
	Time    int // seconds since simulation start
	Heads   []float64
	Flows   []float64
	Demands []float64
	Warning bool // set when this step's solve hit NonConvergence but kept a best-effort state
}

// SolverResult is a per-step-indexed buffer. Parallel EPS pre-sizes it with
// NewSolverResult so its workers can write disjoint step slots without
// reallocation or synchronization (spec.md §4.5); serial EPS starts it with
// no slots and appends one Step per reported time-step.
type SolverResult struct {
	NodeIDs []string
	LinkIDs []string
	Steps   []Step
}

// NewSolverResult allocates a SolverResult with nSteps pre-sized, empty
// Step slots, each already holding correctly-sized Heads/Flows/Demands
// slices ready to be written in place by a worker.
func NewSolverResult(nodeIDs, linkIDs []string, nSteps int) *SolverResult {
	r := &SolverResult{NodeIDs: nodeIDs, LinkIDs: linkIDs, Steps: make([]Step, nSteps)}
	for i := range r.Steps {
		r.Steps[i].Heads = make([]float64, len(nodeIDs))
		r.Steps[i].Flows = make([]float64, len(linkIDs))
		r.Steps[i].Demands = make([]float64, len(nodeIDs))
	}
	return r
}

// NodeOutput is one node's converted output at one time-step.
type NodeOutput struct {
	ID      string
	Time    int
	Head    float64
	Pressure float64
	Demand  float64
}

// LinkOutput is one link's converted output at one time-step.
type LinkOutput struct {
	ID   string
	Time int
	Flow float64
}

// ConvertNodes returns every node's output at every step, converting head
// to pressureUnits (relative to elevation) and flow/demand to flowUnits.
// elevations must be indexed the same way as r.NodeIDs.
func (r *SolverResult) ConvertNodes(elevations []float64, flowUnits units.FlowUnits, pressureUnits units.PressureUnits) []NodeOutput {
	var out []NodeOutput
	for _, step := range r.Steps {
		for i, id := range r.NodeIDs {
			pressureFeet := step.Heads[i] - elevations[i]
			out = append(out, NodeOutput{
				ID:       id,
				Time:     step.Time,
				Head:     step.Heads[i],
				Pressure: units.FromFeet(pressureFeet, pressureUnits),
				Demand:   units.FromCFS(step.Demands[i], flowUnits),
			})
		}
	}
	return out
}

// ConvertLinks returns every link's flow at every step, converted to
// flowUnits.
func (r *SolverResult) ConvertLinks(flowUnits units.FlowUnits) []LinkOutput {
	var out []LinkOutput
	for _, step := range r.Steps {
		for i, id := range r.LinkIDs {
			out = append(out, LinkOutput{ID: id, Time: step.Time, Flow: units.FromCFS(step.Flows[i], flowUnits)})
		}
	}
	return out
}
