package sparse

import "hydrosolve/network"

// BuildLayout builds the symbolic Cholesky pattern for a network of nVars
// variable (junction) nodes and returns, for every link, the four CSC
// offsets it will scatter (gInv, -gInv) into during assembly — computed
// once at solver setup and reused for the lifetime of a run (spec.md §9:
// topology-derived structure never changes after Network.Finalize).
//
// u and v give each link's variable-node index (0..nVars-1), or -1 if that
// endpoint is a fixed-head node (Reservoir/Tank) and therefore outside the
// solved system.
func BuildLayout(nVars int, u, v []int) (*Symbolic, []network.CSCIndex) {
	pattern := NewPattern(nVars)
	for i := 0; i < nVars; i++ {
		pattern.AddDiag(i)
	}
	for li := range u {
		ui, vi := u[li], v[li]
		if ui >= 0 && vi >= 0 {
			pattern.Add(ui, vi)
		}
	}

	sym := Factorize(pattern)

	idx := make([]network.CSCIndex, len(u))
	for li := range u {
		ui, vi := u[li], v[li]
		ci := network.CSCIndex{DiagU: -1, DiagV: -1, OffDiagUV: -1, OffDiagVU: -1}
		if ui >= 0 {
			if pos, ok := sym.RowPos(ui, ui); ok {
				ci.DiagU = pos
			}
		}
		if vi >= 0 {
			if pos, ok := sym.RowPos(vi, vi); ok {
				ci.DiagV = pos
			}
		}
		if ui >= 0 && vi >= 0 {
			if pos, ok := sym.RowPos(minInt(ui, vi), maxInt(ui, vi)); ok {
				if ui > vi {
					ci.OffDiagUV = pos
				} else {
					ci.OffDiagVU = pos
				}
			}
			// the symmetric partner lives in the other column; both offsets
			// are needed since Matrix.Add always normalizes row>=col itself,
			// but the assembler scatters once per link and must know both
			// logical (u,v) and (v,u) slots map to the same physical entry.
			if ui > vi {
				ci.OffDiagVU = ci.OffDiagUV
			} else {
				ci.OffDiagUV = ci.OffDiagVU
			}
		}
		idx[li] = ci
	}

	return sym, idx
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
