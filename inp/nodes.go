package inp

import (
	"hydrosolve/hydroerr"
	"hydrosolve/network"
)

// readJunction parses "id elev [demand] [pattern]", matching
// original_source/src/input.rs's JUNCTIONS column layout plus the optional
// demand-pattern column EPANET's own grammar adds.
func readJunction(net *network.Network, f []string) error {
	if len(f) < 2 {
		return hydroerr.New(hydroerr.Input, "", "JUNCTIONS line needs at least id and elevation")
	}
	elev, err := parseFloat(f[1])
	if err != nil {
		return hydroerr.New(hydroerr.Input, f[0], "invalid elevation %q", f[1])
	}
	n := &network.Node{ID: f[0], Kind: network.Junction, Elevation: elev}
	n.BaseDemand = optFloat(f, 2, 0)
	if len(f) > 3 {
		n.PatternID = f[3]
	}
	return net.AddNode(n)
}

// readReservoir parses "id head [pattern]".
func readReservoir(net *network.Network, f []string) error {
	if len(f) < 2 {
		return hydroerr.New(hydroerr.Input, "", "RESERVOIRS line needs at least id and head")
	}
	head, err := parseFloat(f[1])
	if err != nil {
		return hydroerr.New(hydroerr.Input, f[0], "invalid head %q", f[1])
	}
	n := &network.Node{ID: f[0], Kind: network.Reservoir, Elevation: head}
	if len(f) > 2 {
		n.HeadPatternID = f[2]
	}
	return net.AddNode(n)
}

// readTank parses "id elev initlevel minlevel maxlevel diam minvol
// [volcurve] [overflow]", EPANET's full TANKS column layout. minvol is
// accepted and discarded (the cylindrical-tank volume model, spec.md §5,
// derives volume from Diameter alone); a non-empty volcurve is flagged
// Unsupported by Network.Finalize.
func readTank(net *network.Network, f []string) error {
	if len(f) < 6 {
		return hydroerr.New(hydroerr.Input, "", "TANKS line needs id, elevation, init/min/max level, diameter")
	}
	elev, err1 := parseFloat(f[1])
	initLvl, err2 := parseFloat(f[2])
	minLvl, err3 := parseFloat(f[3])
	maxLvl, err4 := parseFloat(f[4])
	diam, err5 := parseFloat(f[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return hydroerr.New(hydroerr.Input, f[0], "invalid numeric field in TANKS line")
	}
	n := &network.Node{
		ID: f[0], Kind: network.Tank, Elevation: elev,
		InitialLevel: initLvl, MinLevel: minLvl, MaxLevel: maxLvl, Diameter: diam,
	}
	if len(f) > 7 && f[7] != "*" {
		n.VolumeCurveID = f[7]
	}
	if len(f) > 8 {
		n.Overflow = f[8] == "YES" || f[8] == "Full"
	}
	return net.AddNode(n)
}
