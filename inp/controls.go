package inp

import (
	"strings"

	"hydrosolve/hydroerr"
	"hydrosolve/network"
)

// pendingControl holds a parsed [CONTROLS] line before its LinkID has been
// cross-referenced into a Network (controls may appear before or after the
// link's own section in a hand-edited .inp, unlike node/link references).
type pendingControl struct {
	Condition network.ControlCondition
	NodeID    string
	Target    float64
	Seconds   int

	LinkID  string
	Status  *network.Status
	Setting *float64
}

// parseControl recognizes EPANET's two simple-control sentence shapes:
//
//	LINK <id> <status|setting> IF NODE <id> ABOVE|BELOW <value>
//	LINK <id> <status|setting> AT TIME <time>
//	LINK <id> <status|setting> AT CLOCKTIME <time> [AM|PM]
func parseControl(net *network.Network, f []string) (pendingControl, error) {
	var pc pendingControl
	if len(f) < 3 || strings.ToUpper(f[0]) != "LINK" {
		return pc, hydroerr.New(hydroerr.Input, "", "unrecognized CONTROLS line: %s", strings.Join(f, " "))
	}
	pc.LinkID = f[1]

	setting := strings.ToUpper(f[2])
	switch setting {
	case "OPEN":
		s := network.Open
		pc.Status = &s
	case "CLOSED":
		s := network.Closed
		pc.Status = &s
	default:
		v, err := parseFloat(f[2])
		if err != nil {
			return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "invalid control status/setting %q", f[2])
		}
		pc.Setting = &v
	}

	rest := f[3:]
	if len(rest) == 0 {
		return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "control has no IF/AT clause")
	}

	switch strings.ToUpper(rest[0]) {
	case "IF":
		// IF NODE <id> ABOVE|BELOW <value>
		if len(rest) < 5 || strings.ToUpper(rest[1]) != "NODE" {
			return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "malformed IF NODE clause")
		}
		pc.NodeID = rest[2]
		target, err := parseFloat(rest[4])
		if err != nil {
			return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "invalid control target %q", rest[4])
		}
		pc.Target = target
		switch strings.ToUpper(rest[3]) {
		case "ABOVE":
			if isTankNode(net, pc.NodeID) {
				pc.Condition = network.CondHighLevel
			} else {
				pc.Condition = network.CondHighPressure
			}
		case "BELOW":
			if isTankNode(net, pc.NodeID) {
				pc.Condition = network.CondLowLevel
			} else {
				pc.Condition = network.CondLowPressure
			}
		default:
			return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "unknown control comparator %q", rest[3])
		}

	case "AT":
		if len(rest) < 3 {
			return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "malformed AT clause")
		}
		switch strings.ToUpper(rest[1]) {
		case "TIME":
			pc.Condition = network.CondTime
			sec, err := ParseTimeSeconds(strings.Join(rest[2:], " "))
			if err != nil {
				return pc, err
			}
			pc.Seconds = sec
		case "CLOCKTIME":
			pc.Condition = network.CondClockTime
			sec, err := ParseTimeSeconds(strings.Join(rest[2:], " "))
			if err != nil {
				return pc, err
			}
			pc.Seconds = sec
		default:
			return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "unknown AT clause %q", rest[1])
		}

	default:
		return pc, hydroerr.New(hydroerr.Input, pc.LinkID, "control must use IF or AT")
	}

	return pc, nil
}

func isTankNode(net *network.Network, id string) bool {
	idx, err := net.NodeByID(id)
	if err != nil {
		return false
	}
	return net.Nodes[idx].Kind == network.Tank
}

// resolveControls cross-references each pendingControl's LinkID/NodeID text
// into indices and appends a network.Control to net.Controls.
func resolveControls(net *network.Network, pending []pendingControl) error {
	for _, pc := range pending {
		linkIdx, err := net.LinkByID(pc.LinkID)
		if err != nil {
			return hydroerr.New(hydroerr.Input, pc.LinkID, "control references unknown link")
		}
		c := &network.Control{
			Condition: pc.Condition, Target: pc.Target, Seconds: pc.Seconds,
			LinkID: pc.LinkID, LinkIndex: linkIdx, Status: pc.Status, Setting: pc.Setting,
		}
		if pc.NodeID != "" {
			nodeIdx, err := net.NodeByID(pc.NodeID)
			if err != nil {
				return hydroerr.New(hydroerr.Input, pc.LinkID, "control references unknown node %q", pc.NodeID)
			}
			c.NodeIndex = nodeIdx
		}
		net.Controls = append(net.Controls, c)
	}
	return nil
}
