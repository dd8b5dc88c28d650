package network

// ControlCondition enumerates the trigger kinds a simple Control can use.
// Carried over exactly from the original EPANET condition set (see
// SPEC_FULL.md §13, grounded on rust:src/model/control.rs).
type ControlCondition int

const (
	CondHighPressure ControlCondition = iota
	CondLowPressure
	CondHighLevel
	CondLowLevel
	CondTime
	CondClockTime
)

// Control is a simple (non rule-based) control: when Condition becomes true,
// LinkID's status and/or setting are changed to Status/Setting.
type Control struct {
	Condition ControlCondition
	NodeIndex int // meaningful for HighPressure/LowPressure/HighLevel/LowLevel
	Target    float64
	Seconds   int // meaningful for Time/ClockTime

	LinkID    string
	LinkIndex int
	Status    *Status  // nil if this control only changes Setting
	Setting   *float64 // nil if this control only changes Status
}

// hTol is the head/pressure comparison tolerance used by level/pressure
// control conditions, mirroring the EPANET reference constant.
const hTol = 0.0005

// psiPerFoot converts a head-in-feet value to pressure in psi for the
// HighPressure/LowPressure conditions, matching rust:src/model/control.rs's
// PSIperFT constant exactly.
const psiPerFoot = 0.433527

// IsActive reports whether this control's condition holds given the current
// solver state, node elevations, and simulation clock. The asymmetric
// `>= -hTol` / `<= hTol` comparisons are carried over from
// rust:src/model/control.rs's is_active exactly: a High* control fires
// once its value is within hTol below the target, a Low* control once its
// value is within hTol above it, so both fire slightly before the exact
// target is reached.
func (c *Control) IsActive(heads []float64, elevations []float64, simTime, clockTime int) bool {
	switch c.Condition {
	case CondTime:
		return c.Seconds == simTime
	case CondClockTime:
		return c.Seconds == clockTime
	case CondHighPressure:
		value := (heads[c.NodeIndex] - elevations[c.NodeIndex]) * psiPerFoot
		return value-c.Target >= -hTol
	case CondLowPressure:
		value := (heads[c.NodeIndex] - elevations[c.NodeIndex]) * psiPerFoot
		return value-c.Target <= hTol
	case CondHighLevel:
		level := heads[c.NodeIndex] - elevations[c.NodeIndex]
		return level-c.Target >= -hTol
	case CondLowLevel:
		level := heads[c.NodeIndex] - elevations[c.NodeIndex]
		return level-c.Target <= hTol
	}
	return false
}

// Activate applies this control's status/setting change. It returns whether
// anything actually changed (eps.applyControlsSerial passes this on; its
// caller does not use it).
func (c *Control) Activate(statuses []Status, settings []float64) bool {
	changed := false
	if c.Status != nil {
		if statuses[c.LinkIndex] != *c.Status {
			changed = true
		}
		statuses[c.LinkIndex] = *c.Status
	}
	if c.Setting != nil {
		if settings[c.LinkIndex] != *c.Setting {
			changed = true
		}
		settings[c.LinkIndex] = *c.Setting
	}
	return changed
}
