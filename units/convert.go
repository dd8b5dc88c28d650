package units

// ToCFS converts a value expressed in u into the canonical CFS basis.
func ToCFS(value float64, u FlowUnits) float64 {
	return value / u.PerCFS()
}

// FromCFS converts a canonical CFS value into u.
func FromCFS(value float64, u FlowUnits) float64 {
	return value * u.PerCFS()
}

// ToFeet converts a value expressed in u into the canonical feet basis.
func ToFeet(value float64, u PressureUnits) float64 {
	return value / u.PerFeet()
}

// FromFeet converts a canonical feet value into u.
func FromFeet(value float64, u PressureUnits) float64 {
	return value * u.PerFeet()
}
