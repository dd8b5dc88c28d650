package inp

import "strings"

// readTime recognizes the [TIMES] keywords eps.Options needs: Duration,
// Hydraulic Timestep, Pattern Timestep, Report Timestep, Start ClockTime.
// Report Start and Statistic are parsed-and-ignored: no testable scenario
// in spec.md §8 exercises partial reporting windows.
func readTime(s *Settings, f []string) error {
	if len(f) < 2 {
		return nil
	}
	upper := make([]string, len(f))
	for i, tok := range f {
		upper[i] = strings.ToUpper(tok)
	}

	set := func(dst *int, rest []string) {
		if secs, err := ParseTimeSeconds(strings.Join(rest, " ")); err == nil {
			*dst = secs
		}
	}

	switch {
	case upper[0] == "DURATION":
		set(&s.Duration, f[1:])
	case len(upper) >= 2 && upper[0] == "HYDRAULIC" && upper[1] == "TIMESTEP":
		set(&s.HydraulicStep, f[2:])
	case len(upper) >= 2 && upper[0] == "PATTERN" && upper[1] == "TIMESTEP":
		set(&s.PatternStep, f[2:])
	case len(upper) >= 2 && upper[0] == "REPORT" && upper[1] == "TIMESTEP":
		set(&s.ReportStep, f[2:])
	case len(upper) >= 2 && upper[0] == "START" && upper[1] == "CLOCKTIME":
		set(&s.StartClock, f[2:])
	}
	return nil
}
