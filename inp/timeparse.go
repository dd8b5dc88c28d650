package inp

import (
	"strconv"
	"strings"

	"hydrosolve/hydroerr"
)

// ParseTimeSeconds accepts the handful of time spellings EPANET's own .inp
// grammar allows in [TIMES]/[CONTROLS]/[PATTERNS]: a bare number of hours
// ("24", "2.5"), "HH:MM" or "HH:MM:SS" clock notation, and a trailing AM/PM
// suffix ("6 PM", "6:00 PM"). Bare numbers are hours unless unit is given
// explicitly as a second token ("2 HOURS", "7200 SECONDS", "3 MIN").
func ParseTimeSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, hydroerr.New(hydroerr.Input, "", "empty time value")
	}
	fields := strings.Fields(s)

	ampm := ""
	if len(fields) > 1 {
		last := strings.ToUpper(fields[len(fields)-1])
		if last == "AM" || last == "PM" {
			ampm = last
			fields = fields[:len(fields)-1]
		}
	}

	if len(fields) == 2 {
		v, err := parseFloat(fields[0])
		if err != nil {
			return 0, hydroerr.New(hydroerr.Input, "", "invalid time value %q", s)
		}
		unit := strings.ToUpper(fields[1])
		switch {
		case strings.HasPrefix(unit, "SEC"):
			return int(v), nil
		case strings.HasPrefix(unit, "MIN"):
			return int(v * 60), nil
		case strings.HasPrefix(unit, "HOUR") || strings.HasPrefix(unit, "HR"):
			return int(v * 3600), nil
		case strings.HasPrefix(unit, "DAY"):
			return int(v * 86400), nil
		}
		return 0, hydroerr.New(hydroerr.Input, "", "unknown time unit %q", fields[1])
	}

	body := fields[0]
	if strings.Contains(body, ":") {
		parts := strings.Split(body, ":")
		h, err1 := strconv.Atoi(parts[0])
		m := 0
		sec := 0
		var err2, err3 error
		if len(parts) > 1 {
			m, err2 = strconv.Atoi(parts[1])
		}
		if len(parts) > 2 {
			sec, err3 = strconv.Atoi(parts[2])
		}
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, hydroerr.New(hydroerr.Input, "", "invalid clock time %q", s)
		}
		if ampm == "PM" && h < 12 {
			h += 12
		}
		if ampm == "AM" && h == 12 {
			h = 0
		}
		return h*3600 + m*60 + sec, nil
	}

	v, err := parseFloat(body)
	if err != nil {
		return 0, hydroerr.New(hydroerr.Input, "", "invalid time value %q", s)
	}
	hours := v
	if ampm == "PM" && hours < 12 {
		hours += 12
	}
	return int(hours * 3600), nil
}
