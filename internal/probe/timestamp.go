package probe

import (
	"strings"
	"time"
)

// exiftool prints timestamps as "YYYY:MM:DD HH:MM:SS", optionally followed
// by a timezone suffix such as "+02:00", "Z", or "DST".
const fieldLayout = "2006:01:02 15:04:05"

// Years before this are treated as mangled metadata. 1826 is the year of
// the earliest surviving photograph.
const earliestSaneYear = 1826

// ParseOutput converts raw line-oriented exiftool output into candidates.
// Blank lines (absent fields) and unparseable lines are skipped.
func ParseOutput(out []byte) []time.Time {
	var times []time.Time
	for _, line := range strings.Split(string(out), "\n") {
		if t, ok := ParseField(line); ok {
			times = append(times, t)
		}
	}
	return times
}

// ParseField parses one exiftool output line into a naive timestamp. Any
// timezone suffix is stripped rather than honored: the configured zone is
// applied later to every candidate uniformly.
func ParseField(field string) (time.Time, bool) {
	s := strings.TrimSpace(field)
	if len(s) > len(fieldLayout) {
		s = strings.TrimSpace(s[:len(fieldLayout)])
	}
	t, err := time.Parse(fieldLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	if !saneYear(t.Year()) {
		return time.Time{}, false
	}
	return t, true
}

// saneYear bounds the calendar range of acceptable candidates. The upper
// bound allows camera clocks up to one year fast.
func saneYear(year int) bool {
	return year >= earliestSaneYear && year <= time.Now().Year()+1
}

// naive strips the zone from a localized instant, keeping its wall-clock
// reading, so absolute sources compare consistently with parsed fields.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
