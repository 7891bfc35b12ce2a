// Package timeutil formats timestamps into the relative and absolute display
// strings used across the dashboard.
package timeutil

import (
	"fmt"
	"time"
)

// DisplayDate is the absolute date format shown to users.
const DisplayDate = "02 Jan 2006"

// FormatDate renders t in the dashboard's absolute date format.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDate)
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Relative renders the distance between t and now as a human-readable string,
// e.g. "just now", "3 days ago", "in 2 months".
func Relative(t, now time.Time) string {
	d := now.Sub(t)
	if d >= 0 {
		return pastLabel(d)
	}
	return "in " + spanLabel(-d)
}

func pastLabel(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	}
	return spanLabel(d) + " ago"
}

func spanLabel(d time.Duration) string {
	switch {
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/24/30), "month")
	default:
		years := int(d.Hours() / 24 / 365)
		months := int(d.Hours()/24/30.44) - years*12
		if months <= 0 {
			return plural(years, "year")
		}
		return fmt.Sprintf("%s %s", plural(years, "year"), plural(months, "month"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// DaysBetween returns the whole number of days from a to b, truncated.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
