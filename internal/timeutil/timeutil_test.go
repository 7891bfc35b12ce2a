package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelative(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just_now", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"one_hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"days", now.AddDate(0, 0, -3), "3 days ago"},
		{"months", now.AddDate(0, -2, 0), "2 months ago"},
		{"future_days", now.AddDate(0, 0, 10), "in 10 days"},
		{"future_months", now.AddDate(0, 2, 1), "in 2 months"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relative(tt.t, now))
		})
	}
}

func TestRelativeYears(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	got := Relative(now.AddDate(-1, -3, 0), now)
	assert.Equal(t, "1 year 3 months ago", got)

	got = Relative(now.AddDate(-2, 0, -5), now)
	assert.Equal(t, "2 years ago", got)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05 Mar 2024", FormatDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
}
