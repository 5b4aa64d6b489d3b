// Package week handles YYYY-MM-DD date strings and Monday-start week ranges.
package week

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD string and returns the calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// Format renders a time as its YYYY-MM-DD calendar day.
func Format(t time.Time) string {
	return t.Format(layout)
}

// Dates returns the seven dates of the Monday-start week containing anchor,
// in calendar order.
func Dates(anchor time.Time) []string {
	// Normalize to a plain calendar day so DST offsets can't shift the week.
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	// time.Weekday puts Sunday at 0; rotate so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = Format(monday.AddDate(0, 0, i))
	}
	return dates
}
