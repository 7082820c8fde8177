// Package calendar labels future trading sessions for an exchange.
package calendar

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// Sessions finds trading days on one exchange.
type Sessions struct {
	cal *calendar.Calendar
	loc *time.Location
}

// New loads the exchange calendar for mic (ISO 10383, e.g. "XNYS").
// Unknown codes fall back to XNYS, and if that is unavailable too,
// to a plain Monday-Friday week in America/New_York.
func New(mic string) *Sessions {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		mic = "xnys"
	}
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}
	if cal == nil {
		return Weekdays()
	}
	loc := cal.Loc
	if loc == nil {
		loc = time.UTC
	}
	return &Sessions{cal: cal, loc: loc}
}

// Weekdays returns a holiday-free Monday-Friday calendar.
func Weekdays() *Sessions {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Sessions{loc: loc}
}

// IsTradingDay reports whether the calendar date of day is a session.
func (s *Sessions) IsTradingDay(day time.Time) bool {
	// noon local keeps the date stable across time zones
	d := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, s.loc)
	if s.cal == nil {
		wd := d.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return s.cal.IsBusinessDay(d)
}

// Next returns the n sessions strictly after the date of after,
// as UTC midnights.
func (s *Sessions) Next(after time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	d := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, time.UTC)
	// a year of consecutive closures is not a calendar
	for guard := 0; len(out) < n && guard < 366+n; guard++ {
		d = d.AddDate(0, 0, 1)
		if s.IsTradingDay(d) {
			out = append(out, d)
		}
	}
	return out
}
