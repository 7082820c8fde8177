package util

import (
	"fmt"
	"time"
)

// DayLayout is the ISO date layout used on provider URLs.
const DayLayout = "2006-01-02"

// WindowMode selects how a month is turned into a fetch window.
type WindowMode string

const (
	// WindowFixed30 spans the 1st of the month plus 30 calendar days. It can
	// spill into the next month or stop short of day 31.
	WindowFixed30 WindowMode = "fixed30"
	// WindowCalendarMonth spans the 1st through the last day of the month.
	WindowCalendarMonth WindowMode = "calendar_month"
)

// ParseWindowMode returns the mode for s, defaulting to WindowFixed30.
func ParseWindowMode(s string) (WindowMode, error) {
	switch WindowMode(s) {
	case "", WindowFixed30:
		return WindowFixed30, nil
	case WindowCalendarMonth:
		return WindowCalendarMonth, nil
	default:
		return "", fmt.Errorf("unknown window mode %q", s)
	}
}

// MonthWindow returns the inclusive [from, to] day window for month of year.
func MonthWindow(year, month int, mode WindowMode) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	switch mode {
	case WindowCalendarMonth:
		return from, from.AddDate(0, 1, -1), nil
	default:
		return from, from.AddDate(0, 0, 30), nil
	}
}

// FormatDay renders t as YYYY-MM-DD.
func FormatDay(t time.Time) string { return t.Format(DayLayout) }

// FromUnixMillis converts a millisecond epoch timestamp to UTC time.
func FromUnixMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// TruncateDay drops the clock part of t in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
