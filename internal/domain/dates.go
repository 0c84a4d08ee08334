package domain

import (
	"strings"
	"time"
)

// ISODateLayout is the canonical date format used throughout.
const ISODateLayout = "2006-01-02"

// ParseISODate parses a strict YYYY-MM-DD string, tolerating a trailing
// time suffix ("2024-01-01T09:30:00" parses as 2024-01-01). Returns nil
// on empty or malformed input; nil is the error channel here, no parse
// failure ever surfaces as an error or panic.
//
// Dates parse at UTC midnight. All day arithmetic is calendar-naive:
// every day counts as 24h with no timezone or DST adjustment.
func ParseISODate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}
	if len(s) != 10 {
		return nil
	}
	t, err := time.ParseInLocation(ISODateLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// FormatISODate renders a date as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// StartOfWeekMonday rounds a date back to the Monday of its week at
// midnight (ISO week start).
func StartOfWeekMonday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// DayIndex returns the whole-day offset of an ISO date from the anchor
// Monday. ok is false when the date is unparseable.
func DayIndex(anchor time.Time, iso string) (int, bool) {
	t := ParseISODate(iso)
	if t == nil {
		return 0, false
	}
	a := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(a).Hours() / 24), true
}

// WeekIndex returns floor(dayIndex/7), correct for days before the
// anchor. ok is false when the date is unparseable.
func WeekIndex(anchor time.Time, iso string) (int, bool) {
	day, ok := DayIndex(anchor, iso)
	if !ok {
		return 0, false
	}
	return floorDiv(day, 7), true
}

// ShiftISO moves an ISO date by a whole number of days. Unparseable
// input is returned unchanged so broken values stay visible for the
// user to fix.
func ShiftISO(iso string, days int) string {
	t := ParseISODate(iso)
	if t == nil {
		return iso
	}
	return FormatISODate(t.AddDate(0, 0, days))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
