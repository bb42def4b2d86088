package timeutil

import "time"

// IST is the canonical calendar-day timezone for the attendance ledger.
// All day-window lookups (punch, duplicate-request check, reconciliation)
// go through the same CalendarDay so the boundaries never drift apart.
var IST = time.FixedZone("IST", 5*3600+30*60)

// CalendarDay is one calendar day in a fixed timezone.
type CalendarDay struct {
	start time.Time
	loc   *time.Location
}

// DayOf returns the calendar day containing t in loc.
func DayOf(t time.Time, loc *time.Location) CalendarDay {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return CalendarDay{start: start, loc: loc}
}

// ISTDayOf returns the IST calendar day containing t.
func ISTDayOf(t time.Time) CalendarDay {
	return DayOf(t, IST)
}

// Start returns 00:00:00 of the day.
func (d CalendarDay) Start() time.Time {
	return d.start
}

// End returns 23:59:59.999999999 of the day.
func (d CalendarDay) End() time.Time {
	return d.start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Contains reports whether t falls inside the day window.
func (d CalendarDay) Contains(t time.Time) bool {
	return !t.Before(d.start) && !t.After(d.End())
}

// DaysSince returns the whole number of day boundaries between d and the day
// containing t. Positive when t's day is after d, negative when before.
func (d CalendarDay) DaysSince(t time.Time) int {
	other := DayOf(t, d.loc)
	return int(other.start.Sub(d.start) / (24 * time.Hour))
}

// Equal reports whether two values denote the same day in the same zone.
func (d CalendarDay) Equal(other CalendarDay) bool {
	return d.start.Equal(other.start)
}
