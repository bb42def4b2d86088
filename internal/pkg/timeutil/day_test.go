package timeutil

import (
	"testing"
	"time"
)

func TestISTDayBoundaries(t *testing.T) {
	// 2025-06-15 18:30:00 UTC is 2025-06-16 00:00:00 IST
	utcEvening := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	day := ISTDayOf(utcEvening)
	if day.Start().Day() != 16 {
		t.Errorf("day start = %v, want June 16 IST", day.Start())
	}

	// one nanosecond before the boundary belongs to the previous IST day
	before := utcEvening.Add(-time.Nanosecond)
	prev := ISTDayOf(before)
	if prev.Start().Day() != 15 {
		t.Errorf("day start = %v, want June 15 IST", prev.Start())
	}
	if prev.Equal(day) {
		t.Error("adjacent IST days compare equal")
	}
}

func TestCalendarDayContains(t *testing.T) {
	day := ISTDayOf(time.Date(2025, 6, 16, 12, 0, 0, 0, IST))

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"start of day", day.Start(), true},
		{"end of day", day.End(), true},
		{"midday", time.Date(2025, 6, 16, 9, 0, 0, 0, IST), true},
		{"midday as UTC", time.Date(2025, 6, 16, 3, 30, 0, 0, time.UTC), true},
		{"next midnight", day.Start().AddDate(0, 0, 1), false},
		{"previous day", day.Start().Add(-time.Second), false},
	}
	for _, c := range cases {
		if got := day.Contains(c.t); got != c.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", c.name, c.t, got, c.want)
		}
	}
}

func TestDaysSince(t *testing.T) {
	day := ISTDayOf(time.Date(2025, 6, 10, 0, 0, 0, 0, IST))

	cases := []struct {
		t    time.Time
		want int
	}{
		{time.Date(2025, 6, 10, 23, 0, 0, 0, IST), 0},
		{time.Date(2025, 6, 11, 0, 0, 0, 0, IST), 1},
		{time.Date(2025, 6, 17, 12, 0, 0, 0, IST), 7},
		{time.Date(2025, 6, 9, 23, 59, 0, 0, IST), -1},
	}
	for _, c := range cases {
		if got := day.DaysSince(c.t); got != c.want {
			t.Errorf("DaysSince(%v) = %d, want %d", c.t, got, c.want)
		}
	}
}

func TestEndIsInclusive(t *testing.T) {
	day := ISTDayOf(time.Date(2025, 6, 16, 0, 0, 0, 0, IST))
	if !day.End().Before(day.Start().AddDate(0, 0, 1)) {
		t.Error("End() is not before the next day's start")
	}
	if day.End().Sub(day.Start()) != 24*time.Hour-time.Nanosecond {
		t.Errorf("End() - Start() = %v", day.End().Sub(day.Start()))
	}
}
