// Package timeline maps calendar dates onto a horizontal day grid: visible
// windows, week and month header buckets, and bar geometry.
//
// All functions treat their inputs as calendar dates. Times of day are
// stripped and results are local midnight in the input's location.
package timeline

import "time"

// StartOfDay strips the time of day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days. Across a DST change the result is still
// midnight.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DaysBetween is the number of calendar days from a to b; negative when b
// is earlier. Days are counted on the calendar, not as 24h spans.
func DaysBetween(a, b time.Time) int {
	return int(utcDay(b).Sub(utcDay(a)).Hours() / 24)
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return AddDays(t, -offset)
}

// EndOfWeek returns the Sunday on or after t.
func EndOfWeek(t time.Time) time.Time {
	return AddDays(StartOfWeek(t), 6)
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location())
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkingDays counts Monday..Friday days in [start, end]. Zero when end is
// before start.
func WorkingDays(start, end time.Time) int {
	total := DaysBetween(start, end) + 1
	if total <= 0 {
		return 0
	}
	weeks, rest := total/7, total%7
	n := weeks * 5
	d := StartOfDay(start)
	for i := 0; i < rest; i++ {
		if !IsWeekend(AddDays(d, weeks*7+i)) {
			n++
		}
	}
	return n
}
