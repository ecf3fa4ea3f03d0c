package timeline

import (
	"fmt"
	"time"
)

// Bucket is a run of consecutive days sharing a week or a month.
type Bucket struct {
	Label    string
	Start    time.Time
	DayCount int
	// ISO week fields, set on week buckets only.
	Year int
	Week int
}

// Headers are the day, week and month rows above the timeline.
type Headers struct {
	Days   []time.Time
	Weeks  []Bucket
	Months []Bucket
}

// GenerateHeaders lists every day in r and groups them run-length into week
// (ISO, Monday start) and month buckets. Buckets never split a day and their
// day counts sum to len(Days).
func GenerateHeaders(r Range) Headers {
	n := r.Days()
	if n <= 0 {
		return Headers{}
	}
	h := Headers{Days: make([]time.Time, 0, n)}
	start := StartOfDay(r.Start)
	for i := 0; i < n; i++ {
		d := AddDays(start, i)
		h.Days = append(h.Days, d)

		year, week := d.ISOWeek()
		if last := len(h.Weeks) - 1; last >= 0 && h.Weeks[last].Year == year && h.Weeks[last].Week == week {
			h.Weeks[last].DayCount++
		} else {
			h.Weeks = append(h.Weeks, Bucket{Label: weekLabel(d), Start: d, DayCount: 1, Year: year, Week: week})
		}

		if last := len(h.Months) - 1; last >= 0 && sameMonth(h.Months[last].Start, d) {
			h.Months[last].DayCount++
		} else {
			h.Months = append(h.Months, Bucket{Label: d.Format("Jan 2006"), Start: d, DayCount: 1})
		}
	}
	return h
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func weekLabel(d time.Time) string {
	_, w := d.ISOWeek()
	return fmt.Sprintf("W%02d", w)
}
