package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// Mode selects how the visible window is derived.
type Mode string

const (
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
	ModeAll     Mode = "all"
)

// Modes lists the view modes in cycling order.
var Modes = []Mode{ModeWeekly, ModeMonthly, ModeAll}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeWeekly, ModeMonthly, ModeAll:
		return m, nil
	}
	return "", &domain.ValidationError{Field: "mode", Reason: fmt.Sprintf("%q must be weekly, monthly or all", s)}
}

// Next returns the mode after m in Modes.
func (m Mode) Next() Mode {
	for i, x := range Modes {
		if x == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeWeekly
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days is the inclusive number of days in r.
func (r Range) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

func (r Range) Contains(t time.Time) bool {
	d := DaysBetween(r.Start, t)
	return d >= 0 && d < r.Days()
}

// ComputeVisibleRange picks the window for mode. Weekly is today's
// Monday..Sunday, monthly is today's calendar month. All spans every task in
// the flattened set expanded outward to whole weeks, or the current month
// when there are no tasks.
func ComputeVisibleRange(tasks []*domain.PlanTask, mode Mode, today time.Time) Range {
	today = StartOfDay(today)
	switch mode {
	case ModeWeekly:
		return Range{Start: StartOfWeek(today), End: EndOfWeek(today)}
	case ModeAll:
		lo, hi, ok := span(tasks)
		if !ok {
			return Range{Start: StartOfMonth(today), End: EndOfMonth(today)}
		}
		return Range{Start: StartOfWeek(lo), End: EndOfWeek(hi)}
	default:
		return Range{Start: StartOfMonth(today), End: EndOfMonth(today)}
	}
}

// span returns the earliest start and latest end over tasks and their
// subtasks.
func span(tasks []*domain.PlanTask) (lo, hi time.Time, ok bool) {
	var visit func([]*domain.PlanTask)
	visit = func(ts []*domain.PlanTask) {
		for _, t := range ts {
			if t == nil {
				continue
			}
			s, e := StartOfDay(t.StartDate), StartOfDay(t.EndDate)
			if !ok || DaysBetween(s, lo) > 0 {
				lo = s
			}
			if !ok || DaysBetween(hi, e) > 0 {
				hi = e
			}
			ok = true
			visit(t.SubTasks)
		}
	}
	visit(tasks)
	return lo, hi, ok
}
