package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d = testutil.Date

func spanTask(id string, start, end time.Time, children ...*domain.PlanTask) *domain.PlanTask {
	return testutil.NewTestPlanTask(id, "1", testutil.WithSpan(start, end), testutil.WithChildren(children...))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", d(2024, 1, 10), d(2024, 1, 10), 0},
		{"forward", d(2024, 1, 10), d(2024, 1, 12), 2},
		{"backward", d(2024, 1, 12), d(2024, 1, 10), -2},
		{"leap day", d(2024, 2, 28), d(2024, 3, 1), 2},
		{"ignores time of day", d(2024, 1, 10).Add(23 * time.Hour), d(2024, 1, 11).Add(time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	a := time.Date(2024, 3, 9, 0, 0, 0, 0, loc)
	b := time.Date(2024, 3, 12, 0, 0, 0, 0, loc)
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, b, AddDays(a, 3))
}

func TestWeekAndMonthBounds(t *testing.T) {
	wed := d(2024, 1, 10)
	assert.Equal(t, d(2024, 1, 8), StartOfWeek(wed))
	assert.Equal(t, d(2024, 1, 14), EndOfWeek(wed))

	sun := d(2024, 1, 14)
	assert.Equal(t, d(2024, 1, 8), StartOfWeek(sun), "Sunday belongs to the week that started Monday")

	assert.Equal(t, d(2024, 2, 1), StartOfMonth(d(2024, 2, 17)))
	assert.Equal(t, d(2024, 2, 29), EndOfMonth(d(2024, 2, 17)))
}

func TestWorkingDays(t *testing.T) {
	assert.Equal(t, 5, WorkingDays(d(2024, 1, 8), d(2024, 1, 14)))
	assert.Equal(t, 1, WorkingDays(d(2024, 1, 12), d(2024, 1, 14)))
	assert.Equal(t, 10, WorkingDays(d(2024, 1, 6), d(2024, 1, 19)))
	assert.Zero(t, WorkingDays(d(2024, 1, 13), d(2024, 1, 14)))
	assert.Zero(t, WorkingDays(d(2024, 1, 14), d(2024, 1, 13)))
	assert.True(t, IsWeekend(d(2024, 1, 13)))
}

func TestComputeVisibleRange_AllExpandsToWeeks(t *testing.T) {
	tasks := []*domain.PlanTask{spanTask("a", d(2024, 1, 10), d(2024, 1, 12))}

	r := ComputeVisibleRange(tasks, ModeAll, d(2030, 6, 1))

	assert.Equal(t, d(2024, 1, 8), r.Start)
	assert.Equal(t, d(2024, 1, 14), r.End)
}

func TestComputeVisibleRange_AllCoversEveryTask(t *testing.T) {
	tasks := []*domain.PlanTask{
		spanTask("a", d(2024, 1, 10), d(2024, 1, 12),
			spanTask("a1", d(2024, 1, 3), d(2024, 1, 4))),
		spanTask("b", d(2024, 2, 1), d(2024, 2, 20)),
	}

	r := ComputeVisibleRange(tasks, ModeAll, d(2024, 1, 1))

	assert.Equal(t, time.Monday, r.Start.Weekday())
	assert.Equal(t, time.Sunday, r.End.Weekday())
	var visit func([]*domain.PlanTask)
	visit = func(ts []*domain.PlanTask) {
		for _, task := range ts {
			assert.True(t, r.Contains(task.StartDate), task.ID)
			assert.True(t, r.Contains(task.EndDate), task.ID)
			visit(task.SubTasks)
		}
	}
	visit(tasks)
	assert.Equal(t, d(2024, 1, 1), r.Start)
	assert.Equal(t, d(2024, 2, 25), r.End)
}

func TestComputeVisibleRange_Modes(t *testing.T) {
	today := d(2024, 1, 10)

	weekly := ComputeVisibleRange(nil, ModeWeekly, today)
	assert.Equal(t, Range{Start: d(2024, 1, 8), End: d(2024, 1, 14)}, weekly)

	monthly := ComputeVisibleRange(nil, ModeMonthly, today)
	assert.Equal(t, Range{Start: d(2024, 1, 1), End: d(2024, 1, 31)}, monthly)

	empty := ComputeVisibleRange(nil, ModeAll, today)
	assert.Equal(t, monthly, empty)
}

func TestGenerateHeaders_BucketsSumToDays(t *testing.T) {
	r := Range{Start: d(2024, 1, 29), End: d(2024, 2, 11)}
	h := GenerateHeaders(r)

	require.Len(t, h.Days, 14)
	require.Len(t, h.Weeks, 2)
	require.Len(t, h.Months, 2)

	assert.Equal(t, 5, h.Weeks[0].Week)
	assert.Equal(t, "W05", h.Weeks[0].Label)
	assert.Equal(t, 7, h.Weeks[0].DayCount)
	assert.Equal(t, "Jan 2024", h.Months[0].Label)
	assert.Equal(t, 3, h.Months[0].DayCount)
	assert.Equal(t, "Feb 2024", h.Months[1].Label)
	assert.Equal(t, 11, h.Months[1].DayCount)

	g := WebGeometry
	sumW, sumM := 0, 0
	for _, b := range h.Weeks {
		sumW += g.BucketWidth(b)
	}
	for _, b := range h.Months {
		sumM += g.BucketWidth(b)
	}
	assert.Equal(t, g.TotalWidth(r), sumW)
	assert.Equal(t, g.TotalWidth(r), sumM)
	assert.Equal(t, 14*24, g.TotalWidth(r))
}

func TestGenerateHeaders_ISOYearBoundary(t *testing.T) {
	h := GenerateHeaders(Range{Start: d(2024, 12, 30), End: d(2025, 1, 5)})
	require.Len(t, h.Weeks, 1)
	assert.Equal(t, 2025, h.Weeks[0].Year)
	assert.Equal(t, 1, h.Weeks[0].Week)
	assert.Len(t, h.Months, 2)
}

func TestLayoutBar(t *testing.T) {
	g := WebGeometry
	bar := g.LayoutBar(d(2024, 1, 8), d(2024, 1, 10), d(2024, 1, 12))
	assert.Equal(t, Bar{Left: 48, Width: 70}, bar)
	assert.Equal(t, 118, bar.Right())

	single := g.LayoutBar(d(2024, 1, 8), d(2024, 1, 8), d(2024, 1, 8))
	assert.Equal(t, Bar{Left: 0, Width: 22}, single)

	before := TerminalGeometry.LayoutBar(d(2024, 1, 8), d(2024, 1, 6), d(2024, 1, 9))
	assert.Equal(t, Bar{Left: -6, Width: 12}, before)
}

func TestGeometry_RowsAndDays(t *testing.T) {
	g := WebGeometry
	assert.Equal(t, 84, g.RowTop(3))
	assert.Equal(t, 0, g.DayAt(23))
	assert.Equal(t, 1, g.DayAt(24))
	assert.Equal(t, -1, g.DayAt(-1))
	assert.Equal(t, -1, g.DayAt(-24))
	assert.Equal(t, -2, g.DayAt(-25))
}

func TestTodayIndex(t *testing.T) {
	start := d(2024, 1, 8)
	i, ok := TodayIndex(start, d(2024, 1, 10), 7)
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = TodayIndex(start, d(2024, 1, 15), 7)
	assert.False(t, ok)
	_, ok = TodayIndex(start, d(2024, 1, 7), 7)
	assert.False(t, ok)
}

func TestParseModeAndNext(t *testing.T) {
	m, err := ParseMode(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, ModeMonthly, m)
	assert.Equal(t, ModeAll, m.Next())
	assert.Equal(t, ModeWeekly, ModeAll.Next())

	_, err = ParseMode("yearly")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
