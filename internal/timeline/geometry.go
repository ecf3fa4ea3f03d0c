package timeline

import "time"

// Geometry maps days and rows to pixels (or terminal cells).
type Geometry struct {
	DayWidth  int
	RowHeight int
	// Gap is trimmed from the right edge of every bar so adjacent bars do
	// not touch.
	Gap int
}

// WebGeometry matches the browser Gantt chart.
var WebGeometry = Geometry{DayWidth: 24, RowHeight: 28, Gap: 2}

// TerminalGeometry is used by the terminal board: three cells per day, one
// line per row.
var TerminalGeometry = Geometry{DayWidth: 3, RowHeight: 1, Gap: 0}

// Bar is the horizontal extent of a task on the timeline.
type Bar struct {
	Left  int
	Width int
}

// Right is the first position after the bar.
func (b Bar) Right() int {
	return b.Left + b.Width
}

// LayoutBar positions a task spanning [start, end] inside a window starting
// at windowStart. start <= end is a caller contract and is not checked here.
func (g Geometry) LayoutBar(windowStart, start, end time.Time) Bar {
	return Bar{
		Left:  DaysBetween(windowStart, start) * g.DayWidth,
		Width: (DaysBetween(start, end)+1)*g.DayWidth - g.Gap,
	}
}

func (g Geometry) BucketWidth(b Bucket) int {
	return b.DayCount * g.DayWidth
}

// TotalWidth is the full timeline width for r.
func (g Geometry) TotalWidth(r Range) int {
	return r.Days() * g.DayWidth
}

// RowTop is the vertical offset of the row at index.
func (g Geometry) RowTop(index int) int {
	return index * g.RowHeight
}

// DayAt returns the day index under horizontal offset x, which may be
// negative or past the window.
func (g Geometry) DayAt(x int) int {
	if x < 0 {
		return -((-x + g.DayWidth - 1) / g.DayWidth)
	}
	return x / g.DayWidth
}

// TodayIndex is today's column in a window of dayCount days. ok is false
// when today is outside the window and the marker must not be drawn.
func TodayIndex(windowStart, today time.Time, dayCount int) (int, bool) {
	i := DaysBetween(windowStart, today)
	if i < 0 || i >= dayCount {
		return 0, false
	}
	return i, true
}
