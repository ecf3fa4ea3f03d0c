package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/board"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// Canvas describes the full timeline strip that gantt lines are cut from.
type Canvas struct {
	Start    time.Time
	Days     int
	DayWidth int
	Today    int
	TodayOK  bool
}

// CanvasFor builds the canvas of b's current window.
func CanvasFor(b *board.Board) Canvas {
	w := b.Window()
	today, ok := b.TodayIndex()
	return Canvas{Start: w.Start, Days: w.Days(), DayWidth: max(b.Geometry().DayWidth, 1), Today: today, TodayOK: ok}
}

// Width is the canvas width in cells.
func (c Canvas) Width() int {
	return c.Days * c.DayWidth
}

// HeaderLines renders the month, week and day header rows, cut to the
// visible slice [left, left+width).
func (c Canvas) HeaderLines(h timeline.Headers, left, width int) []string {
	months := bucketLine(h.Months, c.DayWidth)
	weeks := bucketLine(h.Weeks, c.DayWidth)
	var days strings.Builder
	for _, d := range h.Days {
		days.WriteString(fmt.Sprintf("%*d", c.DayWidth, d.Day()))
	}
	return []string{
		StyleHeader.Render(Cut(months, left, width)),
		StyleDim.Render(Cut(weeks, left, width)),
		StyleDim.Render(Cut(days.String(), left, width)),
	}
}

func bucketLine(buckets []timeline.Bucket, dayWidth int) string {
	var b strings.Builder
	for _, bk := range buckets {
		w := bk.DayCount * dayWidth
		label := bk.Label
		if len(label) > w-1 {
			label = label[:max(w-1, 0)]
		}
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", w-len(label)))
	}
	return b.String()
}

// Cut returns runes [left, left+width) of s, padded with spaces.
func Cut(s string, left, width int) string {
	r := []rune(s)
	out := make([]rune, width)
	for i := range out {
		j := left + i
		if j >= 0 && j < len(r) {
			out[i] = r[j]
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}

// Line renders one task row of the timeline within [left, left+width).
// Weekends are dotted, today's column carries a marker, and the bar is
// colored by status. A selected bar is drawn bold.
func (c Canvas) Line(bar timeline.Bar, hasBar bool, status domain.Status, selected bool, left, width int) string {
	barStyle := StatusStyle(status)
	if selected {
		barStyle = barStyle.Bold(true).Underline(true)
	}
	todayStyle := StyleRed

	var b strings.Builder
	var run strings.Builder
	var runStyle *lipgloss.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runStyle != nil {
			b.WriteString(runStyle.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	emit := func(ch string, st *lipgloss.Style) {
		if st != runStyle {
			flush()
			runStyle = st
		}
		run.WriteString(ch)
	}

	for i := 0; i < width; i++ {
		x := left + i
		if x < 0 || x >= c.Width() {
			emit(" ", nil)
			continue
		}
		day := x / c.DayWidth
		switch {
		case hasBar && x >= bar.Left && x < bar.Right():
			emit("█", &barStyle)
		case c.TodayOK && day == c.Today && x%c.DayWidth == c.DayWidth/2:
			emit("│", &todayStyle)
		case timeline.IsWeekend(timeline.AddDays(c.Start, day)):
			emit("·", &StyleDim)
		default:
			emit(" ", nil)
		}
	}
	flush()
	return b.String()
}

// RenderGantt draws the whole board as text: a name column followed by the
// timeline for the current window.
func RenderGantt(b *board.Board, nameWidth int) string {
	c := CanvasFor(b)
	width := c.Width()
	pad := strings.Repeat(" ", nameWidth+1)

	var out strings.Builder
	for _, line := range c.HeaderLines(b.Headers(), 0, width) {
		out.WriteString(pad + line + "\n")
	}
	for _, r := range b.Rows() {
		name := strings.Repeat("  ", r.Depth) + r.WBS + " " + r.Task.Name
		bar, ok := b.Bar(r.Task.ID)
		out.WriteString(Cut(name, 0, nameWidth) + " ")
		out.WriteString(c.Line(bar, ok, r.Task.Status, false, 0, width))
		out.WriteString("\n")
	}
	return out.String()
}
