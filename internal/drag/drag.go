// Package drag turns pointer gestures on timeline bars into date changes.
//
// The engine is a two-state machine: Idle, or Dragging one task. It holds no
// reference to the task tree; callers pass the task's dates in at Begin and
// commit the returned Change themselves.
package drag

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/planboard/internal/timeline"
)

// ErrDragActive is returned by Begin while another drag is in progress.
var ErrDragActive = errors.New("drag already in progress")

// Kind says which dates a gesture moves.
type Kind string

const (
	KindMove        Kind = "move"
	KindResizeLeft  Kind = "resize-left"
	KindResizeRight Kind = "resize-right"
	// KindGridToTimeline is accepted so the gesture can be tracked, but
	// ending it never yields a change.
	KindGridToTimeline Kind = "grid-to-timeline"
)

// Session is the Dragging state.
type Session struct {
	TaskID    string
	Kind      Kind
	OriginX   int
	Start     time.Time
	End       time.Time
	LastDelta int
}

// Preview is the provisional span while the pointer moves.
type Preview struct {
	TaskID string
	Start  time.Time
	End    time.Time
	Delta  int
}

// Change is the committed result of a finished drag.
type Change struct {
	TaskID string
	Kind   Kind
	Start  time.Time
	End    time.Time
	Delta  int
}

// Engine tracks at most one drag session.
type Engine struct {
	dayWidth int
	active   *Session
}

// NewEngine creates an idle engine for a grid of dayWidth units per day.
func NewEngine(dayWidth int) *Engine {
	if dayWidth <= 0 {
		dayWidth = 1
	}
	return &Engine{dayWidth: dayWidth}
}

// Active returns the current session, or false when idle.
func (e *Engine) Active() (Session, bool) {
	if e.active == nil {
		return Session{}, false
	}
	return *e.active, true
}

// Begin starts dragging taskID whose current span is [start, end].
func (e *Engine) Begin(taskID string, kind Kind, originX int, start, end time.Time) error {
	if e.active != nil {
		return fmt.Errorf("begin %s on %s: %w", kind, taskID, ErrDragActive)
	}
	switch kind {
	case KindMove, KindResizeLeft, KindResizeRight, KindGridToTimeline:
	default:
		return fmt.Errorf("unknown drag kind %q", kind)
	}
	e.active = &Session{
		TaskID:  taskID,
		Kind:    kind,
		OriginX: originX,
		Start:   timeline.StartOfDay(start),
		End:     timeline.StartOfDay(end),
	}
	return nil
}

// Move reports a new pointer position. It returns a preview only when the
// whole-day delta differs from the last one seen.
func (e *Engine) Move(x int) (Preview, bool) {
	s := e.active
	if s == nil || s.Kind == KindGridToTimeline {
		return Preview{}, false
	}
	delta := DaysDelta(x-s.OriginX, e.dayWidth)
	if delta == s.LastDelta {
		return Preview{}, false
	}
	s.LastDelta = delta
	start, end := Apply(s.Kind, s.Start, s.End, delta)
	return Preview{TaskID: s.TaskID, Start: start, End: end, Delta: delta}, true
}

// End finishes the drag at x and returns to Idle. ok is false when nothing
// should be committed: idle engine, zero delta, or a grid-to-timeline
// gesture.
func (e *Engine) End(x int) (Change, bool) {
	s := e.active
	e.active = nil
	if s == nil || s.Kind == KindGridToTimeline {
		return Change{}, false
	}
	delta := DaysDelta(x-s.OriginX, e.dayWidth)
	if delta == 0 {
		return Change{}, false
	}
	start, end := Apply(s.Kind, s.Start, s.End, delta)
	return Change{TaskID: s.TaskID, Kind: s.Kind, Start: start, End: end, Delta: delta}, true
}

// Cancel abandons the drag without a change.
func (e *Engine) Cancel() {
	e.active = nil
}

// DaysDelta converts a pointer offset to whole days, rounding halves toward
// positive infinity.
func DaysDelta(pixels, dayWidth int) int {
	return int(math.Floor(float64(pixels)/float64(dayWidth) + 0.5))
}

// Apply shifts [start, end] by delta days according to kind. Resizes that
// would invert the span are clamped to a single day.
func Apply(kind Kind, start, end time.Time, delta int) (time.Time, time.Time) {
	switch kind {
	case KindMove:
		return timeline.AddDays(start, delta), timeline.AddDays(end, delta)
	case KindResizeRight:
		newEnd := timeline.AddDays(end, delta)
		if timeline.DaysBetween(start, newEnd) < 0 {
			newEnd = start
		}
		return start, newEnd
	case KindResizeLeft:
		newStart := timeline.AddDays(start, delta)
		if timeline.DaysBetween(newStart, end) < 0 {
			newStart = end
		}
		return newStart, end
	}
	return start, end
}

// KindAt picks the gesture for a press at x over bar: the outer edge cells
// resize, anything between moves. Bars narrower than three edge widths only
// move.
func KindAt(bar timeline.Bar, x, edge int) (Kind, bool) {
	if x < bar.Left || x >= bar.Right() {
		return "", false
	}
	if bar.Width < 3*edge {
		return KindMove, true
	}
	switch {
	case x < bar.Left+edge:
		return KindResizeLeft, true
	case x >= bar.Right()-edge:
		return KindResizeRight, true
	}
	return KindMove, true
}
