package board

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/drag"
)

// HitTest finds the bar under timeline offset x on visible row index and
// the gesture a press there would start.
func (b *Board) HitTest(row, x int) (string, drag.Kind, bool) {
	rows := b.Rows()
	if row < 0 || row >= len(rows) {
		return "", "", false
	}
	id := rows[row].Task.ID
	bar, ok := b.Bar(id)
	if !ok {
		return "", "", false
	}
	edge := max(1, b.geom.DayWidth/3)
	kind, ok := drag.KindAt(bar, x, edge)
	return id, kind, ok
}

// BeginDrag starts a gesture on task id at timeline offset x.
func (b *Board) BeginDrag(id string, kind drag.Kind, x int) error {
	t, ok := b.tree.Get(id)
	if !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	if err := b.drag.Begin(id, kind, x, t.StartDate, t.EndDate); err != nil {
		return err
	}
	b.preview = nil
	return nil
}

// DragTo moves the pointer and returns the new preview when the day delta
// changed.
func (b *Board) DragTo(x int) (drag.Preview, bool) {
	p, ok := b.drag.Move(x)
	if ok {
		b.preview = &p
	}
	return p, ok
}

// Dragging reports the active session, if any.
func (b *Board) Dragging() (drag.Session, bool) {
	return b.drag.Active()
}

// EndDrag finishes the gesture at x. A non-zero change is sent to the
// gateway and the tree reloaded once it is confirmed. On failure the
// previous dates stay displayed. committed is false for no-op drags.
func (b *Board) EndDrag(ctx context.Context, x int) (committed bool, err error) {
	change, ok := b.drag.End(x)
	b.preview = nil
	if !ok {
		return false, nil
	}
	if _, err := b.gw.Update(ctx, change.TaskID, domain.DatePatch(change.Start, change.End)); err != nil {
		return false, err
	}
	return true, b.refresh(ctx, "drag")
}

// CancelDrag abandons the gesture.
func (b *Board) CancelDrag() {
	b.drag.Cancel()
	b.preview = nil
}

// Nudge shifts task id by delta days using kind's rules, as a keyboard
// alternative to dragging.
func (b *Board) Nudge(ctx context.Context, id string, kind drag.Kind, delta int) error {
	t, ok := b.tree.Get(id)
	if !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	if delta == 0 {
		return nil
	}
	start, end := drag.Apply(kind, t.StartDate, t.EndDate, delta)
	if _, err := b.gw.Update(ctx, id, domain.DatePatch(start, end)); err != nil {
		return err
	}
	return b.refresh(ctx, "nudge")
}
