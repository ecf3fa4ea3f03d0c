// Package board composes the plan tree, the timeline layout and the drag
// engine for a single project. Every mutation goes through a gateway and the
// tree is reloaded only after the gateway confirms it; nothing is applied
// optimistically.
package board

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/drag"
	"github.com/alexanderramin/planboard/internal/gateway"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/alexanderramin/planboard/internal/wbs"
)

// Defaults for tasks created from the board.
const (
	DefaultTaskName        = "New Task"
	DefaultTaskDescription = "A new task description."
	DefaultAssignee        = "Unassigned"
	DefaultEstHours        = 8
)

type Option func(*Board)

// WithGeometry sets the pixel or cell geometry bars are laid out with.
func WithGeometry(g timeline.Geometry) Option {
	return func(b *Board) { b.geom = g }
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

func WithMode(m timeline.Mode) Option {
	return func(b *Board) { b.mode = m }
}

// Board is the state behind one plan view. It is not safe for concurrent
// use; the UI drives it from a single event loop.
type Board struct {
	gw        gateway.TaskGateway
	projectID string
	geom      timeline.Geometry
	now       func() time.Time
	mode      timeline.Mode

	roots     []*domain.PlanTask
	tree      *wbs.Tree
	collapsed wbs.Collapsed

	drag    *drag.Engine
	preview *drag.Preview
}

func New(gw gateway.TaskGateway, projectID string, opts ...Option) *Board {
	b := &Board{
		gw:        gw,
		projectID: projectID,
		geom:      timeline.WebGeometry,
		now:       time.Now,
		mode:      timeline.ModeMonthly,
		tree:      wbs.New(),
		collapsed: wbs.Collapsed{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.drag = drag.NewEngine(b.geom.DayWidth)
	return b
}

func (b *Board) ProjectID() string { return b.projectID }

func (b *Board) Geometry() timeline.Geometry { return b.geom }

func (b *Board) Mode() timeline.Mode { return b.mode }

// Load fetches the tree and replaces the model. On failure the previous
// model stays in place.
func (b *Board) Load(ctx context.Context) error {
	roots, err := b.gw.Tree(ctx, b.projectID)
	if err != nil {
		return err
	}
	b.roots = roots
	b.tree = wbs.FromTasks(roots)
	b.collapsed.Prune(b.tree)
	return nil
}

// Rows is the visible, flattened tree.
func (b *Board) Rows() []wbs.Row {
	return b.tree.Flatten(b.collapsed)
}

// Len counts every task, collapsed or not.
func (b *Board) Len() int {
	return b.tree.Len()
}

func (b *Board) Task(id string) (*domain.PlanTask, bool) {
	return b.tree.Get(id)
}

func (b *Board) today() time.Time {
	return timeline.StartOfDay(b.now())
}

// Window is the visible date range for the current mode.
func (b *Board) Window() timeline.Range {
	return timeline.ComputeVisibleRange(b.roots, b.mode, b.today())
}

func (b *Board) Headers() timeline.Headers {
	return timeline.GenerateHeaders(b.Window())
}

// Bar lays out task id in the current window. During a drag the dragged
// task is drawn at its previewed dates.
func (b *Board) Bar(id string) (timeline.Bar, bool) {
	t, ok := b.tree.Get(id)
	if !ok {
		return timeline.Bar{}, false
	}
	start, end := t.StartDate, t.EndDate
	if b.preview != nil && b.preview.TaskID == id {
		start, end = b.preview.Start, b.preview.End
	}
	return b.geom.LayoutBar(b.Window().Start, start, end), true
}

// TodayIndex is today's column, false when today is outside the window.
func (b *Board) TodayIndex() (int, bool) {
	w := b.Window()
	return timeline.TodayIndex(w.Start, b.today(), w.Days())
}

func (b *Board) SetMode(m timeline.Mode) {
	b.mode = m
}

// CycleMode advances to the next view mode and returns it.
func (b *Board) CycleMode() timeline.Mode {
	b.mode = b.mode.Next()
	return b.mode
}

// ToggleCollapse flips a row's expanded state and returns true when it is
// now collapsed.
func (b *Board) ToggleCollapse(id string) bool {
	return b.collapsed.Toggle(id)
}

func (b *Board) IsCollapsed(id string) bool {
	return b.collapsed.IsCollapsed(id)
}

// refresh reloads after a confirmed mutation.
func (b *Board) refresh(ctx context.Context, op string) error {
	if err := b.Load(ctx); err != nil {
		return fmt.Errorf("refresh after %s: %w", op, err)
	}
	return nil
}

// Draft returns the default new task under parentID (empty for a root).
// The project case comes from the parent, else from the first root.
func (b *Board) Draft(parentID string) *domain.PlanTask {
	today := b.today()
	t := &domain.PlanTask{
		ProjectID:      b.projectID,
		Name:           DefaultTaskName,
		Description:    DefaultTaskDescription,
		Assignees:      []string{DefaultAssignee},
		Priority:       domain.PriorityMedium,
		Status:         domain.StatusBacklog,
		StartDate:      today,
		EndDate:        timeline.AddDays(today, 1),
		EstHours:       DefaultEstHours,
		TimesheetState: domain.TimesheetDraft,
	}
	if parent, ok := b.tree.Get(parentID); ok {
		t.ProjectCase = parent.ProjectCase
	} else if len(b.roots) > 0 {
		t.ProjectCase = b.roots[0].ProjectCase
	}
	return t
}

// AddTask creates the default draft under parentID, or at the root when
// parentID is empty.
func (b *Board) AddTask(ctx context.Context, parentID string) (*domain.PlanTask, error) {
	req := gateway.CreateRequest{ProjectID: b.projectID, Task: b.Draft(parentID)}
	if parentID != "" {
		req.ParentID = &parentID
	}
	created, err := b.gw.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := b.refresh(ctx, "create"); err != nil {
		return created, err
	}
	if t, ok := b.tree.Get(created.ID); ok {
		return t, nil
	}
	return created, nil
}

// DeleteTask removes id and its subtree.
func (b *Board) DeleteTask(ctx context.Context, id string) error {
	if err := b.gw.Delete(ctx, id); err != nil {
		return err
	}
	return b.refresh(ctx, "delete")
}

// SaveTask applies an edit from the details form.
func (b *Board) SaveTask(ctx context.Context, id string, patch domain.PlanTaskPatch) (*domain.PlanTask, error) {
	if patch.IsEmpty() {
		t, ok := b.tree.Get(id)
		if !ok {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return t, nil
	}
	updated, err := b.gw.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return updated, b.refresh(ctx, "update")
}

func (b *Board) SubmitTimesheet(ctx context.Context, id string) error {
	return b.timesheet(ctx, id, domain.TimesheetSubmitted, domain.CanSubmit, "hours must be logged and the timesheet still a draft")
}

func (b *Board) ResubmitTimesheet(ctx context.Context, id string) error {
	return b.timesheet(ctx, id, domain.TimesheetResubmitted, domain.CanResubmit, "hours must be logged and the timesheet already submitted")
}

func (b *Board) timesheet(ctx context.Context, id string, state domain.TimesheetState, allowed func(*domain.PlanTask) bool, reason string) error {
	t, ok := b.tree.Get(id)
	if !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	if !allowed(t) {
		return &domain.ValidationError{Field: "timesheetState", Reason: reason}
	}
	if _, err := b.gw.SetTimesheetState(ctx, id, state); err != nil {
		return err
	}
	return b.refresh(ctx, "timesheet")
}
