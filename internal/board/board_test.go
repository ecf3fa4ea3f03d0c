package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/drag"
	"github.com/alexanderramin/planboard/internal/gateway"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyGateway counts calls and can fail the next one.
type spyGateway struct {
	gateway.TaskGateway
	calls   map[string]int
	failing error
}

func (s *spyGateway) record(op string) error {
	s.calls[op]++
	if s.failing != nil {
		err := s.failing
		s.failing = nil
		return &domain.GatewayError{Op: op, Err: err}
	}
	return nil
}

func (s *spyGateway) Tree(ctx context.Context, projectID string) ([]*domain.PlanTask, error) {
	if err := s.record("tree"); err != nil {
		return nil, err
	}
	return s.TaskGateway.Tree(ctx, projectID)
}

func (s *spyGateway) Create(ctx context.Context, req gateway.CreateRequest) (*domain.PlanTask, error) {
	if err := s.record("create"); err != nil {
		return nil, err
	}
	return s.TaskGateway.Create(ctx, req)
}

func (s *spyGateway) Update(ctx context.Context, id string, p domain.PlanTaskPatch) (*domain.PlanTask, error) {
	if err := s.record("update"); err != nil {
		return nil, err
	}
	return s.TaskGateway.Update(ctx, id, p)
}

func (s *spyGateway) Delete(ctx context.Context, id string) error {
	if err := s.record("delete"); err != nil {
		return err
	}
	return s.TaskGateway.Delete(ctx, id)
}

func (s *spyGateway) SetTimesheetState(ctx context.Context, id string, st domain.TimesheetState) (*domain.PlanTask, error) {
	if err := s.record("timesheet"); err != nil {
		return nil, err
	}
	return s.TaskGateway.SetTimesheetState(ctx, id, st)
}

var today = testutil.Date(2024, time.January, 10)

// newBoard loads a board over:
//
//	1   a   Jan 10-12
//	  1.1 a1 Jan 10-10 (4h used)
//	2   p   Jan 15-16
//	  2.1 p1 Jan 15-15
func newBoard(t *testing.T) (*Board, *spyGateway) {
	t.Helper()
	database := testutil.NewTestDB(t)
	plan := service.NewPlanService(repository.NewSQLitePlanTaskRepo(database), testutil.NewTestUoW(database))
	require.NoError(t, plan.Import(context.Background(), "1", []*domain.PlanTask{
		testutil.NewTestPlanTask("a", "1",
			testutil.WithChildren(testutil.NewTestPlanTask("a1", "1", testutil.WithSpan(today, today), testutil.WithHours(8, 4)))),
		testutil.NewTestPlanTask("p", "1", testutil.WithProjectCase("OT-2024"),
			testutil.WithSpan(testutil.Date(2024, time.January, 15), testutil.Date(2024, time.January, 16)),
			testutil.WithChildren(testutil.NewTestPlanTask("p1", "1", testutil.WithProjectCase("OT-2024"),
				testutil.WithSpan(testutil.Date(2024, time.January, 15), testutil.Date(2024, time.January, 15))))),
	}))
	spy := &spyGateway{TaskGateway: gateway.NewLocal(plan), calls: map[string]int{}}
	b := New(spy, "1",
		WithClock(func() time.Time { return today.Add(9 * time.Hour) }),
		WithGeometry(timeline.Geometry{DayWidth: 10, RowHeight: 1}))
	require.NoError(t, b.Load(context.Background()))
	return b, spy
}

func rowIDs(b *Board) []string {
	var ids []string
	for _, r := range b.Rows() {
		ids = append(ids, r.WBS+" "+r.Task.ID)
	}
	return ids
}

func TestBoard_LoadAndRows(t *testing.T) {
	b, _ := newBoard(t)
	assert.Equal(t, []string{"1 a", "1.1 a1", "2 p", "2.1 p1"}, rowIDs(b))
	assert.Equal(t, 4, b.Len())
}

func TestBoard_LoadFailureKeepsModel(t *testing.T) {
	b, spy := newBoard(t)
	spy.failing = domain.ErrTransport

	err := b.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Len(t, b.Rows(), 4)
}

func TestBoard_ToggleCollapseHidesDescendantsOnly(t *testing.T) {
	b, _ := newBoard(t)
	assert.True(t, b.ToggleCollapse("a"))
	assert.Equal(t, []string{"1 a", "2 p", "2.1 p1"}, rowIDs(b))
	assert.False(t, b.ToggleCollapse("a"))
	assert.Len(t, b.Rows(), 4)
}

func TestBoard_WindowAndToday(t *testing.T) {
	b, _ := newBoard(t)

	b.SetMode(timeline.ModeWeekly)
	w := b.Window()
	assert.True(t, testutil.Date(2024, time.January, 8).Equal(w.Start))
	assert.True(t, testutil.Date(2024, time.January, 14).Equal(w.End))
	idx, ok := b.TodayIndex()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	b.SetMode(timeline.ModeAll)
	w = b.Window()
	assert.True(t, testutil.Date(2024, time.January, 8).Equal(w.Start))
	assert.True(t, testutil.Date(2024, time.January, 21).Equal(w.End))
	assert.Len(t, b.Headers().Weeks, 2)

	assert.Equal(t, timeline.ModeWeekly, b.CycleMode())
}

func TestBoard_Bar(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(timeline.ModeWeekly)

	bar, ok := b.Bar("a")
	require.True(t, ok)
	assert.Equal(t, timeline.Bar{Left: 20, Width: 30}, bar)

	_, ok = b.Bar("ghost")
	assert.False(t, ok)
}

func TestBoard_AddTaskUnderParent(t *testing.T) {
	b, spy := newBoard(t)

	created, err := b.AddTask(context.Background(), "p")
	require.NoError(t, err)

	assert.Equal(t, "2.2", created.WBS)
	assert.Equal(t, DefaultTaskName, created.Name)
	assert.Equal(t, []string{DefaultAssignee}, created.Assignees)
	assert.Equal(t, "OT-2024", created.ProjectCase)
	assert.True(t, today.Equal(created.StartDate))
	assert.True(t, today.AddDate(0, 0, 1).Equal(created.EndDate))
	assert.Equal(t, domain.TimesheetDraft, created.TimesheetState)
	assert.Equal(t, 1, spy.calls["create"])
	assert.Equal(t, 5, b.Len())
}

func TestBoard_AddRootInheritsFirstRootCase(t *testing.T) {
	b, _ := newBoard(t)
	d := b.Draft("")
	assert.Equal(t, "SP-2024", d.ProjectCase)
	assert.Equal(t, "1", d.ProjectID)
}

func TestBoard_DeleteParentRemovesSubtree(t *testing.T) {
	b, _ := newBoard(t)
	require.NoError(t, b.DeleteTask(context.Background(), "p"))
	assert.Equal(t, []string{"1 a", "1.1 a1"}, rowIDs(b))
}

func TestBoard_MutationFailureLeavesModel(t *testing.T) {
	b, spy := newBoard(t)
	spy.failing = domain.ErrTransport

	err := b.DeleteTask(context.Background(), "p")
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Len(t, b.Rows(), 4)
	assert.Equal(t, 1, spy.calls["delete"])
	assert.Equal(t, 1, spy.calls["tree"], "no refresh after a failed mutation")
}

func TestBoard_SaveTask(t *testing.T) {
	b, spy := newBoard(t)
	name := "Renamed"

	updated, err := b.SaveTask(context.Background(), "a1", domain.PlanTaskPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	got, _ := b.Task("a1")
	assert.Equal(t, "Renamed", got.Name)

	_, err = b.SaveTask(context.Background(), "a1", domain.PlanTaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, 1, spy.calls["update"], "empty patch is not sent")
}

func TestBoard_TimesheetGating(t *testing.T) {
	b, spy := newBoard(t)
	ctx := context.Background()

	err := b.ResubmitTimesheet(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrValidation)
	err = b.SubmitTimesheet(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrValidation, "no hours logged")
	assert.Zero(t, spy.calls["timesheet"])

	require.NoError(t, b.SubmitTimesheet(ctx, "a1"))
	got, _ := b.Task("a1")
	assert.Equal(t, domain.TimesheetSubmitted, got.TimesheetState)

	assert.ErrorIs(t, b.SubmitTimesheet(ctx, "a1"), domain.ErrValidation)
	require.NoError(t, b.ResubmitTimesheet(ctx, "a1"))
	got, _ = b.Task("a1")
	assert.Equal(t, domain.TimesheetResubmitted, got.TimesheetState)

	assert.ErrorIs(t, b.SubmitTimesheet(ctx, "ghost"), domain.ErrNotFound)
}

func TestBoard_DragMoveCommitsAfterConfirm(t *testing.T) {
	b, spy := newBoard(t)
	ctx := context.Background()

	require.NoError(t, b.BeginDrag("a", drag.KindMove, 100))
	p, ok := b.DragTo(120)
	require.True(t, ok)
	assert.Equal(t, 2, p.Delta)

	bar, _ := b.Bar("a")
	before := b.geom.LayoutBar(b.Window().Start, testutil.Date(2024, time.January, 12), testutil.Date(2024, time.January, 14))
	assert.Equal(t, before, bar, "bar follows the preview")
	orig, _ := b.Task("a")
	assert.True(t, testutil.Date(2024, time.January, 10).Equal(orig.StartDate), "model untouched until commit")

	committed, err := b.EndDrag(ctx, 120)
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, 1, spy.calls["update"])

	moved, _ := b.Task("a")
	assert.True(t, testutil.Date(2024, time.January, 12).Equal(moved.StartDate))
	assert.True(t, testutil.Date(2024, time.January, 14).Equal(moved.EndDate))
	_, dragging := b.Dragging()
	assert.False(t, dragging)
}

func TestBoard_DragZeroDeltaIsNoop(t *testing.T) {
	b, spy := newBoard(t)
	require.NoError(t, b.BeginDrag("a", drag.KindResizeRight, 50))
	committed, err := b.EndDrag(context.Background(), 54)
	require.NoError(t, err)
	assert.False(t, committed)
	assert.Zero(t, spy.calls["update"])
}

func TestBoard_DragFailureKeepsPriorDates(t *testing.T) {
	b, spy := newBoard(t)
	require.NoError(t, b.BeginDrag("a", drag.KindMove, 0))
	spy.failing = domain.ErrTransport

	committed, err := b.EndDrag(context.Background(), 30)
	assert.False(t, committed)
	assert.ErrorIs(t, err, domain.ErrTransport)

	a, _ := b.Task("a")
	assert.True(t, testutil.Date(2024, time.January, 10).Equal(a.StartDate))
	b.SetMode(timeline.ModeWeekly)
	bar, _ := b.Bar("a")
	assert.Equal(t, 20, bar.Left)
}

func TestBoard_DragWhileActive(t *testing.T) {
	b, _ := newBoard(t)
	require.NoError(t, b.BeginDrag("a", drag.KindMove, 0))
	assert.ErrorIs(t, b.BeginDrag("p", drag.KindMove, 0), drag.ErrDragActive)
	b.CancelDrag()
	require.NoError(t, b.BeginDrag("p", drag.KindMove, 0))
	assert.ErrorIs(t, b.BeginDrag("ghost", drag.KindMove, 0), domain.ErrNotFound)
}

func TestBoard_HitTest(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(timeline.ModeWeekly)

	id, kind, ok := b.HitTest(0, 21)
	require.True(t, ok)
	assert.Equal(t, "a", id)
	assert.Equal(t, drag.KindResizeLeft, kind)

	_, kind, _ = b.HitTest(0, 35)
	assert.Equal(t, drag.KindMove, kind)
	_, kind, _ = b.HitTest(0, 49)
	assert.Equal(t, drag.KindResizeRight, kind)

	_, _, ok = b.HitTest(0, 60)
	assert.False(t, ok)
	_, _, ok = b.HitTest(9, 21)
	assert.False(t, ok)
}

func TestBoard_Nudge(t *testing.T) {
	b, _ := newBoard(t)
	require.NoError(t, b.Nudge(context.Background(), "a", drag.KindResizeLeft, 5))
	a, _ := b.Task("a")
	assert.True(t, testutil.Date(2024, time.January, 12).Equal(a.StartDate), "clamped to end")
	assert.True(t, testutil.Date(2024, time.January, 12).Equal(a.EndDate))
}

func TestBoard_GatewayErrorSurfaces(t *testing.T) {
	b, spy := newBoard(t)
	spy.failing = errors.New("boom")
	_, err := b.AddTask(context.Background(), "")
	var gwErr *domain.GatewayError
	assert.ErrorAs(t, err, &gwErr)
}
