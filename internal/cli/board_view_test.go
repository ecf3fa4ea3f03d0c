package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/planboard/internal/board"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/gateway"
	"github.com/alexanderramin/planboard/internal/teatest"
	"github.com/alexanderramin/planboard/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// With a 120x30 terminal the grid is 48 cells wide, the timeline starts at
// x=49 and row i of the seeded plan is drawn at y=4+i:
//
//	0 gantt-1  1 gantt-2  2 gantt-2.1  3 gantt-2.2  4 gantt-3
//
// The monthly window starts on 1 Jan 2024 with three cells per day.
const (
	bodyY     = 4
	gridW     = initialGridWidth
	timelineX = gridW + dividerWidth
)

// unreachableUpdates fails every Update as a dropped connection would.
type unreachableUpdates struct {
	gateway.TaskGateway
}

func (unreachableUpdates) Update(context.Context, string, domain.PlanTaskPatch) (*domain.PlanTask, error) {
	return nil, &domain.GatewayError{Op: "update", Err: fmt.Errorf("%w: connection refused", domain.ErrTransport)}
}

func newBoardDriver(t *testing.T, w, h int, wrap ...func(gateway.TaskGateway) gateway.TaskGateway) (*teatest.Driver, *App) {
	t.Helper()
	app, _ := newTestApp(t)
	var gw gateway.TaskGateway = gateway.NewLocal(app.Plan)
	for _, fn := range wrap {
		gw = fn(gw)
	}
	ctx := context.Background()
	b := board.New(gw, "1", board.WithGeometry(timeline.TerminalGeometry), board.WithClock(app.Now))
	require.NoError(t, b.Load(ctx))

	d := teatest.New(t, newBoardModel(ctx, b, 1600), teatest.WithSize(w, h))
	d.DrainInit()
	return d, app
}

func boardOf(d *teatest.Driver) boardModel {
	return d.Model.(boardModel)
}

func planTask(t *testing.T, app *App, id string) *domain.PlanTask {
	t.Helper()
	task, err := app.Plan.Get(context.Background(), id)
	require.NoError(t, err)
	return task
}

func TestBoardView_Renders(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 30)

	view := d.View()
	assert.Contains(t, view, "Project Kick-off")
	assert.Contains(t, view, "Order Inverter")
	assert.Contains(t, view, "Jan 2024")
	assert.Contains(t, view, "W02")
	assert.Contains(t, view, "quit")
}

func TestBoardView_CollapseToggle(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 30)

	d.PressKey('j')
	d.Press(tea.KeyEnter)
	m := boardOf(d)
	assert.True(t, m.board.IsCollapsed("gantt-2"))
	assert.Len(t, m.board.Rows(), 3)
	assert.NotContains(t, d.View(), "Order Inverter")

	d.PressKey(' ')
	assert.Len(t, boardOf(d).board.Rows(), 5)
}

func TestBoardView_KeyboardNudges(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	d.Type("jjjj")
	d.PressKey('>')
	task := planTask(t, app, "gantt-3")
	assert.Equal(t, "2024-01-17", task.StartDate.Format(dateLayout))
	assert.Equal(t, "2024-01-31", task.EndDate.Format(dateLayout))

	d.PressKey('[')
	d.PressKey('}')
	task = planTask(t, app, "gantt-3")
	assert.Equal(t, "2024-01-18", task.StartDate.Format(dateLayout))
	assert.Equal(t, "2024-01-30", task.EndDate.Format(dateLayout))
	assert.Contains(t, boardOf(d).status, "Installation")
}

func TestBoardView_AddSubtask(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 30)

	d.PressKey('j')
	d.PressKey('a')
	m := boardOf(d)
	require.Equal(t, 6, m.board.Len())
	row := m.board.Rows()[m.cursor]
	assert.Equal(t, "2.3", row.WBS)
	assert.Equal(t, board.DefaultTaskName, row.Task.Name)
	assert.Equal(t, "Task created successfully", m.status)
}

func TestBoardView_DeleteNeedsConfirmation(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	d.PressKey('j')
	d.PressKey('d')
	assert.Contains(t, boardOf(d).status, "Design Phase")
	d.PressKey('n')
	assert.Equal(t, 5, boardOf(d).board.Len())

	d.PressKey('d')
	d.PressKey('y')
	assert.Equal(t, 2, boardOf(d).board.Len())
	_, err := app.Plan.Get(context.Background(), "gantt-2.2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBoardView_Timesheet(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	d.Type("jj")
	d.PressKey('s')
	assert.Equal(t, domain.TimesheetSubmitted, planTask(t, app, "gantt-2.1").TimesheetState)
	assert.Equal(t, "Timesheet submitted", boardOf(d).status)

	d.Type("jj")
	d.PressKey('s')
	m := boardOf(d)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "hours must be logged")
	assert.Equal(t, domain.TimesheetDraft, planTask(t, app, "gantt-3").TimesheetState)
}

func TestBoardView_CycleMode(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 30)

	d.PressKey('m')
	assert.Equal(t, timeline.ModeAll, boardOf(d).board.Mode())
	d.PressKey('m')
	assert.Equal(t, timeline.ModeWeekly, boardOf(d).board.Mode())
}

func TestBoardView_DragMovesBar(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	// gantt-2.2 spans 12-15 Jan: cells 33..44, edges resize.
	d.Drag(timelineX+39, timelineX+45, bodyY+3)

	task := planTask(t, app, "gantt-2.2")
	assert.Equal(t, "2024-01-14", task.StartDate.Format(dateLayout))
	assert.Equal(t, "2024-01-17", task.EndDate.Format(dateLayout))
	_, dragging := boardOf(d).board.Dragging()
	assert.False(t, dragging)
}

func TestBoardView_DragResizesRightEdge(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	d.Drag(timelineX+44, timelineX+47, bodyY+3)

	task := planTask(t, app, "gantt-2.2")
	assert.Equal(t, "2024-01-12", task.StartDate.Format(dateLayout))
	assert.Equal(t, "2024-01-16", task.EndDate.Format(dateLayout))
}

func TestBoardView_DragBelowOneDayIsNoop(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	d.Drag(timelineX+39, timelineX+40, bodyY+3)

	task := planTask(t, app, "gantt-2.2")
	assert.Equal(t, "2024-01-12", task.StartDate.Format(dateLayout))
}

func TestBoardView_FailedDragKeepsDates(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30, func(gw gateway.TaskGateway) gateway.TaskGateway {
		return unreachableUpdates{gw}
	})

	d.Drag(timelineX+39, timelineX+45, bodyY+3)

	m := boardOf(d)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "store unreachable")
	task, ok := m.board.Task("gantt-2.2")
	require.True(t, ok)
	assert.Equal(t, "2024-01-12", task.StartDate.Format(dateLayout))
	assert.Equal(t, "2024-01-12", planTask(t, app, "gantt-2.2").StartDate.Format(dateLayout))
}

func TestBoardView_GridHandleDropDoesNotReschedule(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	d.MouseDown(0, bodyY+3)
	_, dragging := boardOf(d).board.Dragging()
	assert.True(t, dragging)
	d.MouseMove(timelineX+10, bodyY+3)
	d.MouseUp(timelineX+10, bodyY+3)

	assert.Equal(t, "2024-01-12", planTask(t, app, "gantt-2.2").StartDate.Format(dateLayout))
}

func TestBoardView_EscCancelsDrag(t *testing.T) {
	d, app := newBoardDriver(t, 120, 30)

	d.MouseDown(timelineX+39, bodyY+3)
	d.MouseMove(timelineX+45, bodyY+3)
	d.Press(tea.KeyEsc)
	d.MouseUp(timelineX+45, bodyY+3)

	assert.Equal(t, "2024-01-12", planTask(t, app, "gantt-2.2").StartDate.Format(dateLayout))
}

func TestBoardView_DividerResizeIsClamped(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 30)

	d.Drag(gridW, gridW+15, 10)
	assert.Equal(t, gridW+15, boardOf(d).split.Width)

	d.MouseDown(gridW+15, 10)
	d.MouseMove(500, 10)
	assert.Equal(t, 107, boardOf(d).split.Width, "timeline keeps its minimum width")
	d.MouseMove(0, 10)
	assert.Equal(t, minGridWidth, boardOf(d).split.Width)
	assert.Equal(t, boardOf(d).split.Min, minGridWidth)
	d.MouseUp(0, 10)
	assert.False(t, boardOf(d).split.Resizing())

	d.PressKey('+')
	assert.Equal(t, minGridWidth+splitStep, boardOf(d).split.Width)
	d.PressKey('-')
	d.PressKey('-')
	assert.Equal(t, minGridWidth, boardOf(d).split.Width)
}

func TestBoardView_MinimumGridKeepsEveryColumn(t *testing.T) {
	assert.Equal(t, colHandle+colWBS+colName+colHours+colGaps, minGridWidth)

	d, _ := newBoardDriver(t, 120, 30)
	d.MouseDown(gridW, 10)
	d.MouseMove(0, 10)
	d.MouseUp(0, 10)
	require.Equal(t, minGridWidth, boardOf(d).split.Width)

	lines := strings.Split(d.View(), "\n")
	header := []rune(lines[bodyY-1])[:minGridWidth]
	assert.Equal(t, "WBS", strings.TrimSpace(string(header[colHandle:colHandle+colWBS])))
	assert.Contains(t, string(header), "USED/EST")

	want := []struct {
		wbs, name, hours string
	}{
		{"1", "Project Kick-off", "24h/24h"},
		{"2", "Design Phase", "30h/80h"},
		{"2.1", "Finalize Solar P", "10h/40h"},
		{"2.2", "Order Inverter C", "0h/16h"},
		{"3", "Installation", "0h/120h"},
	}
	for i, w := range want {
		line := []rune(lines[bodyY+i])
		require.GreaterOrEqual(t, len(line), minGridWidth+1, "row %d", i)
		assert.Equal(t, "│", string(line[minGridWidth]), "divider right after the grid")

		cells := line[:minGridWidth]
		nameAt := colHandle + colWBS
		hoursAt := nameAt + colName + colGaps
		assert.Equal(t, w.wbs, strings.TrimSpace(string(cells[colHandle:nameAt])))
		assert.Contains(t, string(cells[nameAt:nameAt+colName]), w.name)
		assert.Equal(t, w.hours, strings.TrimSpace(string(cells[hoursAt:])))
	}
}

func TestBoardView_WheelScrollIsMirrored(t *testing.T) {
	// Height 8 leaves two body rows.
	d, _ := newBoardDriver(t, 120, 8)

	d.Wheel(5, bodyY, 1)
	m := boardOf(d)
	assert.Equal(t, 3, m.scroll.Top(0), "clamped so the last row stays reachable")
	assert.Equal(t, m.scroll.Top(0), m.scroll.Top(1))
	assert.Contains(t, d.View(), "Installation")

	d.Wheel(timelineX+5, bodyY, -1)
	m = boardOf(d)
	assert.Zero(t, m.scroll.Top(0))
	assert.Zero(t, m.scroll.Top(1))
}

func TestBoardView_CursorScrollsIntoView(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 8)

	d.Type("jjjj")
	m := boardOf(d)
	assert.Equal(t, 4, m.cursor)
	assert.Equal(t, 3, m.scroll.Top(0))
}

func TestBoardView_HorizontalScrollMovesHeader(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 30)

	d.Press(tea.KeyRight)
	d.Press(tea.KeyRight)
	m := boardOf(d)
	assert.Equal(t, 6, m.scroll.Left())
	assert.Equal(t, m.scroll.Left(), m.scroll.HeaderLeft())

	for range 50 {
		d.Press(tea.KeyRight)
	}
	// 31 days * 3 cells - 71 visible.
	m = boardOf(d)
	assert.Equal(t, 22, m.scroll.Left())
}

func TestBoardView_Quit(t *testing.T) {
	d, _ := newBoardDriver(t, 120, 30)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
