package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/board"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/drag"
	"github.com/alexanderramin/planboard/internal/gateway"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/alexanderramin/planboard/internal/viewsync"
	"github.com/alexanderramin/planboard/internal/wbs"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen layout, in terminal cells.
const (
	titleLines       = 1
	headerLines      = 3
	footerLines      = 2
	dividerWidth     = 1
	initialGridWidth = 48
	minTimelineWidth = 12
	splitStep        = 4
	wheelStep        = 3
)

// Terminal grid columns: drag handle, WBS, name (indent and toggle
// included) and used/est hours, plus the gap before the hours. Their sum is
// the narrowest the grid may get; extra width goes to the name.
const (
	colHandle = 2
	colWBS    = 6
	colName   = 20
	colHours  = 13
	colGaps   = 1
)

var gridColumns = []int{colHandle, colWBS, colName, colHours}

// minGridWidth keeps every grid column whole.
var minGridWidth = viewsync.ColumnsWidth(gridColumns, colGaps)

var (
	styleSelectedRow = lipgloss.NewStyle().Reverse(true)
	styleDivider     = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	styleDividerHot  = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
)

// boardModel is the plan board TUI: a WBS grid on the left, the timeline on
// the right, a draggable divider between them. Gateway calls run inside
// Update; the board is not safe for concurrent use.
type boardModel struct {
	ctx     context.Context
	board   *board.Board
	keys    boardKeyMap
	help    help.Model
	scroll  viewsync.Scroll
	split   *viewsync.Split
	gridMax int

	width, height int
	cursor        int
	status        string
	statusErr     bool
	pendingDelete string
}

func newBoardModel(ctx context.Context, b *board.Board, gridMax int) boardModel {
	split := viewsync.NewSplit(minGridWidth, max(gridMax, minGridWidth))
	split.Nudge(initialGridWidth - minGridWidth)
	return boardModel{
		ctx:     ctx,
		board:   b,
		keys:    defaultBoardKeyMap(),
		help:    help.New(),
		split:   split,
		gridMax: gridMax,
		width:   100,
		height:  30,
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.scroll.Frame()
	return m, cmd
}

func (m *boardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.split.Max = max(min(m.gridMax, m.width-dividerWidth-minTimelineWidth), m.split.Min)
		m.split.Nudge(0)
		m.clampScroll()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return nil
}

// ── layout ───────────────────────────────────────────────────────────────────

func (m *boardModel) bodyTop() int {
	return titleLines + headerLines
}

func (m *boardModel) visibleRows() int {
	return max(m.height-m.bodyTop()-footerLines, 1)
}

func (m *boardModel) timelineX() int {
	return m.split.Width + dividerWidth
}

func (m *boardModel) timelineWidth() int {
	return max(m.width-m.timelineX(), 0)
}

func (m *boardModel) clampScroll() {
	rows := len(m.board.Rows())
	if m.cursor >= rows {
		m.cursor = max(rows-1, 0)
	}
	m.scroll.ClampTop(rows, m.visibleRows())
	m.scroll.ClampLeft(formatter.CanvasFor(m.board).Width(), m.timelineWidth())
}

// ensureVisible scrolls the grid, and through the mirror the timeline, so
// the cursor row is on screen.
func (m *boardModel) ensureVisible() {
	top := m.scroll.Top(viewsync.PaneGrid)
	vis := m.visibleRows()
	switch {
	case m.cursor < top:
		top = m.cursor
	case m.cursor >= top+vis:
		top = m.cursor - vis + 1
	}
	m.scroll.OnVertical(viewsync.PaneGrid, top)
	m.clampScroll()
}

func (m *boardModel) selected() (selection, bool) {
	rows := m.board.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return selection{}, false
	}
	r := rows[m.cursor]
	return selection{id: r.Task.ID, name: r.Task.Name, hasChildren: r.HasChildren}, true
}

type selection struct {
	id          string
	name        string
	hasChildren bool
}

func (m *boardModel) selectID(id string) {
	for i, r := range m.board.Rows() {
		if r.Task.ID == id {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

func (m *boardModel) report(err error, ok string) {
	if err != nil {
		m.status, m.statusErr = describeError(err), true
		return
	}
	m.status, m.statusErr = ok, false
}

func describeError(err error) string {
	switch {
	case gateway.IsTransport(err):
		return "store unreachable: " + err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "not found: " + err.Error()
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	}
	return "error: " + err.Error()
}

// ── keyboard ─────────────────────────────────────────────────────────────────

func (m *boardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.pendingDelete != "" {
		id := m.pendingDelete
		m.pendingDelete = ""
		if msg.String() == "y" {
			m.report(m.board.DeleteTask(m.ctx, id), fmt.Sprintf("Task %s deleted successfully", id))
			m.clampScroll()
		} else {
			m.report(nil, "delete cancelled")
		}
		return nil
	}

	row, hasRow := m.selected()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible()
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.board.Rows())-1 {
			m.cursor++
		}
		m.ensureVisible()
	case key.Matches(msg, m.keys.Left):
		m.scroll.OnHorizontal(m.scroll.Left() - m.board.Geometry().DayWidth)
		m.clampScroll()
	case key.Matches(msg, m.keys.Right):
		m.scroll.OnHorizontal(m.scroll.Left() + m.board.Geometry().DayWidth)
		m.clampScroll()
	case key.Matches(msg, m.keys.Toggle):
		if hasRow && row.hasChildren {
			m.board.ToggleCollapse(row.id)
			m.clampScroll()
		}
	case key.Matches(msg, m.keys.AddChild):
		if hasRow {
			m.addTask(row.id)
		}
	case key.Matches(msg, m.keys.AddRoot):
		m.addTask("")
	case key.Matches(msg, m.keys.Delete):
		if hasRow {
			m.pendingDelete = row.id
			m.status, m.statusErr = fmt.Sprintf("Delete %q and its subtasks? (y/n)", row.name), false
		}
	case key.Matches(msg, m.keys.MoveEarlier):
		m.nudge(row, hasRow, drag.KindMove, -1)
	case key.Matches(msg, m.keys.MoveLater):
		m.nudge(row, hasRow, drag.KindMove, 1)
	case key.Matches(msg, m.keys.StartEarlier):
		m.nudge(row, hasRow, drag.KindResizeLeft, -1)
	case key.Matches(msg, m.keys.StartLater):
		m.nudge(row, hasRow, drag.KindResizeLeft, 1)
	case key.Matches(msg, m.keys.EndEarlier):
		m.nudge(row, hasRow, drag.KindResizeRight, -1)
	case key.Matches(msg, m.keys.EndLater):
		m.nudge(row, hasRow, drag.KindResizeRight, 1)
	case key.Matches(msg, m.keys.Mode):
		mode := m.board.CycleMode()
		m.scroll.OnHorizontal(0)
		m.clampScroll()
		m.report(nil, "view: "+string(mode))
	case key.Matches(msg, m.keys.Submit):
		if hasRow {
			m.report(m.board.SubmitTimesheet(m.ctx, row.id), "Timesheet submitted")
		}
	case key.Matches(msg, m.keys.Resubmit):
		if hasRow {
			m.report(m.board.ResubmitTimesheet(m.ctx, row.id), "Timesheet resubmitted")
		}
	case key.Matches(msg, m.keys.Narrow):
		m.split.Nudge(-splitStep)
		m.clampScroll()
	case key.Matches(msg, m.keys.Widen):
		m.split.Nudge(splitStep)
		m.clampScroll()
	case key.Matches(msg, m.keys.Reload):
		m.report(m.board.Load(m.ctx), "reloaded")
		m.clampScroll()
	case key.Matches(msg, m.keys.Cancel):
		if _, ok := m.board.Dragging(); ok {
			m.board.CancelDrag()
			m.report(nil, "drag cancelled")
		}
	}
	return nil
}

func (m *boardModel) addTask(parentID string) {
	t, err := m.board.AddTask(m.ctx, parentID)
	if err != nil {
		m.report(err, "")
		return
	}
	m.report(nil, "Task created successfully")
	if parentID != "" && m.board.IsCollapsed(parentID) {
		m.board.ToggleCollapse(parentID)
	}
	m.selectID(t.ID)
}

func (m *boardModel) nudge(row selection, ok bool, kind drag.Kind, delta int) {
	if !ok {
		return
	}
	err := m.board.Nudge(m.ctx, row.id, kind, delta)
	m.report(err, m.spanText(row.id))
}

func (m *boardModel) spanText(id string) string {
	t, ok := m.board.Task(id)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s: %s → %s", t.Name, formatter.ShortDate(t.StartDate), formatter.ShortDate(t.EndDate))
}

// ── mouse ────────────────────────────────────────────────────────────────────

func (m *boardModel) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.wheel(msg.X, -wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.wheel(msg.X, wheelStep)
	case msg.Button == tea.MouseButtonWheelLeft:
		m.scroll.OnHorizontal(m.scroll.Left() - wheelStep*m.board.Geometry().DayWidth)
		m.clampScroll()
	case msg.Button == tea.MouseButtonWheelRight:
		m.scroll.OnHorizontal(m.scroll.Left() + wheelStep*m.board.Geometry().DayWidth)
		m.clampScroll()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion:
		m.motion(msg.X)
	case msg.Action == tea.MouseActionRelease:
		m.release(msg.X)
	}
}

func (m *boardModel) paneAt(x int) viewsync.Pane {
	if x < m.split.Width {
		return viewsync.PaneGrid
	}
	return viewsync.PaneTimeline
}

// wheel scrolls the pane under the pointer; the other pane follows.
func (m *boardModel) wheel(x, delta int) {
	pane := m.paneAt(x)
	m.scroll.OnVertical(pane, m.scroll.Top(pane)+delta)
	m.clampScroll()
}

// rowAt maps screen row y to a visible row index of pane, or -1.
func (m *boardModel) rowAt(pane viewsync.Pane, y int) int {
	offset := y - m.bodyTop()
	if offset < 0 || offset >= m.visibleRows() {
		return -1
	}
	idx := m.scroll.Top(pane) + offset
	if idx >= len(m.board.Rows()) {
		return -1
	}
	return idx
}

// timelineOffset converts screen column x to a timeline canvas offset.
func (m *boardModel) timelineOffset(x int) int {
	return x - m.timelineX() + m.scroll.Left()
}

func (m *boardModel) press(x, y int) {
	if x == m.split.Width {
		m.split.BeginResize(x)
		return
	}
	pane := m.paneAt(x)
	idx := m.rowAt(pane, y)
	if idx < 0 {
		return
	}
	m.cursor = idx
	rows := m.board.Rows()

	if pane == viewsync.PaneGrid {
		// Column 0 is the row's drag handle.
		if x == 0 {
			m.report(m.board.BeginDrag(rows[idx].Task.ID, drag.KindGridToTimeline, x), "")
		}
		return
	}

	tx := m.timelineOffset(x)
	id, kind, ok := m.board.HitTest(idx, tx)
	if !ok {
		return
	}
	if err := m.board.BeginDrag(id, kind, tx); err != nil {
		m.report(err, "")
		return
	}
	m.report(nil, fmt.Sprintf("dragging %s (%s)", rows[idx].Task.Name, kind))
}

func (m *boardModel) motion(x int) {
	if m.split.Resizing() {
		m.split.ResizeTo(x)
		m.clampScroll()
		return
	}
	s, ok := m.board.Dragging()
	if !ok {
		return
	}
	if p, changed := m.board.DragTo(m.timelineOffset(x)); changed {
		m.report(nil, fmt.Sprintf("%s → %s (%+dd)", formatter.ShortDate(p.Start), formatter.ShortDate(p.End), p.Delta))
	} else if s.Kind == drag.KindGridToTimeline {
		m.report(nil, "drop on the timeline does not reschedule")
	}
}

func (m *boardModel) release(x int) {
	if m.split.Resizing() {
		m.split.EndResize()
		return
	}
	s, ok := m.board.Dragging()
	if !ok {
		return
	}
	committed, err := m.board.EndDrag(m.ctx, m.timelineOffset(x))
	switch {
	case err != nil:
		m.report(err, "")
	case committed:
		m.report(nil, m.spanText(s.TaskID))
	default:
		m.report(nil, "")
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m boardModel) View() string {
	var b strings.Builder
	gridW := m.split.Width
	tlW := m.timelineWidth()
	canvas := formatter.CanvasFor(m.board)
	rows := m.board.Rows()

	divider := styleDivider.Render("│")
	if m.split.Resizing() {
		divider = styleDividerHot.Render("┃")
	}

	title := fmt.Sprintf("planboard · project %s · %s · %d tasks", m.board.ProjectID(), m.board.Mode(), m.board.Len())
	b.WriteString(formatter.StyleHeader.Render(formatter.Cut(title, 0, m.width)))
	b.WriteString("\n")

	headers := canvas.HeaderLines(m.board.Headers(), m.scroll.HeaderLeft(), tlW)
	gridHeader := []string{"", "", gridCells("", "WBS", "NAME", "USED/EST", gridW)}
	for i := range headerLines {
		b.WriteString(formatter.StyleDim.Render(formatter.Cut(gridHeader[i], 0, gridW)))
		b.WriteString(divider)
		b.WriteString(headers[i])
		b.WriteString("\n")
	}

	gridTop := m.scroll.Top(viewsync.PaneGrid)
	tlTop := m.scroll.Top(viewsync.PaneTimeline)
	for i := range m.visibleRows() {
		b.WriteString(m.gridLine(rows, gridTop+i, gridW))
		b.WriteString(divider)
		b.WriteString(m.timelineLine(canvas, rows, tlTop+i, tlW))
		b.WriteString("\n")
	}

	status := m.status
	if m.statusErr {
		status = formatter.StyleRed.Render(status)
	} else {
		status = formatter.StyleDim.Render(status)
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m boardModel) gridLine(rows []wbs.Row, idx, width int) string {
	if idx >= len(rows) {
		return strings.Repeat(" ", width)
	}
	r := rows[idx]
	toggle := "  "
	if r.HasChildren {
		toggle = "▾ "
		if m.board.IsCollapsed(r.Task.ID) {
			toggle = "▸ "
		}
	}
	name := strings.Repeat("  ", r.Depth) + toggle + r.Task.Name
	hours := formatter.FormatHours(r.Task.UsedHours) + "/" + formatter.FormatHours(r.Task.EstHours)
	line := gridCells("⠿", r.WBS, name, hours, width)
	if idx == m.cursor {
		return styleSelectedRow.Render(line)
	}
	return formatter.StatusStyle(r.Task.Status).Render(line)
}

// gridCells lays one grid line out over gridColumns at the given total
// width. The name column absorbs any width above the minimum; hours are
// right-aligned.
func gridCells(handle, wbsCode, name, hours string, width int) string {
	nameW := max(width-(colHandle+colWBS+colHours+colGaps), colName)
	return formatter.Cut(handle, 0, colHandle) +
		formatter.Cut(wbsCode, 0, colWBS) +
		formatter.Cut(name, 0, nameW) +
		strings.Repeat(" ", colGaps) +
		fmt.Sprintf("%*s", colHours, formatter.Cut(hours, 0, min(len([]rune(hours)), colHours)))
}

func (m boardModel) timelineLine(canvas formatter.Canvas, rows []wbs.Row, idx, width int) string {
	if idx >= len(rows) {
		return canvas.Line(timeline.Bar{}, false, "", false, m.scroll.Left(), width)
	}
	t := rows[idx].Task
	bar, ok := m.board.Bar(t.ID)
	return canvas.Line(bar, ok, t.Status, idx == m.cursor, m.scroll.Left(), width)
}
