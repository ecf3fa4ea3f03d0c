package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/alexanderramin/planboard/internal/wbs"
)

// PlanHeaders are the grid columns after the drag handle.
var PlanHeaders = []string{"WBS", "NAME", "ASSIGNEES", "STATUS", "PRIO", "START", "END", "EST", "USED", "LEFT", "TIMESHEET"}

// PlanCells returns the grid cells of one row, name indented by depth.
// Collapsed parents get ▸, expanded ones ▾.
func PlanCells(r wbs.Row, collapsed bool) []string {
	t := r.Task
	toggle := "  "
	if r.HasChildren {
		toggle = "▾ "
		if collapsed {
			toggle = "▸ "
		}
	}
	return []string{
		StyleDim.Render(r.WBS),
		strings.Repeat("  ", r.Depth) + toggle + t.Name,
		strings.Join(t.Assignees, ", "),
		StatusPill(t.Status),
		PriorityBadge(t.Priority),
		ShortDate(t.StartDate),
		ShortDate(t.EndDate),
		FormatHours(t.EstHours),
		FormatHours(t.UsedHours),
		FormatHours(t.RemainingHours()),
		TimesheetBadge(t.TimesheetState),
	}
}

// FormatPlan renders rows as a table.
func FormatPlan(rows []wbs.Row, isCollapsed func(id string) bool) string {
	if len(rows) == 0 {
		return Dim("No plan tasks.") + "\n"
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, PlanCells(r, isCollapsed(r.Task.ID)))
	}
	return RenderTable(PlanHeaders, cells)
}

// FormatPlanTree renders rows as an indented tree.
func FormatPlanTree(rows []wbs.Row) string {
	return RenderTree(TreeItems(rows))
}

// FormatTaskDetail renders every field of a plan task in a box.
func FormatTaskDetail(t *domain.PlanTask) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-12s", label)), value)
	}
	line("WBS", t.WBS)
	line("Case", t.ProjectCase)
	line("Status", StatusPill(t.Status))
	line("Priority", PriorityBadge(t.Priority))
	line("Assignees", strings.Join(t.Assignees, ", "))
	line("Dates", fmt.Sprintf("%s → %s (%dd, %d working)", t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"),
		t.DurationDays(), timeline.WorkingDays(t.StartDate, t.EndDate)))
	line("Hours", RenderHours(t.EstHours, t.UsedHours, 16))
	line("Timesheet", TimesheetBadge(t.TimesheetState))
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}
	return RenderBox(t.Name, strings.TrimRight(b.String(), "\n"))
}
