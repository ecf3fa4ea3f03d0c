package formatter

import (
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
)

// FormatProjectList renders projects with a progress bar each.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects found.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		due := "--"
		if !p.DueDate.IsZero() {
			due = DueStyled(p.DueDate, now)
			if p.Status == domain.StatusDone {
				due = Dim(ShortDate(p.DueDate))
			}
		}
		rows = append(rows, []string{
			StylePurple.Render(p.DisplayID()),
			p.Name,
			StatusPill(p.Status),
			p.Owner,
			ShortDate(p.StartDate),
			due,
			RenderProgress(float64(p.Progress)/100, 10),
		})
	}
	return RenderTable([]string{"CASE", "NAME", "STATUS", "OWNER", "START", "DUE", "PROGRESS"}, rows)
}

// FormatTaskList renders the flat task list.
func FormatTaskList(tasks []repository.TaskWithProject, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks found.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := DueStyled(t.DueDate, now)
		if t.Status == domain.StatusDone {
			due = Dim(ShortDate(t.DueDate))
		}
		rows = append(rows, []string{
			Dim(t.ID),
			t.Name,
			t.ProjectName,
			StatusPill(t.Status),
			PriorityBadge(t.Priority),
			t.AssignedTo,
			due,
		})
	}
	return RenderTable([]string{"ID", "NAME", "PROJECT", "STATUS", "PRIO", "ASSIGNED", "DUE"}, rows)
}
