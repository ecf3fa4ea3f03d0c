package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/contract"
)

// FormatReport renders the time analysis and the overdue list.
func FormatReport(s *contract.ReportSummary) string {
	var b strings.Builder
	b.WriteString(Header("Time analysis") + "\n")
	if len(s.TimeAnalysis) == 0 {
		b.WriteString(Dim("No hours recorded.") + "\n")
	} else {
		rows := make([][]string, 0, len(s.TimeAnalysis))
		for _, r := range s.TimeAnalysis {
			rows = append(rows, []string{r.Name, FormatHours(r.Est), FormatHours(r.Used), RenderHours(r.Est, r.Used, 20)})
		}
		b.WriteString(RenderTable([]string{"PROJECT", "EST", "USED", ""}, rows))
	}

	b.WriteString("\n" + Header("Overdue tasks") + "\n")
	if len(s.OverdueTasks) == 0 {
		b.WriteString(StyleGreen.Render("Nothing overdue.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(s.OverdueTasks))
	for _, o := range s.OverdueTasks {
		rows = append(rows, []string{o.Name, o.Project, StyleRed.Render(fmt.Sprintf("%dd", o.Days))})
	}
	b.WriteString(RenderTable([]string{"TASK", "PROJECT", "OVERDUE"}, rows))
	return b.String()
}

// FormatDashboard renders headline stats, recent projects and upcoming
// deadlines.
func FormatDashboard(stats *contract.DashboardStats, recent []contract.RecentProject, upcoming []contract.UpcomingDeadline) string {
	var b strings.Builder
	stat := func(label string, c contract.StatCount) []string {
		return []string{label, Bold(fmt.Sprint(c.Value)), Change(c.Change)}
	}
	b.WriteString(RenderTable([]string{"", "TOTAL", "7D"}, [][]string{
		stat("Projects", stats.TotalProjects),
		stat("Pending tasks", stats.PendingTasks),
		stat("Completed tasks", stats.CompletedTasks),
		stat("Overdue tasks", stats.OverdueTasks),
	}))

	b.WriteString("\n" + Header("Recent projects") + "\n")
	rows := make([][]string, 0, len(recent))
	for _, p := range recent {
		rows = append(rows, []string{StylePurple.Render(p.Case), p.Name, p.Status, p.DueDate.String(), RenderProgress(float64(p.Progress)/100, 10)})
	}
	b.WriteString(RenderTable([]string{"CASE", "NAME", "STATUS", "DUE", "PROGRESS"}, rows))

	b.WriteString("\n" + Header("Upcoming deadlines") + "\n")
	if len(upcoming) == 0 {
		b.WriteString(Dim("Nothing due soon.") + "\n")
		return b.String()
	}
	rows = rows[:0]
	for _, u := range upcoming {
		left := fmt.Sprintf("%dd", u.DaysLeft)
		if u.DaysLeft <= 2 {
			left = StyleRed.Render(left)
		}
		rows = append(rows, []string{u.TaskName, u.ProjectName, u.DueDate.String(), left})
	}
	b.WriteString(RenderTable([]string{"TASK", "PROJECT", "DUE", "LEFT"}, rows))
	return b.String()
}
