package contract

// TimeAnalysisRow is estimated vs used hours for one project.
type TimeAnalysisRow struct {
	Name string  `json:"name"`
	Est  float64 `json:"est"`
	Used float64 `json:"used"`
}

type OverdueTask struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Project string `json:"project"`
	Days    int    `json:"days"`
}

type ReportSummary struct {
	TimeAnalysis []TimeAnalysisRow `json:"timeAnalysis"`
	OverdueTasks []OverdueTask     `json:"overdueTasks"`
}

// StatCount is a headline number with its change over the last week.
type StatCount struct {
	Value  int `json:"value"`
	Change int `json:"change"`
}

type DashboardStats struct {
	TotalProjects  StatCount `json:"totalProjects"`
	PendingTasks   StatCount `json:"pendingTasks"`
	CompletedTasks StatCount `json:"completedTasks"`
	OverdueTasks   StatCount `json:"overdueTasks"`
}

type RecentProject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Case     string `json:"case"`
	Status   string `json:"status"`
	DueDate  Date   `json:"dueDate"`
	Progress int    `json:"progress"`
}

type UpcomingDeadline struct {
	ID          string `json:"id"`
	TaskName    string `json:"taskName"`
	ProjectName string `json:"projectName"`
	DueDate     Date   `json:"dueDate"`
	DaysLeft    int    `json:"daysLeft"`
}

type Health struct {
	Success bool   `json:"success"`
	Version string `json:"version,omitempty"`
}
