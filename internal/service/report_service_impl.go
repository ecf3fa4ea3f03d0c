package service

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
)

// overdueLimit caps the overdue list in the summary report.
const overdueLimit = 5

type reportService struct {
	projects  repository.ProjectRepo
	tasks     repository.TaskRepo
	planTasks repository.PlanTaskRepo
}

func NewReportService(projects repository.ProjectRepo, tasks repository.TaskRepo, planTasks repository.PlanTaskRepo) ReportService {
	return &reportService{projects: projects, tasks: tasks, planTasks: planTasks}
}

// Summary compares estimated and used hours per project and lists the most
// overdue open tasks.
//
// Hours come from root plan tasks whose project case matches the project;
// subtask hours are not rolled up. Projects with no hours are omitted.
func (s *reportService) Summary(ctx context.Context, now time.Time) (*contract.ReportSummary, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	roots, err := s.planTasks.ListRoots(ctx)
	if err != nil {
		return nil, err
	}

	est := map[string]float64{}
	used := map[string]float64{}
	for _, r := range roots {
		est[r.ProjectCase] += r.EstHours
		used[r.ProjectCase] += r.UsedHours
	}

	summary := &contract.ReportSummary{
		TimeAnalysis: []contract.TimeAnalysisRow{},
		OverdueTasks: []contract.OverdueTask{},
	}
	for _, p := range projects {
		row := contract.TimeAnalysisRow{Name: p.Name, Est: est[p.Case], Used: used[p.Case]}
		if row.Est > 0 || row.Used > 0 {
			summary.TimeAnalysis = append(summary.TimeAnalysis, row)
		}
	}

	open, err := s.tasks.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range open {
		if !t.IsOverdue(now) {
			continue
		}
		project := t.ProjectName
		if project == repository.UnknownProjectName {
			project = "Unknown"
		}
		summary.OverdueTasks = append(summary.OverdueTasks, contract.OverdueTask{
			ID:      t.ID,
			Name:    t.Name,
			Project: project,
			Days:    -t.DaysUntilDue(now),
		})
	}
	sort.SliceStable(summary.OverdueTasks, func(i, j int) bool {
		return summary.OverdueTasks[i].Days > summary.OverdueTasks[j].Days
	})
	if len(summary.OverdueTasks) > overdueLimit {
		summary.OverdueTasks = summary.OverdueTasks[:overdueLimit]
	}
	return summary, nil
}

// overdueSince reports whether t is open and became due within window days
// before now.
func overdueSince(t *domain.Task, now time.Time, window int) bool {
	if !t.IsOverdue(now) {
		return false
	}
	return -t.DaysUntilDue(now) <= window
}
