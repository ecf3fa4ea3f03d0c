package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
)

// changeWindowDays is the look-back for the "change" figure of each stat.
const changeWindowDays = 7

type dashboardService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
}

func NewDashboardService(projects repository.ProjectRepo, tasks repository.TaskRepo) DashboardService {
	return &dashboardService{projects: projects, tasks: tasks}
}

// Stats counts projects and tasks. Each change value is how many of the
// counted items entered that bucket during the last week: created for
// totals and pending, updated for completed, fell due for overdue.
func (s *dashboardService) Stats(ctx context.Context, now time.Time) (*contract.DashboardStats, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	since := now.AddDate(0, 0, -changeWindowDays)
	var stats contract.DashboardStats
	for _, p := range projects {
		stats.TotalProjects.Value++
		if p.CreatedAt.After(since) {
			stats.TotalProjects.Change++
		}
	}
	for _, t := range tasks {
		if t.Status == domain.StatusDone {
			stats.CompletedTasks.Value++
			if t.UpdatedAt.After(since) {
				stats.CompletedTasks.Change++
			}
			continue
		}
		stats.PendingTasks.Value++
		if t.CreatedAt.After(since) {
			stats.PendingTasks.Change++
		}
		if t.IsOverdue(now) {
			stats.OverdueTasks.Value++
			if overdueSince(&t.Task, now, changeWindowDays) {
				stats.OverdueTasks.Change++
			}
		}
	}
	return &stats, nil
}

func (s *dashboardService) RecentProjects(ctx context.Context, limit int) ([]contract.RecentProject, error) {
	projects, err := s.projects.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]contract.RecentProject, 0, len(projects))
	for _, p := range projects {
		out = append(out, contract.RecentProject{
			ID:       p.ID,
			Name:     p.Name,
			Case:     p.Case,
			Status:   string(p.Status),
			DueDate:  contract.NewDate(p.DueDate),
			Progress: p.Progress,
		})
	}
	return out, nil
}

// UpcomingDeadlines lists open tasks due between today and days from now,
// soonest first.
func (s *dashboardService) UpcomingDeadlines(ctx context.Context, now time.Time, days int) ([]contract.UpcomingDeadline, error) {
	open, err := s.tasks.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	out := []contract.UpcomingDeadline{}
	for _, t := range open {
		left := t.DaysUntilDue(now)
		if left < 0 || left > days {
			continue
		}
		out = append(out, contract.UpcomingDeadline{
			ID:          t.ID,
			TaskName:    t.Name,
			ProjectName: t.ProjectName,
			DueDate:     contract.NewDate(t.DueDate),
			DaysLeft:    left,
		})
	}
	return out, nil
}
