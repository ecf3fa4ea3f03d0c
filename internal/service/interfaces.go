package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	List(ctx context.Context) ([]repository.TaskWithProject, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error)
}

// CreatePlanTask places a new task under ParentID, or at the end of the
// roots of ProjectID when ParentID is nil.
type CreatePlanTask struct {
	ParentID  *string
	ProjectID string
	Task      *domain.PlanTask
}

type PlanService interface {
	// Tree returns the project's roots with nested subtasks and WBS numbers.
	Tree(ctx context.Context, projectID string) ([]*domain.PlanTask, error)
	Get(ctx context.Context, id string) (*domain.PlanTask, error)
	Create(ctx context.Context, req CreatePlanTask) (*domain.PlanTask, error)
	Update(ctx context.Context, id string, patch domain.PlanTaskPatch) (*domain.PlanTask, error)
	// Delete removes the task and its subtree and reports how many tasks
	// were removed.
	Delete(ctx context.Context, id string) (int, error)
	SetTimesheetState(ctx context.Context, id string, state domain.TimesheetState) (*domain.PlanTask, error)
	// Import stores a nested tree with its ids as given.
	Import(ctx context.Context, projectID string, roots []*domain.PlanTask) error
}

type ReportService interface {
	Summary(ctx context.Context, now time.Time) (*contract.ReportSummary, error)
}

type DashboardService interface {
	Stats(ctx context.Context, now time.Time) (*contract.DashboardStats, error)
	RecentProjects(ctx context.Context, limit int) ([]contract.RecentProject, error)
	UpcomingDeadlines(ctx context.Context, now time.Time, days int) ([]contract.UpcomingDeadline, error)
}
