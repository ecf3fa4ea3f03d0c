package repository

import (
	"context"

	"github.com/alexanderramin/planboard/internal/domain"
)

// TaskWithProject is a task joined with its project's name for list views.
type TaskWithProject struct {
	domain.Task
	ProjectName string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByCase(ctx context.Context, caseCode string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Project, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]TaskWithProject, error)
	ListOpen(ctx context.Context) ([]TaskWithProject, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}

type PlanTaskRepo interface {
	Create(ctx context.Context, t *domain.PlanTask) error
	GetByID(ctx context.Context, id string) (*domain.PlanTask, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.PlanTask, error)
	ListRoots(ctx context.Context) ([]*domain.PlanTask, error)
	NextOrderIndex(ctx context.Context, projectID string, parentID *string) (int, error)
	Update(ctx context.Context, t *domain.PlanTask) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
