package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Create assigns an id and resets progress; new projects start at zero.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	done := track(ctx, s.observer, "create-project", map[string]any{"case": p.Case})
	defer func() { done(err) }()

	if p.ID == "" {
		p.ID = "proj-" + uuid.NewString()[:8]
	}
	if p.Status == "" {
		p.Status = domain.StatusBacklog
	}
	p.Progress = 0
	p.StartDate = domain.CalendarDate(p.StartDate)
	if p.StartDate.IsZero() {
		p.StartDate = domain.CalendarDate(time.Now())
	}
	if !p.DueDate.IsZero() {
		p.DueDate = domain.CalendarDate(p.DueDate)
	}
	if err = p.Validate(); err != nil {
		return err
	}
	if _, lookupErr := s.projects.GetByCase(ctx, p.Case); lookupErr == nil {
		return &domain.ValidationError{Field: "case", Reason: p.Case + " is already in use"}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

// GetByID accepts either the project id or its case code.
func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if byCase, caseErr := s.projects.GetByCase(ctx, id); caseErr == nil {
		return byCase, nil
	}
	return nil, err
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Project, error) {
	if !domain.ValidStatuses[status] {
		return nil, &domain.ValidationError{Field: "status", Reason: "must be one of Backlog, In Progress, Done"}
	}
	if err := s.projects.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

// Delete removes the project with its tasks and plan in one transaction.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	done := track(ctx, s.observer, "delete-project", map[string]any{"project_id": id})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		if _, err := repository.NewSQLiteTaskRepo(tx).DeleteByProject(ctx, id); err != nil {
			return err
		}
		_, err := repository.NewSQLitePlanTaskRepo(tx).DeleteByProject(ctx, id)
		return err
	})
}
