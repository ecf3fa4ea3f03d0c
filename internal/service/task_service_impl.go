package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, observers ...UseCaseObserver) TaskService {
	return &taskService{tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) (err error) {
	done := track(ctx, s.observer, "create-task", map[string]any{"project_id": t.ProjectID})
	defer func() { done(err) }()

	if strings.TrimSpace(t.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if t.ProjectID == "" {
		return &domain.ValidationError{Field: "projectId", Reason: "is required"}
	}
	if t.DueDate.IsZero() {
		return &domain.ValidationError{Field: "dueDate", Reason: "is required"}
	}
	if t.ID == "" {
		t.ID = "task-" + uuid.NewString()[:8]
	}
	if t.Status == "" {
		t.Status = domain.StatusBacklog
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	t.DueDate = domain.CalendarDate(t.DueDate)
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) List(ctx context.Context) ([]repository.TaskWithProject, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	if !domain.ValidStatuses[status] {
		return nil, &domain.ValidationError{Field: "status", Reason: "must be one of Backlog, In Progress, Done"}
	}
	if err := s.tasks.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}
