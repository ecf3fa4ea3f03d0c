package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/wbs"
)

// DefaultProjectID receives root tasks created without a project.
const DefaultProjectID = "1"

type planService struct {
	tasks    repository.PlanTaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewPlanService(tasks repository.PlanTaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *planService) Tree(ctx context.Context, projectID string) ([]*domain.PlanTask, error) {
	return s.tree(ctx, s.tasks, projectID)
}

func (s *planService) tree(ctx context.Context, repo repository.PlanTaskRepo, projectID string) ([]*domain.PlanTask, error) {
	flat, err := repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return wbs.FromTasks(nest(flat)).Nested(), nil
}

// nest links flat rows into a forest. Rows must be sorted by order_index;
// a row whose parent is missing is treated as a root.
func nest(flat []*domain.PlanTask) []*domain.PlanTask {
	byID := make(map[string]*domain.PlanTask, len(flat))
	for _, t := range flat {
		t.SubTasks = nil
		byID[t.ID] = t
	}
	var roots []*domain.PlanTask
	for _, t := range flat {
		if t.ParentID != nil {
			if p, ok := byID[*t.ParentID]; ok {
				p.SubTasks = append(p.SubTasks, t)
				continue
			}
		}
		roots = append(roots, t)
	}
	return roots
}

func (s *planService) Get(ctx context.Context, id string) (*domain.PlanTask, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withWBS(ctx, s.tasks, t)
}

// withWBS fills t.WBS from its current position in the project tree.
func (s *planService) withWBS(ctx context.Context, repo repository.PlanTaskRepo, t *domain.PlanTask) (*domain.PlanTask, error) {
	flat, err := repo.ListByProject(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	t.WBS = wbs.FromTasks(nest(flat)).ComputeWBS()[t.ID]
	return t, nil
}

func (s *planService) Create(ctx context.Context, req CreatePlanTask) (created *domain.PlanTask, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "create-plan-task", fields)
	defer func() { done(err) }()

	if req.Task == nil {
		return nil, &domain.ValidationError{Field: "task", Reason: "is required"}
	}
	task := req.Task.Clone()
	task.SubTasks = nil
	task.Assignees = domain.NormalizeAssignees(task.Assignees)
	task.StartDate = domain.CalendarDate(task.StartDate)
	task.EndDate = domain.CalendarDate(task.EndDate)
	task.TimesheetState = domain.TimesheetDraft
	if err = task.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanTaskRepo(tx)
		var err error

		task.ParentID = nil
		task.ProjectID = req.ProjectID
		if req.ParentID != nil && *req.ParentID != "" {
			parent, perr := repo.GetByID(ctx, *req.ParentID)
			if perr != nil {
				return fmt.Errorf("parent %s: %w", *req.ParentID, perr)
			}
			pid := parent.ID
			task.ParentID = &pid
			task.ProjectID = parent.ProjectID
			if task.ProjectCase == "" {
				task.ProjectCase = parent.ProjectCase
			}
		}
		if task.ProjectID == "" {
			task.ProjectID = DefaultProjectID
		}

		if task.ID, err = s.allocateID(ctx, repo); err != nil {
			return err
		}
		if task.OrderIndex, err = repo.NextOrderIndex(ctx, task.ProjectID, task.ParentID); err != nil {
			return err
		}
		now := s.now().UTC()
		task.CreatedAt = now
		task.UpdatedAt = now
		if err := repo.Create(ctx, task); err != nil {
			return err
		}
		created, err = s.withWBS(ctx, repo, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["task_id"] = created.ID
	fields["project_id"] = created.ProjectID
	return created, nil
}

// allocateID returns gantt-<unix millis>, bumping the number until it is
// unused so two creates in the same millisecond still get distinct ids.
func (s *planService) allocateID(ctx context.Context, repo repository.PlanTaskRepo) (string, error) {
	ms := s.now().UnixMilli()
	for {
		id := "gantt-" + strconv.FormatInt(ms, 10)
		taken, err := repo.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
		ms++
	}
}

func (s *planService) Update(ctx context.Context, id string, patch domain.PlanTaskPatch) (updated *domain.PlanTask, err error) {
	done := track(ctx, s.observer, "update-plan-task", map[string]any{"task_id": id})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanTaskRepo(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.Apply(patch)
		if err := t.Validate(); err != nil {
			return err
		}
		t.UpdatedAt = s.now().UTC()
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		updated, err = s.withWBS(ctx, repo, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *planService) Delete(ctx context.Context, id string) (removed int, err error) {
	fields := map[string]any{"task_id": id}
	done := track(ctx, s.observer, "delete-plan-task", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanTaskRepo(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		flat, err := repo.ListByProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		removed = wbs.FromTasks(nest(flat)).DeleteSubtree(id)
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}
	fields["removed"] = removed
	return removed, nil
}

func (s *planService) SetTimesheetState(ctx context.Context, id string, state domain.TimesheetState) (*domain.PlanTask, error) {
	if !domain.ValidTimesheetStates[state] {
		return nil, &domain.ValidationError{Field: "timesheetState", Reason: "must be one of draft, submitted, resubmitted"}
	}
	return s.Update(ctx, id, domain.PlanTaskPatch{TimesheetState: &state})
}

func (s *planService) Import(ctx context.Context, projectID string, roots []*domain.PlanTask) (err error) {
	fields := map[string]any{"project_id": projectID}
	done := track(ctx, s.observer, "import-plan", fields)
	defer func() { done(err) }()

	count := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanTaskRepo(tx)
		base, err := repo.NextOrderIndex(ctx, projectID, nil)
		if err != nil {
			return err
		}
		var insert func(parentID *string, tasks []*domain.PlanTask, offset int) error
		insert = func(parentID *string, tasks []*domain.PlanTask, offset int) error {
			for i, src := range tasks {
				t := src.Clone()
				t.SubTasks = nil
				t.ProjectID = projectID
				t.ParentID = parentID
				t.OrderIndex = offset + i
				t.Assignees = domain.NormalizeAssignees(t.Assignees)
				if t.TimesheetState == "" {
					t.TimesheetState = domain.TimesheetDraft
				}
				if t.ID == "" {
					return &domain.ValidationError{Field: "id", Reason: "is required for import"}
				}
				if err := t.Validate(); err != nil {
					return fmt.Errorf("task %s: %w", t.ID, err)
				}
				now := s.now().UTC()
				t.CreatedAt, t.UpdatedAt = now, now
				if err := repo.Create(ctx, t); err != nil {
					return err
				}
				count++
				id := t.ID
				if err := insert(&id, src.SubTasks, 0); err != nil {
					return err
				}
			}
			return nil
		}
		return insert(nil, roots, base)
	})
	fields["task_count"] = count
	return err
}
