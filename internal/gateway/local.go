package gateway

import (
	"context"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/service"
)

type localGateway struct {
	plan service.PlanService
}

// NewLocal returns a gateway backed by an in-process plan service.
func NewLocal(plan service.PlanService) TaskGateway {
	return &localGateway{plan: plan}
}

func (g *localGateway) Tree(ctx context.Context, projectID string) ([]*domain.PlanTask, error) {
	roots, err := g.plan.Tree(ctx, projectID)
	return roots, wrap("tree", "", 0, err)
}

func (g *localGateway) Create(ctx context.Context, req CreateRequest) (*domain.PlanTask, error) {
	created, err := g.plan.Create(ctx, service.CreatePlanTask{
		ParentID:  req.ParentID,
		ProjectID: req.ProjectID,
		Task:      req.Task,
	})
	if err != nil {
		return nil, wrap("create", "", 0, err)
	}
	return created, nil
}

func (g *localGateway) Update(ctx context.Context, id string, patch domain.PlanTaskPatch) (*domain.PlanTask, error) {
	updated, err := g.plan.Update(ctx, id, patch)
	if err != nil {
		return nil, wrap("update", id, 0, err)
	}
	return updated, nil
}

func (g *localGateway) Delete(ctx context.Context, id string) error {
	_, err := g.plan.Delete(ctx, id)
	return wrap("delete", id, 0, err)
}

func (g *localGateway) SetTimesheetState(ctx context.Context, id string, state domain.TimesheetState) (*domain.PlanTask, error) {
	t, err := g.plan.SetTimesheetState(ctx, id, state)
	if err != nil {
		return nil, wrap("timesheet", id, 0, err)
	}
	return t, nil
}
