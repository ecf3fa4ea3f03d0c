// Package gateway is the single path by which the board reads and mutates
// plan tasks. The local adapter calls the plan service in-process; the HTTP
// adapter talks to a running planboard server.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/domain"
)

// CreateRequest asks for a new task under ParentID, or at the root of
// ProjectID when ParentID is nil.
type CreateRequest struct {
	ParentID  *string
	ProjectID string
	Task      *domain.PlanTask
}

// TaskGateway persists plan task mutations. Every method fires exactly once;
// failures come back as *domain.GatewayError wrapping one of
// domain.ErrNotFound, domain.ErrValidation or domain.ErrTransport.
type TaskGateway interface {
	Tree(ctx context.Context, projectID string) ([]*domain.PlanTask, error)
	Create(ctx context.Context, req CreateRequest) (*domain.PlanTask, error)
	Update(ctx context.Context, id string, patch domain.PlanTaskPatch) (*domain.PlanTask, error)
	Delete(ctx context.Context, id string) error
	SetTimesheetState(ctx context.Context, id string, state domain.TimesheetState) (*domain.PlanTask, error)
}

// wrap classifies err for op. Errors that are neither not-found nor
// validation failures are reported as transport failures.
func wrap(op, taskID string, status int, err error) error {
	if err == nil {
		return nil
	}
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		return err
	}
	if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrTransport) {
		err = fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	return &domain.GatewayError{Op: op, TaskID: taskID, Status: status, Err: err}
}
