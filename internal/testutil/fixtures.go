package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/google/uuid"
)

var testCaseCounter atomic.Int64

// Date returns local midnight of the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ID = id
	}
}

func WithCase(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Case = c
	}
}

func WithProjectStatus(s domain.Status) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectDates(start, due time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.DueDate = due
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	today := domain.CalendarDate(time.Now())
	p := &domain.Project{
		ID:        "proj-" + uuid.NewString()[:8],
		Case:      fmt.Sprintf("TST-%04d", testCaseCounter.Add(1)),
		Name:      name,
		Status:    domain.StatusBacklog,
		StartDate: today.AddDate(0, -1, 0),
		DueDate:   today.AddDate(0, 2, 0),
		Owner:     "Tester",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.Status) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = d
	}
}

func NewTestTask(name, projectID string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:         uuid.NewString(),
		Name:       name,
		ProjectID:  projectID,
		Status:     domain.StatusBacklog,
		Priority:   domain.PriorityMedium,
		AssignedTo: "Tester",
		DueDate:    domain.CalendarDate(time.Now()).AddDate(0, 0, 7),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PlanTask options
type PlanTaskOption func(*domain.PlanTask)

func WithParent(id string) PlanTaskOption {
	return func(t *domain.PlanTask) {
		t.ParentID = &id
	}
}

func WithOrder(i int) PlanTaskOption {
	return func(t *domain.PlanTask) {
		t.OrderIndex = i
	}
}

func WithSpan(start, end time.Time) PlanTaskOption {
	return func(t *domain.PlanTask) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithHours(est, used float64) PlanTaskOption {
	return func(t *domain.PlanTask) {
		t.EstHours = est
		t.UsedHours = used
	}
}

func WithProjectCase(c string) PlanTaskOption {
	return func(t *domain.PlanTask) {
		t.ProjectCase = c
	}
}

func WithTimesheet(s domain.TimesheetState) PlanTaskOption {
	return func(t *domain.PlanTask) {
		t.TimesheetState = s
	}
}

func WithChildren(children ...*domain.PlanTask) PlanTaskOption {
	return func(t *domain.PlanTask) {
		t.SubTasks = append(t.SubTasks, children...)
	}
}

// NewTestPlanTask builds a plan task whose id equals its name, which keeps
// tree assertions readable.
func NewTestPlanTask(id, projectID string, opts ...PlanTaskOption) *domain.PlanTask {
	now := time.Now().UTC()
	t := &domain.PlanTask{
		ID:             id,
		ProjectID:      projectID,
		ProjectCase:    "SP-2024",
		Name:           id,
		Description:    "test task " + id,
		Assignees:      []string{"Tester"},
		Priority:       domain.PriorityMedium,
		Status:         domain.StatusBacklog,
		StartDate:      Date(2024, time.January, 10),
		EndDate:        Date(2024, time.January, 12),
		EstHours:       8,
		TimesheetState: domain.TimesheetDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
