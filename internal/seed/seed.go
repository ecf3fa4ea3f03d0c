// Package seed loads the demo portfolio into an empty store. Dates are laid
// out relative to the day the store is seeded.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/service"
)

// DemoProjectID is the project the demo plan belongs to.
const DemoProjectID = "1"

// Run seeds projects, tasks and the demo plan unless the store already has
// projects. It reports whether anything was written.
func Run(ctx context.Context, uow db.UnitOfWork, projects repository.ProjectRepo, plan service.PlanService, now time.Time) (bool, error) {
	existing, err := projects.List(ctx)
	if err != nil {
		return false, fmt.Errorf("checking for existing projects: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	today := domain.CalendarDate(now)
	stamp := now.UTC()
	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projectRepo := repository.NewSQLiteProjectRepo(tx)
		for _, p := range Projects(today) {
			p.CreatedAt, p.UpdatedAt = stamp, stamp
			if err := projectRepo.Create(ctx, p); err != nil {
				return fmt.Errorf("seeding project %s: %w", p.Case, err)
			}
		}
		taskRepo := repository.NewSQLiteTaskRepo(tx)
		for _, t := range Tasks(today) {
			t.CreatedAt, t.UpdatedAt = stamp, stamp
			if err := taskRepo.Create(ctx, t); err != nil {
				return fmt.Errorf("seeding task %s: %w", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if err := plan.Import(ctx, DemoProjectID, Plan(today)); err != nil {
		return false, fmt.Errorf("seeding plan: %w", err)
	}
	return true, nil
}

func days(today time.Time, n int) time.Time {
	return today.AddDate(0, 0, n)
}

func Projects(today time.Time) []*domain.Project {
	p := func(id, name, caseCode string, status domain.Status, start, due, progress int, owner string) *domain.Project {
		return &domain.Project{
			ID: id, Name: name, Case: caseCode, Status: status,
			StartDate: days(today, start), DueDate: days(today, due),
			Progress: progress, Owner: owner,
		}
	}
	return []*domain.Project{
		p("1", "Solar Panel Installation", "SP-2024", domain.StatusInProgress, 0, 30, 45, "Alice"),
		p("2", "E-commerce Platform", "EP-2024", domain.StatusInProgress, -15, 60, 75, "Bob"),
		p("3", "Mobile App Redesign", "MAR-2023", domain.StatusDone, -90, -10, 100, "Charlie"),
		p("4", "Data Center Migration", "DCM-2024", domain.StatusBacklog, 10, 90, 10, "David"),
		p("5", "Marketing Campaign", "MC-2024", domain.StatusInProgress, -5, 15, 60, "Eve"),
		p("6", "New Office Setup", "NOS-2024", domain.StatusDone, -120, -60, 100, "Frank"),
	}
}

func Tasks(today time.Time) []*domain.Task {
	t := func(id, name, projectID string, status domain.Status, prio domain.Priority, who string, due int) *domain.Task {
		return &domain.Task{
			ID: id, Name: name, ProjectID: projectID, Status: status,
			Priority: prio, AssignedTo: who, DueDate: days(today, due),
		}
	}
	return []*domain.Task{
		t("task-1", "Finalize Solar Panel Design", "1", domain.StatusInProgress, domain.PriorityHigh, "Alice", 5),
		t("task-2", "Order Inverter Components", "1", domain.StatusBacklog, domain.PriorityMedium, "Bob, Charlie", 12),
		t("task-3", "Develop Checkout Flow", "2", domain.StatusInProgress, domain.PriorityHigh, "Grace", 8),
		t("task-4", "Design Product Pages", "2", domain.StatusDone, domain.PriorityMedium, "Heidi", -2),
		t("task-5", "User Persona Research", "3", domain.StatusDone, domain.PriorityLow, "Ivan", -40),
		t("task-6", "Plan Server Rack Layout", "4", domain.StatusBacklog, domain.PriorityHigh, "Judy", 20),
		t("task-7", "Launch Social Media Ads", "5", domain.StatusInProgress, domain.PriorityMedium, "Mallory", 10),
	}
}

// Plan is the demo WBS for project 1.
func Plan(today time.Time) []*domain.PlanTask {
	pt := func(id, name, desc string, who []string, prio domain.Priority, status domain.Status, start, end int, est, used float64, ts domain.TimesheetState, sub ...*domain.PlanTask) *domain.PlanTask {
		return &domain.PlanTask{
			ID: id, ProjectID: DemoProjectID, ProjectCase: "SP-2024",
			Name: name, Description: desc, Assignees: who,
			Priority: prio, Status: status,
			StartDate: days(today, start), EndDate: days(today, end),
			EstHours: est, UsedHours: used, TimesheetState: ts,
			SubTasks: sub,
		}
	}
	return []*domain.PlanTask{
		pt("gantt-1", "Project Kick-off", "Initial planning and setup phase.", []string{"Alice"},
			domain.PriorityHigh, domain.StatusDone, -10, -8, 24, 24, domain.TimesheetSubmitted),
		pt("gantt-2", "Design Phase", "Finalize all design mockups and specifications.", []string{"Bob", "Charlie"},
			domain.PriorityHigh, domain.StatusInProgress, -7, 5, 80, 30, domain.TimesheetDraft,
			pt("gantt-2.1", "Finalize Solar Panel Design", "Detailed electrical and structural design.", []string{"Alice"},
				domain.PriorityHigh, domain.StatusInProgress, -7, 1, 40, 10, domain.TimesheetDraft),
			pt("gantt-2.2", "Order Inverter Components", "Procurement of all necessary inverter parts.", []string{"Bob", "Charlie"},
				domain.PriorityMedium, domain.StatusBacklog, 2, 5, 16, 0, domain.TimesheetDraft),
		),
		pt("gantt-3", "Installation", "Physical installation of panels and components.", []string{"David", "Eve"},
			domain.PriorityMedium, domain.StatusBacklog, 6, 20, 120, 0, domain.TimesheetDraft),
	}
}
