package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// Convert turns a validated plan file into nested roots ready for
// PlanService.Import. Call ValidatePlanFile first.
func Convert(pf *PlanFile) ([]*domain.PlanTask, error) {
	byRef := make(map[string]*domain.PlanTask, len(pf.Tasks))
	var roots []*domain.PlanTask

	for _, ti := range pf.Tasks {
		t, err := convertTask(pf.ProjectCase, ti)
		if err != nil {
			return nil, err
		}
		byRef[ti.Ref] = t
		if ti.ParentRef == nil {
			roots = append(roots, t)
			continue
		}
		parent, ok := byRef[*ti.ParentRef]
		if !ok {
			return nil, fmt.Errorf("task %s: unknown parent_ref %q", ti.Ref, *ti.ParentRef)
		}
		parent.SubTasks = append(parent.SubTasks, t)
	}
	return roots, nil
}

func convertTask(projectCase string, ti TaskImport) (*domain.PlanTask, error) {
	start, err := time.Parse(dateLayout, ti.StartDate)
	if err != nil {
		return nil, fmt.Errorf("task %s: parsing start_date: %w", ti.Ref, err)
	}
	end, err := time.Parse(dateLayout, ti.EndDate)
	if err != nil {
		return nil, fmt.Errorf("task %s: parsing end_date: %w", ti.Ref, err)
	}

	t := &domain.PlanTask{
		ID:             ti.Ref,
		ProjectCase:    projectCase,
		Name:           ti.Name,
		Description:    ti.Description,
		Assignees:      domain.NormalizeAssignees(ti.Assignees),
		Priority:       domain.PriorityMedium,
		Status:         domain.StatusBacklog,
		StartDate:      start,
		EndDate:        end,
		EstHours:       hours(ti.EstHours),
		UsedHours:      hours(ti.UsedHours),
		TimesheetState: domain.TimesheetDraft,
	}
	if ti.Priority != "" {
		if t.Priority, err = domain.ParsePriority(ti.Priority); err != nil {
			return nil, fmt.Errorf("task %s: %w", ti.Ref, err)
		}
	}
	if ti.Status != "" {
		if t.Status, err = domain.ParseStatus(ti.Status); err != nil {
			return nil, fmt.Errorf("task %s: %w", ti.Ref, err)
		}
	}
	if ti.TimesheetState != "" {
		if t.TimesheetState, err = domain.ParseTimesheetState(ti.TimesheetState); err != nil {
			return nil, fmt.Errorf("task %s: %w", ti.Ref, err)
		}
	}
	return t, nil
}

// Export flattens a plan tree into a plan file, parents before children.
func Export(roots []*domain.PlanTask) *PlanFile {
	pf := &PlanFile{Tasks: []TaskImport{}}
	var walk func(parent *string, tasks []*domain.PlanTask)
	walk = func(parent *string, tasks []*domain.PlanTask) {
		for _, t := range tasks {
			if pf.ProjectCase == "" {
				pf.ProjectCase = t.ProjectCase
			}
			est, used := t.EstHours, t.UsedHours
			pf.Tasks = append(pf.Tasks, TaskImport{
				Ref:            t.ID,
				ParentRef:      parent,
				Name:           t.Name,
				Description:    t.Description,
				Assignees:      t.Assignees,
				Priority:       string(t.Priority),
				Status:         string(t.Status),
				StartDate:      t.StartDate.Format(dateLayout),
				EndDate:        t.EndDate.Format(dateLayout),
				EstHours:       &est,
				UsedHours:      &used,
				TimesheetState: string(t.TimesheetState),
			})
			id := t.ID
			walk(&id, t.SubTasks)
		}
	}
	walk(nil, roots)
	return pf
}

func hours(h *float64) float64 {
	if h == nil {
		return 0
	}
	return *h
}
