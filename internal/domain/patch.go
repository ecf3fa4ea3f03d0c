package domain

import "time"

// PlanTaskPatch is a partial update of a plan task. Nil fields are left
// untouched. ID, WBS and tree position cannot be patched.
type PlanTaskPatch struct {
	ProjectCase    *string
	Name           *string
	Description    *string
	Assignees      *[]string
	Priority       *Priority
	Status         *Status
	StartDate      *time.Time
	EndDate        *time.Time
	EstHours       *float64
	UsedHours      *float64
	TimesheetState *TimesheetState
}

// DatePatch builds the patch a timeline drag commits.
func DatePatch(start, end time.Time) PlanTaskPatch {
	s, e := CalendarDate(start), CalendarDate(end)
	return PlanTaskPatch{StartDate: &s, EndDate: &e}
}

// IsEmpty reports whether the patch changes nothing.
func (p PlanTaskPatch) IsEmpty() bool {
	return p == PlanTaskPatch{}
}

// Apply merges p into t. Dates are stripped to calendar dates and assignees
// normalized. Callers validate the result.
func (t *PlanTask) Apply(p PlanTaskPatch) {
	t.ProjectCase = keep(t.ProjectCase, p.ProjectCase)
	t.Name = keep(t.Name, p.Name)
	t.Description = keep(t.Description, p.Description)
	if p.Assignees != nil {
		t.Assignees = NormalizeAssignees(*p.Assignees)
	}
	t.Priority = keep(t.Priority, p.Priority)
	t.Status = keep(t.Status, p.Status)
	if p.StartDate != nil {
		t.StartDate = CalendarDate(*p.StartDate)
	}
	if p.EndDate != nil {
		t.EndDate = CalendarDate(*p.EndDate)
	}
	t.EstHours = keep(t.EstHours, p.EstHours)
	t.UsedHours = keep(t.UsedHours, p.UsedHours)
	t.TimesheetState = keep(t.TimesheetState, p.TimesheetState)
}

// keep returns the patched value when set, else the current one.
func keep[T any](cur T, patched *T) T {
	if patched != nil {
		return *patched
	}
	return cur
}
