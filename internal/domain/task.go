package domain

import "time"

// Task is an entry of the flat task list shown on the tasks page, separate
// from the plan tree.
type Task struct {
	ID         string
	Name       string
	ProjectID  string
	Status     Status
	Priority   Priority
	AssignedTo string
	DueDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOverdue reports whether the task is open and its due date is a calendar
// day before now. A task due today is not overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusDone && daysBetween(now, t.DueDate) < 0
}

// DaysUntilDue returns calendar days from now to the due date; negative when overdue.
func (t *Task) DaysUntilDue(now time.Time) int {
	return daysBetween(now, t.DueDate)
}
