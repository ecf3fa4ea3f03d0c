package domain

import (
	"strings"
	"time"
)

// PlanTask is a node of a project's work breakdown structure.
// WBS is derived from tree position and is only meaningful on values
// produced by the wbs package or the plan service.
type PlanTask struct {
	ID             string
	ProjectID      string
	ProjectCase    string
	ParentID       *string
	OrderIndex     int
	WBS            string
	Name           string
	Description    string
	Assignees      []string
	Priority       Priority
	Status         Status
	StartDate      time.Time
	EndDate        time.Time
	EstHours       float64
	UsedHours      float64
	TimesheetState TimesheetState
	SubTasks       []*PlanTask
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RemainingHours is EstHours minus UsedHours. It is not clamped at zero.
func (t *PlanTask) RemainingHours() float64 {
	return t.EstHours - t.UsedHours
}

// DurationDays returns the inclusive number of calendar days the task spans.
func (t *PlanTask) DurationDays() int {
	return daysBetween(t.StartDate, t.EndDate) + 1
}

// Validate checks the edit-time invariants of a plan task.
func (t *PlanTask) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !ValidPriorities[t.Priority] {
		return &ValidationError{Field: "priority", Reason: "must be one of Low, Medium, High"}
	}
	if !ValidStatuses[t.Status] {
		return &ValidationError{Field: "status", Reason: "must be one of Backlog, In Progress, Done"}
	}
	if t.TimesheetState != "" && !ValidTimesheetStates[t.TimesheetState] {
		return &ValidationError{Field: "timesheetState", Reason: "must be one of draft, submitted, resubmitted"}
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "and endDate are required"}
	}
	if daysBetween(t.StartDate, t.EndDate) < 0 {
		return &ValidationError{Field: "endDate", Reason: "must not be before startDate"}
	}
	if t.EstHours < 0 {
		return &ValidationError{Field: "estHours", Reason: "must not be negative"}
	}
	if t.UsedHours < 0 {
		return &ValidationError{Field: "usedHours", Reason: "must not be negative"}
	}
	return nil
}

// Clone returns a deep copy of t, including its subtree.
func (t *PlanTask) Clone() *PlanTask {
	if t == nil {
		return nil
	}
	c := *t
	if t.ParentID != nil {
		p := *t.ParentID
		c.ParentID = &p
	}
	c.Assignees = append([]string(nil), t.Assignees...)
	c.SubTasks = nil
	for _, st := range t.SubTasks {
		c.SubTasks = append(c.SubTasks, st.Clone())
	}
	return &c
}

// NormalizeAssignees trims names, drops blanks and duplicates, and keeps the
// first-seen order.
func NormalizeAssignees(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// SplitAssignees parses a comma-separated assignee list.
func SplitAssignees(s string) []string {
	return NormalizeAssignees(strings.Split(s, ","))
}

// CalendarDate strips the time of day, keeping t's location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b using UTC date arithmetic so
// DST transitions never produce fractional days.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
