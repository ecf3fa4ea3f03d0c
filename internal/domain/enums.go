package domain

type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// ValidStatuses is the canonical set of accepted status strings, shared by
// projects, tasks and plan tasks.
var ValidStatuses = map[Status]bool{
	StatusBacklog: true, StatusInProgress: true, StatusDone: true,
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

type TimesheetState string

const (
	TimesheetDraft       TimesheetState = "draft"
	TimesheetSubmitted   TimesheetState = "submitted"
	TimesheetResubmitted TimesheetState = "resubmitted"
)

var ValidTimesheetStates = map[TimesheetState]bool{
	TimesheetDraft: true, TimesheetSubmitted: true, TimesheetResubmitted: true,
}

// ParseStatus accepts the canonical spelling as well as lowercase and
// snake_case variants ("in_progress") typed on the command line.
func ParseStatus(s string) (Status, error) {
	switch normalizeEnum(s) {
	case "backlog":
		return StatusBacklog, nil
	case "in progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return "", &ValidationError{Field: "status", Reason: "must be one of Backlog, In Progress, Done"}
}

func ParsePriority(s string) (Priority, error) {
	switch normalizeEnum(s) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", &ValidationError{Field: "priority", Reason: "must be one of Low, Medium, High"}
}

func ParseTimesheetState(s string) (TimesheetState, error) {
	st := TimesheetState(normalizeEnum(s))
	if !ValidTimesheetStates[st] {
		return "", &ValidationError{Field: "timesheetState", Reason: "must be one of draft, submitted, resubmitted"}
	}
	return st, nil
}
