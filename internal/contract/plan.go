package contract

import (
	"github.com/alexanderramin/planboard/internal/domain"
)

// PlanTask is the JSON shape of a plan task with its nested subtasks.
type PlanTask struct {
	ID             string      `json:"id"`
	ProjectID      string      `json:"projectId,omitempty"`
	ParentID       *string     `json:"parentId,omitempty"`
	WBS            string      `json:"wbs"`
	ProjectCase    string      `json:"projectCase"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Assignees      []string    `json:"assignees"`
	Priority       string      `json:"priority"`
	Status         string      `json:"status"`
	StartDate      Date        `json:"startDate"`
	EndDate        Date        `json:"endDate"`
	EstHours       float64     `json:"estHours"`
	UsedHours      float64     `json:"usedHours"`
	TimesheetState string      `json:"timesheetState,omitempty"`
	SubTasks       []*PlanTask `json:"subTasks,omitempty"`
}

// PlanTaskFromDomain converts t and its subtree.
func PlanTaskFromDomain(t *domain.PlanTask) *PlanTask {
	if t == nil {
		return nil
	}
	assignees := t.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	out := &PlanTask{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		ParentID:       t.ParentID,
		WBS:            t.WBS,
		ProjectCase:    t.ProjectCase,
		Name:           t.Name,
		Description:    t.Description,
		Assignees:      assignees,
		Priority:       string(t.Priority),
		Status:         string(t.Status),
		StartDate:      NewDate(t.StartDate),
		EndDate:        NewDate(t.EndDate),
		EstHours:       t.EstHours,
		UsedHours:      t.UsedHours,
		TimesheetState: string(t.TimesheetState),
	}
	for _, st := range t.SubTasks {
		out.SubTasks = append(out.SubTasks, PlanTaskFromDomain(st))
	}
	return out
}

func PlanTreeFromDomain(roots []*domain.PlanTask) []*PlanTask {
	out := make([]*PlanTask, 0, len(roots))
	for _, r := range roots {
		out = append(out, PlanTaskFromDomain(r))
	}
	return out
}

// ToDomain converts the DTO and its subtree, rejecting unknown enum values.
// An empty timesheet state stays empty so the service can default it.
func (p *PlanTask) ToDomain() (*domain.PlanTask, error) {
	t := &domain.PlanTask{
		ID:          p.ID,
		ProjectID:   p.ProjectID,
		ParentID:    p.ParentID,
		WBS:         p.WBS,
		ProjectCase: p.ProjectCase,
		Name:        p.Name,
		Description: p.Description,
		Assignees:   domain.NormalizeAssignees(p.Assignees),
		StartDate:   p.StartDate.Time,
		EndDate:     p.EndDate.Time,
		EstHours:    p.EstHours,
		UsedHours:   p.UsedHours,
	}
	var err error
	if t.Priority, err = domain.ParsePriority(p.Priority); err != nil {
		return nil, err
	}
	if t.Status, err = domain.ParseStatus(p.Status); err != nil {
		return nil, err
	}
	if p.TimesheetState != "" {
		if t.TimesheetState, err = domain.ParseTimesheetState(p.TimesheetState); err != nil {
			return nil, err
		}
	}
	for _, st := range p.SubTasks {
		c, err := st.ToDomain()
		if err != nil {
			return nil, err
		}
		t.SubTasks = append(t.SubTasks, c)
	}
	return t, nil
}

// PlanTaskPatch is the body of PUT /api/plan/tasks/{taskId}. Absent fields
// are left untouched. id, wbs and subTasks are ignored if sent.
type PlanTaskPatch struct {
	ProjectCase    *string   `json:"projectCase,omitempty"`
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Assignees      *[]string `json:"assignees,omitempty"`
	Priority       *string   `json:"priority,omitempty"`
	Status         *string   `json:"status,omitempty"`
	StartDate      *Date     `json:"startDate,omitempty"`
	EndDate        *Date     `json:"endDate,omitempty"`
	EstHours       *float64  `json:"estHours,omitempty"`
	UsedHours      *float64  `json:"usedHours,omitempty"`
	TimesheetState *string   `json:"timesheetState,omitempty"`
}

func (p PlanTaskPatch) ToDomain() (domain.PlanTaskPatch, error) {
	out := domain.PlanTaskPatch{
		ProjectCase: p.ProjectCase,
		Name:        p.Name,
		Description: p.Description,
		Assignees:   p.Assignees,
		EstHours:    p.EstHours,
		UsedHours:   p.UsedHours,
	}
	if p.Priority != nil {
		v, err := domain.ParsePriority(*p.Priority)
		if err != nil {
			return out, err
		}
		out.Priority = &v
	}
	if p.Status != nil {
		v, err := domain.ParseStatus(*p.Status)
		if err != nil {
			return out, err
		}
		out.Status = &v
	}
	if p.TimesheetState != nil {
		v, err := domain.ParseTimesheetState(*p.TimesheetState)
		if err != nil {
			return out, err
		}
		out.TimesheetState = &v
	}
	if p.StartDate != nil {
		if p.StartDate.IsZero() {
			return out, &domain.ValidationError{Field: "startDate", Reason: "must not be empty"}
		}
		v := p.StartDate.Time
		out.StartDate = &v
	}
	if p.EndDate != nil {
		if p.EndDate.IsZero() {
			return out, &domain.ValidationError{Field: "endDate", Reason: "must not be empty"}
		}
		v := p.EndDate.Time
		out.EndDate = &v
	}
	return out, nil
}

// PlanTaskPatchFromDomain is used by clients sending a domain patch.
func PlanTaskPatchFromDomain(p domain.PlanTaskPatch) PlanTaskPatch {
	out := PlanTaskPatch{
		ProjectCase: p.ProjectCase,
		Name:        p.Name,
		Description: p.Description,
		Assignees:   p.Assignees,
		EstHours:    p.EstHours,
		UsedHours:   p.UsedHours,
	}
	if p.Priority != nil {
		v := string(*p.Priority)
		out.Priority = &v
	}
	if p.Status != nil {
		v := string(*p.Status)
		out.Status = &v
	}
	if p.TimesheetState != nil {
		v := string(*p.TimesheetState)
		out.TimesheetState = &v
	}
	if p.StartDate != nil {
		v := NewDate(*p.StartDate)
		out.StartDate = &v
	}
	if p.EndDate != nil {
		v := NewDate(*p.EndDate)
		out.EndDate = &v
	}
	return out
}

// CreatePlanTaskRequest is the body of POST /api/plan/tasks. ProjectID
// defaults to the parent's project, then to DefaultProjectID.
type CreatePlanTaskRequest struct {
	ParentID  *string  `json:"parentId,omitempty"`
	ProjectID string   `json:"projectId,omitempty"`
	Task      PlanTask `json:"task"`
}

// DefaultProjectID is the project a root task lands in when the request
// names none.
const DefaultProjectID = "1"

// TaskMessage wraps a task with a human-readable outcome.
type TaskMessage struct {
	Message string    `json:"message"`
	Task    *PlanTask `json:"task"`
}

type TimesheetRequest struct {
	TaskID string `json:"taskId"`
}

type Message struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusRequest struct {
	Status string `json:"status"`
}
