package contract

import (
	"github.com/alexanderramin/planboard/internal/domain"
)

type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assignedTo"`
	DueDate     Date   `json:"dueDate"`
}

func TaskFromDomain(t *domain.Task, projectName string) Task {
	return Task{
		ID:          t.ID,
		Name:        t.Name,
		ProjectID:   t.ProjectID,
		ProjectName: projectName,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssignedTo:  t.AssignedTo,
		DueDate:     NewDate(t.DueDate),
	}
}

type CreateTaskRequest struct {
	Name       string `json:"name"`
	ProjectID  string `json:"projectId"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	AssignedTo string `json:"assignedTo"`
	DueDate    Date   `json:"dueDate"`
}

// ToDomain converts the request. Status defaults to Backlog and priority
// to Medium.
func (r CreateTaskRequest) ToDomain() (*domain.Task, error) {
	t := &domain.Task{
		Name:       r.Name,
		ProjectID:  r.ProjectID,
		Status:     domain.StatusBacklog,
		Priority:   domain.PriorityMedium,
		AssignedTo: r.AssignedTo,
		DueDate:    r.DueDate.Time,
	}
	var err error
	if r.Status != "" {
		if t.Status, err = domain.ParseStatus(r.Status); err != nil {
			return nil, err
		}
	}
	if r.Priority != "" {
		if t.Priority, err = domain.ParsePriority(r.Priority); err != nil {
			return nil, err
		}
	}
	return t, nil
}
