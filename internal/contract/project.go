package contract

import (
	"github.com/alexanderramin/planboard/internal/domain"
)

type Project struct {
	ID        string `json:"id"`
	Case      string `json:"case"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	StartDate Date   `json:"startDate"`
	DueDate   Date   `json:"dueDate"`
	Progress  int    `json:"progress"`
	Owner     string `json:"owner"`
}

func ProjectFromDomain(p *domain.Project) Project {
	return Project{
		ID:        p.ID,
		Case:      p.Case,
		Name:      p.Name,
		Status:    string(p.Status),
		StartDate: NewDate(p.StartDate),
		DueDate:   NewDate(p.DueDate),
		Progress:  p.Progress,
		Owner:     p.Owner,
	}
}

// CreateProjectRequest carries everything but id and progress, which the
// server assigns.
type CreateProjectRequest struct {
	Case      string `json:"case"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	StartDate Date   `json:"startDate"`
	DueDate   Date   `json:"dueDate"`
	Owner     string `json:"owner"`
}

// ToDomain converts the request; an empty status means Backlog.
func (r CreateProjectRequest) ToDomain() (*domain.Project, error) {
	status := domain.StatusBacklog
	if r.Status != "" {
		s, err := domain.ParseStatus(r.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}
	return &domain.Project{
		Case:      r.Case,
		Name:      r.Name,
		Status:    status,
		StartDate: r.StartDate.Time,
		DueDate:   r.DueDate.Time,
		Owner:     r.Owner,
	}, nil
}
