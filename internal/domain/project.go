package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var caseCodePattern = regexp.MustCompile(`^[A-Z]{2,6}-[0-9]{4}$`)

type Project struct {
	ID        string
	Case      string
	Name      string
	Status    Status
	StartDate time.Time
	DueDate   time.Time
	Progress  int
	Owner     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateCase checks that Case is non-empty and matches the required
// format: 2-6 uppercase letters, a dash, and a four digit year (e.g. SP-2024).
func (p *Project) ValidateCase() error {
	if p.Case == "" {
		return &ValidationError{Field: "case", Reason: "is required"}
	}
	if !caseCodePattern.MatchString(p.Case) {
		return &ValidationError{Field: "case", Reason: fmt.Sprintf("%q must be 2-6 uppercase letters, a dash and 4 digits (e.g. SP-2024)", p.Case)}
	}
	return nil
}

// Validate checks the fields required to create a project.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if err := p.ValidateCase(); err != nil {
		return err
	}
	if !ValidStatuses[p.Status] {
		return &ValidationError{Field: "status", Reason: "must be one of Backlog, In Progress, Done"}
	}
	if p.Progress < 0 || p.Progress > 100 {
		return &ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
	}
	if !p.DueDate.IsZero() && p.DueDate.Before(p.StartDate) {
		return &ValidationError{Field: "dueDate", Reason: "must not be before startDate"}
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers Case; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.Case != "" {
		return p.Case
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
