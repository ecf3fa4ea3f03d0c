package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planboardHuhTheme matches huh forms to the formatter palette.
func planboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskFormValues holds the form's string-typed fields.
type taskFormValues struct {
	Name        string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	EstHours    string
	Assignees   string
}

func newTaskFormValues(t *domain.PlanTask) *taskFormValues {
	return &taskFormValues{
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		EstHours:    strconv.FormatFloat(t.EstHours, 'f', -1, 64),
		Assignees:   strings.Join(t.Assignees, ", "),
	}
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateAssignees(s string) error {
	if len(domain.SplitAssignees(s)) == 0 {
		return errors.New("at least one assignee is required")
	}
	return nil
}

func validateEstHours(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number of hours")
	}
	if v < 0 {
		return errors.New("estimated hours must be positive")
	}
	return nil
}

// taskForm is the task details form.
func taskForm(v *taskFormValues) *huh.Form {
	statuses := []huh.Option[domain.Status]{
		huh.NewOption("Backlog", domain.StatusBacklog),
		huh.NewOption("In Progress", domain.StatusInProgress),
		huh.NewOption("Done", domain.StatusDone),
	}
	priorities := []huh.Option[domain.Priority]{
		huh.NewOption("Low", domain.PriorityLow),
		huh.NewOption("Medium", domain.PriorityMedium),
		huh.NewOption("High", domain.PriorityHigh),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired("name")),
			huh.NewText().Title("Description").Value(&v.Description).Validate(validateRequired("description")),
			huh.NewSelect[domain.Status]().Title("Status").Options(statuses...).Value(&v.Status),
			huh.NewSelect[domain.Priority]().Title("Priority").Options(priorities...).Value(&v.Priority),
			huh.NewInput().Title("Est. Hours").Value(&v.EstHours).Validate(validateEstHours),
			huh.NewInput().Title("Assigned To (comma-separated)").Value(&v.Assignees).Validate(validateAssignees),
		),
	).WithTheme(planboardHuhTheme()).WithShowHelp(false)
}

// patch returns only the fields that differ from t. Values are
// re-validated because the form can be bypassed in tests.
func (v *taskFormValues) patch(t *domain.PlanTask) (domain.PlanTaskPatch, error) {
	var p domain.PlanTaskPatch
	if err := validateRequired("name")(v.Name); err != nil {
		return p, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if err := validateRequired("description")(v.Description); err != nil {
		return p, &domain.ValidationError{Field: "description", Reason: "is required"}
	}
	if err := validateAssignees(v.Assignees); err != nil {
		return p, &domain.ValidationError{Field: "assignees", Reason: "needs at least one name"}
	}
	if err := validateEstHours(v.EstHours); err != nil {
		return p, &domain.ValidationError{Field: "estHours", Reason: err.Error()}
	}

	if name := strings.TrimSpace(v.Name); name != t.Name {
		p.Name = &name
	}
	if v.Description != t.Description {
		p.Description = &v.Description
	}
	if v.Status != t.Status {
		p.Status = &v.Status
	}
	if v.Priority != t.Priority {
		p.Priority = &v.Priority
	}
	est, _ := strconv.ParseFloat(strings.TrimSpace(v.EstHours), 64)
	if est != t.EstHours {
		p.EstHours = &est
	}
	assignees := domain.SplitAssignees(v.Assignees)
	if strings.Join(assignees, "\x00") != strings.Join(t.Assignees, "\x00") {
		p.Assignees = &assignees
	}
	return p, nil
}
