package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle colors a workflow status: backlog blue, in progress amber,
// done green.
func StatusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusBacklog:
		return StyleBlue
	}
	return StyleDim
}

// StatusPill returns a colored status indicator such as "● In Progress".
func StatusPill(s domain.Status) string {
	switch s {
	case domain.StatusDone:
		return StyleGreen.Render("✔ Done")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusBacklog:
		return StyleBlue.Render("○ Backlog")
	}
	return StyleDim.Render(string(s))
}

func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("High")
	case domain.PriorityMedium:
		return StyleYellow.Render("Medium")
	case domain.PriorityLow:
		return StyleDim.Render("Low")
	}
	return StyleDim.Render(string(p))
}

// TimesheetBadge marks sent timesheets; drafts render dim.
func TimesheetBadge(s domain.TimesheetState) string {
	switch s {
	case domain.TimesheetSubmitted:
		return StyleGreen.Render("submitted")
	case domain.TimesheetResubmitted:
		return StylePurple.Render("resubmitted")
	}
	return StyleDim.Render("draft")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
