package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}

// ShortDate formats a calendar date as "Jan 02"; zero dates render as "--".
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Jan 02")
}

// RelativeDateFrom describes t in calendar days relative to now.
func RelativeDateFrom(t, now time.Time) string {
	days := timeline.DaysBetween(now, t)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	}
	return fmt.Sprintf("%dmo ago", -days/30)
}

// DueStyled colors a due date by urgency: red when past or within two
// days, yellow within a week.
func DueStyled(t, now time.Time) string {
	text := RelativeDateFrom(t, now)
	days := timeline.DaysBetween(now, t)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// FormatHours prints hours without a trailing ".0".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// Change renders a signed weekly delta such as "+2" or "-5".
func Change(n int) string {
	switch {
	case n > 0:
		return StyleGreen.Render(fmt.Sprintf("+%d", n))
	case n < 0:
		return StyleRed.Render(fmt.Sprintf("%d", n))
	}
	return StyleDim.Render("±0")
}
