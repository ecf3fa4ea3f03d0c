package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one node of a tree display.
type TreeItem struct {
	WBS    string
	Title  string
	Level  int
	IsLast bool
	Status domain.Status
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// TreeItems converts flattened plan rows into tree items. A row is last when
// no later row shares its depth before a shallower one appears.
func TreeItems(rows []wbs.Row) []TreeItem {
	items := make([]TreeItem, len(rows))
	for i, r := range rows {
		last := true
		for _, next := range rows[i+1:] {
			if next.Depth < r.Depth {
				break
			}
			if next.Depth == r.Depth {
				last = false
				break
			}
		}
		items[i] = TreeItem{
			WBS:    r.WBS,
			Title:  r.Task.Name,
			Level:  r.Depth,
			IsLast: last,
			Status: r.Task.Status,
			Detail: fmt.Sprintf("%s → %s", ShortDate(r.Task.StartDate), ShortDate(r.Task.EndDate)),
		}
	}
	return items
}

// RenderTree draws items with box-drawing connectors. Done items get a
// green check, in-progress items an amber arrow, and details are
// right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		marker := ""
		switch item.Status {
		case domain.StatusDone:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.StatusInProgress:
			marker = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		}
		wbsLabel := ""
		if item.WBS != "" {
			wbsLabel = StyleDim.Render(item.WBS + " ")
		}

		contents[idx] = prefix + marker + wbsLabel + title
		widest = max(widest, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, content := range contents {
		b.WriteString(content)
		if d := items[idx].Detail; d != "" {
			b.WriteString(strings.Repeat(" ", widest-lipgloss.Width(content)+2))
			b.WriteString(StyleBlue.Render("[ " + d + " ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
