package viewsync

// DefaultMaxGridWidth is the widest the grid pane may be dragged.
const DefaultMaxGridWidth = 1600

// GridColumns are the fixed widths of the plan grid columns: drag handle,
// WBS, name, assignees, status, priority, start, end, est, used, remaining
// and actions.
var GridColumns = []int{48, 80, 192, 128, 96, 64, 80, 64, 64, 48, 48, 40}

// GridBorders is the width taken by column borders and padding.
const GridBorders = 12

// ColumnsWidth is the sum of column widths plus borders.
func ColumnsWidth(columns []int, borders int) int {
	w := borders
	for _, c := range columns {
		w += c
	}
	return w
}

// Split is the resizable divider between grid and timeline. Width is always
// within [Min, Max].
type Split struct {
	Width int
	Min   int
	Max   int

	resizing bool
	originX  int
	originW  int
}

// NewSplit returns a split starting at its minimum width.
func NewSplit(min, max int) *Split {
	if max < min {
		max = min
	}
	return &Split{Width: min, Min: min, Max: max}
}

// BeginResize starts tracking the divider from pointer position x.
func (s *Split) BeginResize(x int) {
	s.resizing = true
	s.originX = x
	s.originW = s.Width
}

// ResizeTo applies the pointer position immediately. Moving right widens the
// grid. Returns the new width.
func (s *Split) ResizeTo(x int) int {
	if !s.resizing {
		return s.Width
	}
	s.Width = s.clamp(s.originW + (x - s.originX))
	return s.Width
}

// EndResize stops tracking the pointer.
func (s *Split) EndResize() {
	s.resizing = false
}

func (s *Split) Resizing() bool {
	return s.resizing
}

// Nudge changes the width by delta, clamped.
func (s *Split) Nudge(delta int) int {
	s.Width = s.clamp(s.Width + delta)
	return s.Width
}

func (s *Split) clamp(w int) int {
	if w < s.Min {
		return s.Min
	}
	if w > s.Max {
		return s.Max
	}
	return w
}
