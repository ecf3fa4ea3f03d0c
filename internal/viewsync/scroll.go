// Package viewsync keeps the grid and timeline panes of the plan board
// aligned: mirrored vertical scrolling, a header that follows the timeline
// body horizontally, and a draggable split between the panes.
package viewsync

// Pane identifies a scrollable region.
type Pane int

const (
	PaneGrid Pane = iota
	PaneTimeline
)

func (p Pane) other() Pane {
	if p == PaneGrid {
		return PaneTimeline
	}
	return PaneGrid
}

func (p Pane) String() string {
	if p == PaneGrid {
		return "grid"
	}
	return "timeline"
}

// Scroll mirrors vertical offsets between the two panes and the timeline's
// horizontal offset into the header.
//
// Writing the mirrored offset into the other pane produces a scroll event of
// its own. The syncing flag swallows that echo; it is also cleared on the
// next Frame, so under rapid input an event can be dropped.
type Scroll struct {
	top     [2]int
	left    int
	header  int
	syncing bool
}

// OnVertical handles a vertical scroll event from src. It returns the pane
// whose offset was set as a side effect and true, or false when the event
// was the echo of a mirror write.
func (s *Scroll) OnVertical(src Pane, top int) (Pane, bool) {
	if top < 0 {
		top = 0
	}
	if s.syncing {
		s.syncing = false
		s.top[src] = top
		return src, false
	}
	s.top[src] = top
	dst := src.other()
	s.top[dst] = top
	s.syncing = true
	return dst, true
}

// OnHorizontal handles a horizontal scroll of the timeline body. The header
// follows; the header never drives the body.
func (s *Scroll) OnHorizontal(left int) {
	if left < 0 {
		left = 0
	}
	s.left = left
	s.header = left
}

// Frame marks the end of an event-loop turn and releases the echo guard.
func (s *Scroll) Frame() {
	s.syncing = false
}

func (s *Scroll) Top(p Pane) int {
	return s.top[p]
}

// Left is the timeline body's horizontal offset.
func (s *Scroll) Left() int {
	return s.left
}

// HeaderLeft is the header's horizontal offset.
func (s *Scroll) HeaderLeft() int {
	return s.header
}

// Syncing reports whether an echo is currently expected.
func (s *Scroll) Syncing() bool {
	return s.syncing
}

// ClampTop limits both vertical offsets so the last row stays reachable.
func (s *Scroll) ClampTop(rows, visible int) {
	maxTop := rows - visible
	if maxTop < 0 {
		maxTop = 0
	}
	for i := range s.top {
		if s.top[i] > maxTop {
			s.top[i] = maxTop
		}
	}
}

// ClampLeft limits the horizontal offset to the scrollable width.
func (s *Scroll) ClampLeft(content, visible int) {
	maxLeft := content - visible
	if maxLeft < 0 {
		maxLeft = 0
	}
	if s.left > maxLeft {
		s.left = maxLeft
	}
	s.header = s.left
}
