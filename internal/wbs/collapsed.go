package wbs

// Collapsed is the transient expand/collapse state of tree rows. It is view
// state only: it never changes WBS numbers and is never persisted.
// The zero value (nil map) reads as "nothing collapsed".
type Collapsed map[string]bool

// Toggle flips id between collapsed and expanded and returns the new state.
func (c Collapsed) Toggle(id string) bool {
	if c[id] {
		delete(c, id)
		return false
	}
	c[id] = true
	return true
}

func (c Collapsed) IsCollapsed(id string) bool {
	return c[id]
}

// Prune drops entries for ids that are no longer in the tree.
func (c Collapsed) Prune(t *Tree) {
	for id := range c {
		if _, ok := t.Get(id); !ok {
			delete(c, id)
		}
	}
}
