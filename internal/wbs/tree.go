// Package wbs holds a project's plan as an arena-indexed tree and derives
// work breakdown structure numbers from tree position.
package wbs

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/planboard/internal/domain"
)

const noParent = -1

type node struct {
	task     *domain.PlanTask
	children []int
	dead     bool
}

// Tree is an ordered forest of plan tasks. Nodes live in one slice and refer
// to each other by index. A node owns its child list; there are no parent
// links, so the structure cannot form cycles.
type Tree struct {
	nodes []node
	roots []int
	index map[string]int
}

// Row is one visible line of the flattened tree.
type Row struct {
	Task        *domain.PlanTask
	Depth       int
	WBS         string
	HasChildren bool
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{index: make(map[string]int)}
}

// FromTasks builds a tree from nested root tasks. Tasks are copied; SubTasks
// on the stored copies is cleared since structure lives in the arena.
func FromTasks(roots []*domain.PlanTask) *Tree {
	t := New()
	var add func(parent int, tasks []*domain.PlanTask)
	add = func(parent int, tasks []*domain.PlanTask) {
		for _, task := range tasks {
			if task == nil {
				continue
			}
			c := task.Clone()
			c.SubTasks = nil
			idx := t.insert(parent, c)
			add(idx, task.SubTasks)
		}
	}
	add(noParent, roots)
	return t
}

func (t *Tree) insert(parent int, task *domain.PlanTask) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{task: task})
	if parent == noParent {
		t.roots = append(t.roots, idx)
		task.ParentID = nil
	} else {
		p := &t.nodes[parent]
		p.children = append(p.children, idx)
		pid := p.task.ID
		task.ParentID = &pid
	}
	t.index[task.ID] = idx
	return idx
}

// Len is the number of live tasks.
func (t *Tree) Len() int {
	return len(t.index)
}

// Get returns the stored task by id.
func (t *Tree) Get(id string) (*domain.PlanTask, bool) {
	idx, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.nodes[idx].task, true
}

// Update applies fn to the stored task. Changing the ID through fn is not
// supported.
func (t *Tree) Update(id string, fn func(*domain.PlanTask)) error {
	task, ok := t.Get(id)
	if !ok {
		return fmt.Errorf("plan task %s: %w", id, domain.ErrNotFound)
	}
	fn(task)
	return nil
}

// ChildCount returns the number of direct children of id.
func (t *Tree) ChildCount(id string) int {
	idx, ok := t.index[id]
	if !ok {
		return 0
	}
	return len(t.nodes[idx].children)
}

// AddChild appends task as the last child of parentID, or as the last root
// when parentID is empty.
func (t *Tree) AddChild(parentID string, task *domain.PlanTask) (Row, error) {
	parent := noParent
	depth := 0
	prefix := ""
	if parentID != "" {
		idx, ok := t.index[parentID]
		if !ok {
			return Row{}, fmt.Errorf("parent %s: %w", parentID, domain.ErrNotFound)
		}
		parent = idx
		d, wbs := t.locate(idx)
		depth = d + 1
		prefix = wbs + "."
	}
	if _, dup := t.index[task.ID]; dup {
		return Row{}, &domain.ValidationError{Field: "id", Reason: fmt.Sprintf("%q already exists", task.ID)}
	}
	t.insert(parent, task)
	siblings := t.roots
	if parent != noParent {
		siblings = t.nodes[parent].children
	}
	task.OrderIndex = len(siblings) - 1
	task.WBS = prefix + strconv.Itoa(len(siblings))
	return Row{Task: task, Depth: depth, WBS: task.WBS}, nil
}

// DeleteSubtree removes id and all its descendants and returns how many tasks
// were removed. An unknown id removes nothing.
func (t *Tree) DeleteSubtree(id string) int {
	idx, ok := t.index[id]
	if !ok {
		return 0
	}
	t.detach(idx)

	removed := 0
	stack := []int{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		stack = append(stack, n.children...)
		delete(t.index, n.task.ID)
		n.dead = true
		n.children = nil
		removed++
	}
	return removed
}

func without(list []int, v int) []int {
	out := list[:0:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// ComputeWBS derives the WBS number of every task from its position. The
// result is recomputed on each call and never read from the tasks.
func (t *Tree) ComputeWBS() map[string]string {
	out := make(map[string]string, len(t.index))
	t.walk(func(idx, _ int, wbs string) bool {
		out[t.nodes[idx].task.ID] = wbs
		return true
	})
	return out
}

// Flatten lists the tree depth-first in pre-order. Descendants of collapsed
// tasks are omitted; the collapsed task itself stays visible.
func (t *Tree) Flatten(collapsed Collapsed) []Row {
	rows := make([]Row, 0, len(t.index))
	t.walk(func(idx, depth int, wbs string) bool {
		n := t.nodes[idx]
		n.task.WBS = wbs
		rows = append(rows, Row{
			Task:        n.task,
			Depth:       depth,
			WBS:         wbs,
			HasChildren: len(n.children) > 0,
		})
		return !collapsed.IsCollapsed(n.task.ID)
	})
	return rows
}

// Nested rebuilds nested copies of the roots with WBS and OrderIndex filled in.
func (t *Tree) Nested() []*domain.PlanTask {
	var build func(idxs []int, prefix string) []*domain.PlanTask
	build = func(idxs []int, prefix string) []*domain.PlanTask {
		out := make([]*domain.PlanTask, 0, len(idxs))
		for i, idx := range idxs {
			n := t.nodes[idx]
			c := n.task.Clone()
			c.WBS = prefix + strconv.Itoa(i+1)
			c.OrderIndex = i
			c.SubTasks = build(n.children, c.WBS+".")
			out = append(out, c)
		}
		return out
	}
	return build(t.roots, "")
}

// walk visits nodes in pre-order. Returning false from visit skips the
// node's descendants.
func (t *Tree) walk(visit func(idx, depth int, wbs string) bool) {
	var rec func(idxs []int, depth int, prefix string)
	rec = func(idxs []int, depth int, prefix string) {
		for i, idx := range idxs {
			wbs := prefix + strconv.Itoa(i+1)
			if visit(idx, depth, wbs) {
				rec(t.nodes[idx].children, depth+1, wbs+".")
			}
		}
	}
	rec(t.roots, 0, "")
}

// locate returns the depth and WBS of the node at idx.
func (t *Tree) locate(idx int) (int, string) {
	depth, wbs := 0, ""
	t.walk(func(cur, d int, w string) bool {
		if cur == idx {
			depth, wbs = d, w
		}
		return wbs == ""
	})
	return depth, wbs
}

// detach removes idx from whichever child list owns it.
func (t *Tree) detach(idx int) {
	before := len(t.roots)
	t.roots = without(t.roots, idx)
	if len(t.roots) != before {
		return
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.dead {
			continue
		}
		if kept := without(n.children, idx); len(kept) != len(n.children) {
			n.children = kept
			return
		}
	}
}
