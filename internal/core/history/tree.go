// Package history provides undo/redo functionality via a branching tree of diffs.
// Undoing and then editing starts a new branch next to the undone one instead of
// discarding it. Nodes are never removed.
package history

import (
	"github.com/bethropolis/med/internal/document"
	"github.com/bethropolis/med/internal/logger"
)

// NodeID identifies a node in a Tree. IDs are dense indexes in creation order.
type NodeID int

// Root is the implicit root: the initial document state before any edit.
const Root NodeID = -1

type node[D any] struct {
	diff     D
	parent   NodeID
	children []NodeID // creation order; the most recent branch is last
}

// Tree is an append-only arena of diffs plus a cursor naming the node whose
// state is currently materialised. It is not safe for concurrent use.
type Tree[D document.Diff[D]] struct {
	nodes  []node[D]
	roots  []NodeID // children of Root
	cursor NodeID
}

// NewTree creates an empty tree with the cursor at Root.
func NewTree[D document.Diff[D]]() *Tree[D] {
	return &Tree[D]{cursor: Root}
}

// Record appends diff as the last child of parent and returns the new node.
// It does not move the cursor.
func (t *Tree[D]) Record(diff D, parent NodeID) NodeID {
	if parent != Root && !t.valid(parent) {
		panic("history: Record with unknown parent node")
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[D]{diff: diff, parent: parent})
	if parent == Root {
		t.roots = append(t.roots, id)
	} else {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	logger.DebugTagf("history", "History: Recorded node %d under %d. Count: %d", id, parent, len(t.nodes))
	return id
}

// Commit records diff under the cursor and advances the cursor to it.
func (t *Tree[D]) Commit(diff D) NodeID {
	t.cursor = t.Record(diff, t.cursor)
	return t.cursor
}

// Undo moves the cursor to its parent and returns the inverse of the diff that
// led to the old cursor. It reports false at Root.
func (t *Tree[D]) Undo() (D, bool) {
	var zero D
	if t.cursor == Root {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return zero, false
	}
	n := t.nodes[t.cursor]
	logger.DebugTagf("history", "History: Undoing node %d, cursor -> %d", t.cursor, n.parent)
	t.cursor = n.parent
	return n.diff.Invert(), true
}

// Redo moves the cursor to the most recently created child and returns its diff.
// It reports false when the cursor has no children.
func (t *Tree[D]) Redo() (D, bool) {
	var zero D
	children := t.childrenOf(t.cursor)
	if len(children) == 0 {
		logger.DebugTagf("history", "History: Nothing to redo at node %d.", t.cursor)
		return zero, false
	}
	next := children[len(children)-1]
	logger.DebugTagf("history", "History: Redoing node %d (%d branches)", next, len(children))
	t.cursor = next
	return t.nodes[next].diff, true
}

// CanUndo returns true if the cursor is not at Root.
func (t *Tree[D]) CanUndo() bool {
	return t.cursor != Root
}

// CanRedo returns true if the cursor node has at least one child.
func (t *Tree[D]) CanRedo() bool {
	return len(t.childrenOf(t.cursor)) > 0
}

// Cursor returns the node of the currently materialised state.
func (t *Tree[D]) Cursor() NodeID {
	return t.cursor
}

// Parent returns the parent of id, Root for top-level nodes and for Root itself.
func (t *Tree[D]) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return Root
	}
	return t.nodes[id].parent
}

// Children returns a copy of id's children in creation order.
func (t *Tree[D]) Children(id NodeID) []NodeID {
	children := t.childrenOf(id)
	out := make([]NodeID, len(children))
	copy(out, children)
	return out
}

// Diff returns the diff stored at id. It reports false for Root and unknown ids.
func (t *Tree[D]) Diff(id NodeID) (D, bool) {
	var zero D
	if !t.valid(id) {
		return zero, false
	}
	return t.nodes[id].diff, true
}

// Len returns the number of recorded nodes, Root excluded.
func (t *Tree[D]) Len() int {
	return len(t.nodes)
}

// Depth returns the number of edits between Root and id.
func (t *Tree[D]) Depth(id NodeID) int {
	depth := 0
	for t.valid(id) {
		depth++
		id = t.nodes[id].parent
	}
	return depth
}

// Walk visits every node in pre-order, children in creation order. Returning
// false from fn stops the walk.
func (t *Tree[D]) Walk(fn func(id NodeID, parent NodeID, diff D) bool) {
	stack := make([]NodeID, 0, len(t.nodes))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[id]
		if !fn(id, n.parent, n.diff) {
			return
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

func (t *Tree[D]) childrenOf(id NodeID) []NodeID {
	if id == Root {
		return t.roots
	}
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

func (t *Tree[D]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
