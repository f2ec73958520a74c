// Package history is a linear undo/redo log of whole-collection snapshots.
// Committing after an undo discards the redo branch.
package history

import "wirecanvas/internal/shape"

type History struct {
	snapshots []shape.Collection
	cursor    int
}

// New starts a history holding one empty snapshot.
func New() *History {
	return NewWith(shape.Collection{})
}

// NewWith starts a history whose only snapshot is initial.
func NewWith(initial shape.Collection) *History {
	return &History{snapshots: []shape.Collection{initial}}
}

// Commit drops every snapshot after the cursor, appends c and moves the
// cursor onto it.
func (h *History) Commit(c shape.Collection) {
	h.snapshots = append(h.snapshots[:h.cursor+1:h.cursor+1], c)
	h.cursor = len(h.snapshots) - 1
}

// Undo steps back one snapshot. ok is false at the first snapshot.
func (h *History) Undo() (shape.Collection, bool) {
	if h.cursor == 0 {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Redo steps forward one snapshot. ok is false at the last snapshot.
func (h *History) Redo() (shape.Collection, bool) {
	if h.cursor == len(h.snapshots)-1 {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

// Current is the active snapshot.
func (h *History) Current() shape.Collection {
	return h.snapshots[h.cursor]
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Cursor is the index of the active snapshot.
func (h *History) Cursor() int { return h.cursor }

// Len is the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }
