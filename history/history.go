// seehuhn.de/go/pookalam - a symmetric floral pattern designer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package history implements snapshot based undo and redo for a shape
// collection.
//
// A [History] does not own the collection.  The caller passes in the
// present state and receives the state to restore.  All snapshots are
// deep copies, so later changes to the caller's shapes never leak into
// the history.
package history

import (
	"slices"

	"seehuhn.de/go/pookalam/shape"
)

// DefaultLimit is the number of snapshots kept on each stack if no other
// limit is given.
const DefaultLimit = 50

// Snapshot is a saved copy of the shape collection.
type Snapshot []*shape.Shape

// History holds the past and future stacks.
//
// A History is not safe for concurrent use.
type History struct {
	past   []Snapshot // oldest first
	future []Snapshot // next redo first

	limit int
}

// New returns an empty history which keeps at most limit snapshots on
// each stack.  If limit is not positive, [DefaultLimit] is used.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Limit returns the stack capacity.
func (h *History) Limit() int {
	return h.limit
}

// Checkpoint records the present state before a mutation.
// The redo stack is cleared.
func (h *History) Checkpoint(present []*shape.Shape) {
	h.pushPast(shape.CloneAll(present))
	h.future = nil
}

// Undo returns the most recent checkpoint and moves present onto the
// redo stack.  If there is nothing to undo, present is returned unchanged
// and ok is false.
func (h *History) Undo(present []*shape.Shape) (restored Snapshot, ok bool) {
	n := len(h.past)
	if n == 0 {
		return present, false
	}
	restored = h.past[n-1]
	h.past = h.past[:n-1]

	h.future = slices.Insert(h.future, 0, Snapshot(shape.CloneAll(present)))
	if len(h.future) > h.limit {
		h.future = h.future[:h.limit]
	}
	return shape.CloneAll(restored), true
}

// Redo reverses the most recent [History.Undo].  If there is nothing to
// redo, present is returned unchanged and ok is false.
func (h *History) Redo(present []*shape.Shape) (restored Snapshot, ok bool) {
	if len(h.future) == 0 {
		return present, false
	}
	restored = h.future[0]
	h.future = slices.Delete(h.future, 0, 1)

	h.pushPast(shape.CloneAll(present))
	return shape.CloneAll(restored), true
}

func (h *History) pushPast(s Snapshot) {
	h.past = append(h.past, s)
	if excess := len(h.past) - h.limit; excess > 0 {
		h.past = slices.Delete(h.past, 0, excess)
	}
}

// CanUndo reports whether [History.Undo] would restore a snapshot.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether [History.Redo] would restore a snapshot.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// UndoCount returns the number of snapshots on the undo stack.
func (h *History) UndoCount() int {
	return len(h.past)
}

// RedoCount returns the number of snapshots on the redo stack.
func (h *History) RedoCount() int {
	return len(h.future)
}

// Clear discards both stacks.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}
