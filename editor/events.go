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

package editor

import (
	"fmt"
	"slices"
)

// Op identifies the kind of a [Change].
type Op int

// These are the operations reported to listeners.
const (
	OpPlace Op = iota + 1
	OpUpdate
	OpRemove
	OpReorder
	OpToggle
	OpSelect
	OpSymmetry
	OpUndo
	OpRedo
)

func (op Op) String() string {
	switch op {
	case OpPlace:
		return "place"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	case OpReorder:
		return "reorder"
	case OpToggle:
		return "toggle"
	case OpSelect:
		return "select"
	case OpSymmetry:
		return "symmetry"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Change describes one committed mutation.
type Change struct {
	Op  Op
	IDs []string // shapes affected, if known

	// Design is set if the change affects the drawing.  Selection
	// changes leave it unset.
	Design bool
}

// Listener is called synchronously after every committed mutation.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn to be called after every change.  The returned
// function removes the registration again.
func (e *Editor) Subscribe(fn Listener) (cancel func()) {
	e.nextSub++
	id := e.nextSub
	e.listeners = append(e.listeners, subscription{id: id, fn: fn})
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (e *Editor) emit(c Change) {
	if c.Design {
		e.dirty = true
	}
	e.logger.Debug("change", "op", c.Op, "ids", c.IDs, "shapes", e.store.Len())
	for _, s := range slices.Clone(e.listeners) {
		s.fn(c)
	}
}

// Dirty reports whether the design changed since the last call to
// [Editor.ClearDirty].
func (e *Editor) Dirty() bool {
	return e.dirty
}

// ClearDirty resets the dirty flag, typically after a redraw.
func (e *Editor) ClearDirty() {
	e.dirty = false
}
