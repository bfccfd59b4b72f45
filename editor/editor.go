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

// Package editor ties the shape store, the history and the symmetry
// setting together into one explicit editing state.
//
// Every discrete mutation takes a history checkpoint before it is
// applied, so that [Editor.Undo] immediately afterwards restores the
// previous design.  [Editor.Update] is the exception: it is meant for
// continuous changes and leaves checkpointing to the caller.
//
// After each committed mutation the registered listeners are notified
// and the dirty flag is set.
package editor

import (
	"log/slog"

	"seehuhn.de/go/pookalam/history"
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/store"
	"seehuhn.de/go/pookalam/symmetry"
)

// DefaultSnapStep is the grid spacing used for snapping, in canvas units.
const DefaultSnapStep = 10

// Options control the construction of an [Editor].
type Options struct {
	// Symmetry is the initial symmetry setting.
	// If Radial is zero, [symmetry.Default] is used.
	Symmetry symmetry.Config

	// HistoryLimit is the capacity of the undo and redo stacks.
	// Zero selects [history.DefaultLimit].
	HistoryLimit int

	// Snap enables grid snapping of pointer positions.
	Snap     bool
	SnapStep float64 // zero selects DefaultSnapStep

	// Tool, if set, replaces the default tool settings.
	Tool *store.Tool

	// Logger receives debug messages for committed changes.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// Editor is the complete editing state of one design.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	store *store.Store
	hist  *history.History
	sym   symmetry.Config

	snap     bool
	snapStep float64

	drag *dragState

	listeners []subscription
	nextSub   int
	dirty     bool

	logger *slog.Logger
}

// New returns an editor for an empty design.
// If opt is nil, default options are used.
func New(opt *Options) *Editor {
	if opt == nil {
		opt = &Options{}
	}
	e := &Editor{
		store:    store.New(),
		hist:     history.New(opt.HistoryLimit),
		sym:      symmetry.Default,
		snap:     opt.Snap,
		snapStep: opt.SnapStep,
		logger:   opt.Logger,
	}
	if opt.Symmetry.Radial != 0 {
		e.sym = opt.Symmetry.Normalize()
	}
	if e.snapStep <= 0 {
		e.snapStep = DefaultSnapStep
	}
	if opt.Tool != nil {
		e.store.Tool = *opt.Tool
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// SetIDGenerator replaces the function used to allocate shape ids.
func (e *Editor) SetIDGenerator(gen func() string) {
	e.store.SetIDGenerator(gen)
}

// Tool returns the tool settings used for new shapes.
// Changes made through the returned pointer take effect immediately.
func (e *Editor) Tool() *store.Tool {
	return &e.store.Tool
}

// Len returns the number of authored shapes.
func (e *Editor) Len() int {
	return e.store.Len()
}

// Shapes returns a copy of the shapes, in drawing order.
func (e *Editor) Shapes() []*shape.Shape {
	return e.store.Shapes()
}

// Shape returns a copy of the shape with the given id.
func (e *Editor) Shape(id string) (*shape.Shape, bool) {
	return e.store.Shape(id)
}

// Selected returns the ids of the selected shapes.
func (e *Editor) Selected() []string {
	return e.store.Selected()
}

// Symmetry returns the current symmetry setting.
func (e *Editor) Symmetry() symmetry.Config {
	return e.sym
}

// CanUndo reports whether [Editor.Undo] would change the design.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether [Editor.Redo] would change the design.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// Checkpoint saves the present design on the undo stack.  Callers use
// this before a series of [Editor.Update] calls which should be undone
// as a unit.
func (e *Editor) Checkpoint() {
	e.hist.Checkpoint(e.store.Shapes())
}

// Place adds a new shape and selects it.
func (e *Editor) Place(d *shape.Draft) string {
	e.Checkpoint()
	id := e.store.Place(d)
	e.emit(Change{Op: OpPlace, IDs: []string{id}, Design: true})
	return id
}

// Update merges a patch into one shape without taking a checkpoint.
func (e *Editor) Update(id string, p *shape.Patch) bool {
	if !e.store.Update(id, p) {
		return false
	}
	e.emit(Change{Op: OpUpdate, IDs: []string{id}, Design: true})
	return true
}

// UpdateSelected applies the patch to every selected shape.
// Nothing happens if the selection is empty.
func (e *Editor) UpdateSelected(p *shape.Patch) int {
	return e.UpdateMany(e.store.Selected(), p)
}

// UpdateMany applies the same patch to every listed shape and returns
// the number of shapes changed.  If none of the ids exist, no checkpoint
// is taken.
func (e *Editor) UpdateMany(ids []string, p *shape.Patch) int {
	var found []string
	for _, id := range ids {
		if e.store.Index(id) >= 0 {
			found = append(found, id)
		}
	}
	if len(found) == 0 {
		return 0
	}
	e.Checkpoint()
	n := e.store.UpdateMany(found, p)
	e.emit(Change{Op: OpUpdate, IDs: found, Design: true})
	return n
}

// Remove deletes one shape.
func (e *Editor) Remove(id string) bool {
	if e.store.Index(id) < 0 {
		return false
	}
	e.Checkpoint()
	e.store.Remove(id)
	e.emit(Change{Op: OpRemove, IDs: []string{id}, Design: true})
	return true
}

// RemoveSelected deletes all selected shapes.  With an empty selection
// this does nothing and no checkpoint is taken.
func (e *Editor) RemoveSelected() bool {
	ids := e.store.Selected()
	if len(ids) == 0 {
		return false
	}
	e.Checkpoint()
	e.store.RemoveSelected()
	e.emit(Change{Op: OpRemove, IDs: ids, Design: true})
	return true
}

// Reorder moves the shape at index from to index to.  Only the stacking
// order changes.
func (e *Editor) Reorder(from, to int) bool {
	n := e.store.Len()
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	e.Checkpoint()
	e.store.Reorder(from, to)
	e.emit(Change{Op: OpReorder, Design: true})
	return true
}

// ToggleVisibility shows or hides a shape.
func (e *Editor) ToggleVisibility(id string) bool {
	return e.toggle(id, e.store.ToggleVisibility)
}

// ToggleLock locks or unlocks a shape.
func (e *Editor) ToggleLock(id string) bool {
	return e.toggle(id, e.store.ToggleLock)
}

func (e *Editor) toggle(id string, fn func(string) bool) bool {
	if e.store.Index(id) < 0 {
		return false
	}
	e.Checkpoint()
	fn(id)
	e.emit(Change{Op: OpToggle, IDs: []string{id}, Design: true})
	return true
}

// Select changes the selection, see [store.Store.Select].
func (e *Editor) Select(id string, additive bool) {
	if e.store.Index(id) < 0 {
		return
	}
	e.store.Select(id, additive)
	e.emit(Change{Op: OpSelect, IDs: e.store.Selected()})
}

// Deselect clears the selection.
func (e *Editor) Deselect() {
	if len(e.store.Selected()) == 0 {
		return
	}
	e.store.Deselect()
	e.emit(Change{Op: OpSelect})
}

// Undo restores the design before the last checkpoint.
// The selection is cleared.
func (e *Editor) Undo() bool {
	prev, ok := e.hist.Undo(e.store.Shapes())
	if !ok {
		return false
	}
	e.restore(prev, OpUndo)
	return true
}

// Redo reverts the last [Editor.Undo].  The selection is cleared.
func (e *Editor) Redo() bool {
	next, ok := e.hist.Redo(e.store.Shapes())
	if !ok {
		return false
	}
	e.restore(next, OpRedo)
	return true
}

func (e *Editor) restore(s history.Snapshot, op Op) {
	e.drag = nil
	e.store.Restore(s)
	e.store.Deselect()
	e.emit(Change{Op: op, Design: true})
}

// SetSymmetry changes the global symmetry setting.  The radial count is
// clamped to the supported range.  Symmetry is not part of the history.
func (e *Editor) SetSymmetry(c symmetry.Config) {
	c = c.Normalize()
	if c == e.sym {
		return
	}
	e.sym = c
	e.emit(Change{Op: OpSymmetry, Design: true})
}

// SetSnap enables or disables grid snapping.
func (e *Editor) SetSnap(on bool) {
	e.snap = on
}

// Snapping reports whether grid snapping is enabled.
func (e *Editor) Snapping() bool {
	return e.snap
}
