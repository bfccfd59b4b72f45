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

// Package store holds the authoritative, ordered collection of authored
// shapes together with the current selection.
//
// The store does not record history.  Callers which need undo take a
// checkpoint before calling a mutating method.  Operations on ids which
// are not in the store are silently ignored.
package store

import (
	"slices"

	"github.com/google/uuid"

	"seehuhn.de/go/pookalam/shape"
)

// Store is the ordered collection of authored shapes.
// The order of the collection is the drawing order.
//
// A Store is not safe for concurrent use.
type Store struct {
	shapes   []*shape.Shape
	selected []string // in selection order

	// Tool holds the defaults for newly placed shapes.
	Tool Tool

	newID func() string
}

// New returns an empty store with the default tool settings.
func New() *Store {
	return &Store{
		Tool:  DefaultTool(),
		newID: uuid.NewString,
	}
}

// SetIDGenerator replaces the function used to allocate shape ids.
// The generator must never return an id which is already in use.
func (s *Store) SetIDGenerator(gen func() string) {
	s.newID = gen
}

// Len returns the number of shapes.
func (s *Store) Len() int {
	return len(s.shapes)
}

// Shapes returns a deep copy of the shape collection.
func (s *Store) Shapes() []*shape.Shape {
	return shape.CloneAll(s.shapes)
}

// Shape returns a copy of the shape with the given id.
func (s *Store) Shape(id string) (*shape.Shape, bool) {
	i := s.Index(id)
	if i < 0 {
		return nil, false
	}
	return s.shapes[i].Clone(), true
}

// Index returns the position of the shape with the given id,
// or -1 if there is no such shape.
func (s *Store) Index(id string) int {
	return slices.IndexFunc(s.shapes, func(sh *shape.Shape) bool { return sh.ID == id })
}

// Place appends a new shape built from the draft and makes it the only
// selected shape.  The new id is returned.
func (s *Store) Place(d *shape.Draft) string {
	id := s.newID()
	s.shapes = append(s.shapes, d.New(id))
	s.selected = []string{id}
	return id
}

// Update merges the patch into the shape with the given id.
// It reports whether the shape was found.
func (s *Store) Update(id string, p *shape.Patch) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.shapes[i].Apply(p)
	return true
}

// UpdateMany applies the same patch to every listed shape and returns the
// number of shapes changed.
func (s *Store) UpdateMany(ids []string, p *shape.Patch) int {
	n := 0
	for _, sh := range s.shapes {
		if slices.Contains(ids, sh.ID) {
			sh.Apply(p)
			n++
		}
	}
	return n
}

// Remove deletes the shape with the given id and drops it from the
// selection.  It reports whether the shape was found.
func (s *Store) Remove(id string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.shapes = slices.Delete(s.shapes, i, i+1)
	s.selected = slices.DeleteFunc(s.selected, func(sid string) bool { return sid == id })
	return true
}

// RemoveSelected deletes all selected shapes and clears the selection.
// It reports whether anything was selected.
func (s *Store) RemoveSelected() bool {
	if len(s.selected) == 0 {
		return false
	}
	sel := s.selected
	s.shapes = slices.DeleteFunc(s.shapes, func(sh *shape.Shape) bool {
		return slices.Contains(sel, sh.ID)
	})
	s.selected = nil
	return true
}

// Reorder moves the shape at position from to position to.
// Out of range indices leave the store unchanged; the return value
// reports whether the collection changed.
func (s *Store) Reorder(from, to int) bool {
	n := len(s.shapes)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	moved := s.shapes[from]
	s.shapes = slices.Delete(s.shapes, from, from+1)
	s.shapes = slices.Insert(s.shapes, to, moved)
	return true
}

// ToggleVisibility flips the visible flag of a shape.
func (s *Store) ToggleVisibility(id string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.shapes[i].Visible = !s.shapes[i].Visible
	return true
}

// ToggleLock flips the locked flag of a shape.
func (s *Store) ToggleLock(id string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.shapes[i].Locked = !s.shapes[i].Locked
	return true
}

// Select changes the selection.  If additive is set, the membership of id
// is toggled; otherwise the selection is replaced by id alone.
// Unknown ids are ignored.
func (s *Store) Select(id string, additive bool) {
	if s.Index(id) < 0 {
		return
	}
	if !additive {
		s.selected = []string{id}
		return
	}
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
	} else {
		s.selected = append(s.selected, id)
	}
}

// Deselect clears the selection.
func (s *Store) Deselect() {
	s.selected = nil
}

// Selected returns the ids of the selected shapes, in selection order.
func (s *Store) Selected() []string {
	return slices.Clone(s.selected)
}

// IsSelected reports whether the shape with the given id is selected.
func (s *Store) IsSelected(id string) bool {
	return slices.Contains(s.selected, id)
}

// Restore replaces the shape collection by a copy of snapshot.
// Selected ids which no longer exist are dropped from the selection.
func (s *Store) Restore(snapshot []*shape.Shape) {
	s.shapes = shape.CloneAll(snapshot)
	s.selected = slices.DeleteFunc(s.selected, func(id string) bool {
		return s.Index(id) < 0
	})
}
