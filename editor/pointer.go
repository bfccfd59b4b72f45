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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pookalam/geometry"
	"seehuhn.de/go/pookalam/shape"
)

// Action reports what a pointer-down event did.
type Action int

// These are the possible results of [Editor.PointerDown].
const (
	ActionNone  Action = iota // the event hit a locked shape
	ActionPlace               // a new shape was placed
	ActionDrag                // a drag of an existing shape started
)

func (a Action) String() string {
	switch a {
	case ActionPlace:
		return "place"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

type dragState struct {
	id     string
	start  vec.Vec2 // pointer position at drag start
	origin vec.Vec2 // shape center at drag start
}

// SnapPoint rounds both coordinates of p to the nearest multiple of step.
func SnapPoint(p vec.Vec2, step float64) vec.Vec2 {
	if step <= 0 {
		return p
	}
	return vec.Vec2{
		X: math.Round(p.X/step) * step,
		Y: math.Round(p.Y/step) * step,
	}
}

func (e *Editor) pointer(p vec.Vec2) vec.Vec2 {
	if !e.snap {
		return p
	}
	return SnapPoint(p, e.snapStep)
}

// HitTest returns the id of the topmost shape whose primary instance
// contains p.  Symmetry copies are not hit targets.
func (e *Editor) HitTest(p vec.Vec2) (string, bool) {
	shapes := e.store.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		if geometry.BuildShape(shapes[i]).Contains(p) {
			return shapes[i].ID, true
		}
	}
	return "", false
}

// PointerDown handles a press at canvas position p.
//
// Over an unlocked shape, the shape is selected (additively if requested)
// unless it is already selected, a checkpoint is taken and a drag begins.
// Over a locked shape nothing happens.  Over empty canvas a new shape is
// placed with the current tool settings.
func (e *Editor) PointerDown(p vec.Vec2, additive bool) (Action, string) {
	e.drag = nil
	raw := p
	p = e.pointer(p)

	id, hit := e.HitTest(raw)
	if !hit {
		return ActionPlace, e.Place(e.store.Tool.Draft(p))
	}

	s, _ := e.store.Shape(id)
	if s.Locked {
		return ActionNone, id
	}
	if !e.store.IsSelected(id) {
		e.Select(id, additive)
	}
	e.Checkpoint()
	e.drag = &dragState{id: id, start: p, origin: s.Center}
	return ActionDrag, id
}

// PointerMove moves the dragged shape by the pointer offset since the
// drag started.  Outside a drag, nothing happens.  No checkpoints are
// taken, so one undo reverts the whole drag.
func (e *Editor) PointerMove(p vec.Vec2) bool {
	if e.drag == nil {
		return false
	}
	p = e.pointer(p)
	center := e.drag.origin.Add(p.Sub(e.drag.start))
	return e.Update(e.drag.id, &shape.Patch{Center: &center})
}

// PointerUp ends a drag.
func (e *Editor) PointerUp() {
	e.drag = nil
}

// Dragging reports whether a drag is in progress, and of which shape.
func (e *Editor) Dragging() (string, bool) {
	if e.drag == nil {
		return "", false
	}
	return e.drag.id, true
}
