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
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/symmetry"
)

// Item is one authored shape together with all its rendered instances.
type Item struct {
	Shape     *shape.Shape
	Instances []symmetry.Instance
	Selected  bool
}

// Scene returns everything a renderer needs, in drawing order.
// The result is a copy and may be modified by the caller.
func (e *Editor) Scene() []Item {
	shapes := e.store.Shapes()
	res := make([]Item, len(shapes))
	for i, s := range shapes {
		res[i] = Item{
			Shape:     s,
			Instances: symmetry.ExpandShape(s, e.sym),
			Selected:  e.store.IsSelected(s.ID),
		}
	}
	return res
}

// Instances returns the rendered instances of one shape.
func (e *Editor) Instances(id string) []symmetry.Instance {
	s, ok := e.store.Shape(id)
	if !ok {
		return nil
	}
	return symmetry.ExpandShape(s, e.sym)
}
