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

package geometry

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// curveSteps is the number of line segments used per curve segment when
// flattening for hit testing.
const curveSteps = 16

// Flatten approximates the path by closed polygons, one per subpath.
func Flatten(p *path.Data) [][]vec.Vec2 {
	var res [][]vec.Vec2
	var cur []vec.Vec2
	var current vec.Vec2

	flush := func() {
		if len(cur) > 1 {
			res = append(res, cur)
		}
		cur = nil
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			current = p.Coords[coordIdx]
			cur = append(cur, current)
			coordIdx++

		case path.CmdLineTo:
			current = p.Coords[coordIdx]
			cur = append(cur, current)
			coordIdx++

		case path.CmdQuadTo:
			p0, p1, p2 := current, p.Coords[coordIdx], p.Coords[coordIdx+1]
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				omt := 1 - t
				cur = append(cur, p0.Mul(omt*omt).Add(p1.Mul(2*omt*t)).Add(p2.Mul(t*t)))
			}
			current = p2
			coordIdx += 2

		case path.CmdCubeTo:
			p0, p1, p2, p3 := current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2]
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				omt := 1 - t
				pt := p0.Mul(omt * omt * omt).
					Add(p1.Mul(3 * omt * omt * t)).
					Add(p2.Mul(3 * omt * t * t)).
					Add(p3.Mul(t * t * t))
				cur = append(cur, pt)
			}
			current = p3
			coordIdx += 3

		case path.CmdClose:
			flush()
		}
	}
	flush()
	return res
}

// Contains reports whether pt lies inside the outline, using the
// outline's fill rule.
func (o Outline) Contains(pt vec.Vec2) bool {
	var polys [][]vec.Vec2
	if o.Vertices != nil {
		polys = [][]vec.Vec2{o.Vertices}
	} else if o.Path != nil {
		polys = Flatten(o.Path)
	}

	winding := 0
	for _, poly := range polys {
		winding += windingNumber(poly, pt)
	}
	if o.EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// windingNumber returns the number of times the closed polygon winds
// around pt.
func windingNumber(poly []vec.Vec2, pt vec.Vec2) int {
	w := 0
	n := len(poly)
	for i := range n {
		a := poly[i]
		b := poly[(i+1)%n]
		cross := (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
		if a.Y <= pt.Y {
			if b.Y > pt.Y && cross > 0 {
				w++
			}
		} else if b.Y <= pt.Y && cross < 0 {
			w--
		}
	}
	return w
}
