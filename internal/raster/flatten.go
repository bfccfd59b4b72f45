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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// polyline is one flattened subpath, in user space.
type polyline struct {
	pts    []vec.Vec2
	closed bool
}

// flatten converts p into polylines.  Curves are subdivided so that the
// error in device space stays below r.Flatness.  The returned slice is
// reused by the next call.
func (r *Rasteriser) flatten(p *path.Data) []polyline {
	r.polys = r.polys[:0]
	var cur *polyline
	var here vec.Vec2

	start := func(pt vec.Vec2) {
		r.polys = append(r.polys, polyline{pts: []vec.Vec2{pt}})
		cur = &r.polys[len(r.polys)-1]
	}
	lineTo := func(_, to vec.Vec2) {
		cur.pts = append(cur.pts, to)
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			here = p.Coords[k]
			start(here)
			k++
		case path.CmdLineTo:
			if cur == nil {
				start(here)
			}
			here = p.Coords[k]
			cur.pts = append(cur.pts, here)
			k++
		case path.CmdQuadTo:
			if cur == nil {
				start(here)
			}
			r.flattenQuad(here, p.Coords[k], p.Coords[k+1], lineTo)
			here = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			if cur == nil {
				start(here)
			}
			r.flattenCubic(here, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			here = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != nil {
				cur.closed = true
				here = cur.pts[0]
				cur = nil
			}
		}
	}
	return r.polys
}

// flattenQuad splits a quadratic Bézier curve into n segments, with n
// chosen from the device space size of the second difference.
func (r *Rasteriser) flattenQuad(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	d := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if d > r.Flatness {
		n = int(math.Ceil(math.Sqrt(d / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic is like flattenQuad for cubic curves, using Wang's bound.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(0.75*m/r.Flatness))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}
