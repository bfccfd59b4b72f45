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
	"seehuhn.de/go/pdf/graphics"
)

// Stroke draws the outline of p using Width, Cap, Join and MiterLimit.
//
// The stroke is built as a union of convex pieces: one quadrilateral per
// segment plus join and cap geometry.  All pieces share one orientation
// and are filled together with the nonzero rule, so overlaps are painted
// only once.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	if r.Width <= 0 {
		return
	}
	r.outline.Cmds = r.outline.Cmds[:0]
	r.outline.Coords = r.outline.Coords[:0]

	d := r.Width / 2
	for _, pl := range r.flatten(p) {
		pts := dedup(pl.pts)
		if pl.closed && len(pts) > 2 && pts[len(pts)-1] == pts[0] {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 2 {
			if len(pts) == 1 && r.Cap == graphics.LineCapRound {
				r.addDisc(pts[0], d)
			}
			continue
		}
		r.strokePolyline(pts, pl.closed && len(pts) > 2, d)
	}
	if len(r.outline.Cmds) == 0 {
		return
	}
	r.FillNonZero(&r.outline, emit)
}

func (r *Rasteriser) strokePolyline(pts []vec.Vec2, closed bool, d float64) {
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}

	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		nrm := normal(a, b).Mul(d)
		r.addPoly(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	for i := range n {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		prev := pts[(i+n-1)%n]
		next := pts[(i+1)%n]
		r.addJoin(prev, pts[i], next, d)
	}

	if !closed {
		r.addCap(pts[1], pts[0], d)
		r.addCap(pts[n-2], pts[n-1], d)
	}
}

// addJoin fills the gap between the segments a-p and p-b.
func (r *Rasteriser) addJoin(a, p, b vec.Vec2, d float64) {
	n1 := normal(a, p)
	n2 := normal(p, b)
	if n1.Sub(n2).Length() < collinearEpsilon {
		return
	}

	switch r.Join {
	case graphics.LineJoinRound:
		r.addDisc(p, d)
		return
	case graphics.LineJoinMiter:
		t1 := p.Sub(a)
		t2 := b.Sub(p)
		side := -1.0
		if t1.X*t2.Y-t1.Y*t2.X < 0 {
			side = 1
		}
		bis := n1.Add(n2)
		cosHalf := bis.Length() / 2
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit {
			tip := p.Add(bis.Mul(side * d / (2 * cosHalf * cosHalf)))
			r.addPoly(p, p.Add(n1.Mul(side*d)), tip, p.Add(n2.Mul(side*d)))
		}
	}

	// bevel on both sides; the inner one is covered by the segments
	r.addPoly(p, p.Add(n1.Mul(d)), p.Add(n2.Mul(d)))
	r.addPoly(p, p.Sub(n1.Mul(d)), p.Sub(n2.Mul(d)))
}

// addCap adds the cap at end point p of the segment from q to p.
func (r *Rasteriser) addCap(q, p vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(p, d)
	case graphics.LineCapSquare:
		nrm := normal(q, p).Mul(d)
		t := vec.Vec2{X: nrm.Y, Y: -nrm.X} // points away from q
		r.addPoly(p.Add(nrm), p.Add(nrm).Add(t), p.Sub(nrm).Add(t), p.Sub(nrm))
	}
}

// addDisc adds a regular polygon approximating the circle of radius d.
func (r *Rasteriser) addDisc(c vec.Vec2, d float64) {
	scale := math.Sqrt(math.Abs(r.CTM[0]*r.CTM[3] - r.CTM[1]*r.CTM[2]))
	rad := d * scale
	n := 8
	if rad > r.Flatness {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-r.Flatness/rad))))
	}
	pts := make([]vec.Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec.Vec2{X: c.X + d*math.Cos(a), Y: c.Y + d*math.Sin(a)}
	}
	r.addPoly(pts...)
}

// addPoly appends a closed polygon to the stroke outline, reversing it
// if necessary so that all pieces have positive orientation.
func (r *Rasteriser) addPoly(pts ...vec.Vec2) {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	r.outline.MoveTo(pts[0])
	for _, p := range pts[1:] {
		r.outline.LineTo(p)
	}
	r.outline.Close()
}

// normal returns the unit normal of the segment a-b, rotated 90° from
// the direction of travel.
func normal(a, b vec.Vec2) vec.Vec2 {
	t := b.Sub(a)
	l := t.Length()
	return vec.Vec2{X: -t.Y / l, Y: t.X / l}
}

// dedup removes consecutive duplicate points.
func dedup(pts []vec.Vec2) []vec.Vec2 {
	res := pts[:0:0]
	for i, p := range pts {
		if i > 0 && p.Sub(res[len(res)-1]).Length() < zeroLength {
			continue
		}
		res = append(res, p)
	}
	return res
}

const (
	zeroLength       = 1e-10
	collinearEpsilon = 1e-6
)
