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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Defaults for optional shape parameters.
const (
	DefaultSides          = 5
	DefaultStarInnerRatio = 0.5
	DefaultRingInnerRatio = 0.8

	// RingSegments is the number of vertices on each circle of a ring.
	RingSegments = 96

	// MinRingSegments is the smallest segment count [Ring] will use.
	MinRingSegments = 64
)

// Proportions of the curved presets, relative to the shape size.
const (
	petalHeight = 1.6

	marigoldSegments = 64
	marigoldBase     = 0.9
	marigoldAmp      = 0.1
	marigoldFreq     = 12

	lotusWidth  = 0.8
	lotusHeight = 1.5

	leafLength = 1.2
	leafWidth  = 0.5
)

// circleKappa places cubic Bézier control points for a quarter circle.
const circleKappa = 0.5522847498

// Polygon returns the vertices of a regular polygon.
// Vertex i lies at angle i/sides·360° + rotation.
func Polygon(center vec.Vec2, radius float64, sides int, rotation float64) []vec.Vec2 {
	if sides <= 0 {
		return nil
	}
	pts := make([]vec.Vec2, sides)
	rot := radians(rotation)
	for i := range sides {
		a := float64(i)/float64(sides)*2*math.Pi + rot
		pts[i] = onCircle(center, radius, a)
	}
	return pts
}

// Star returns the 2·points vertices of a star, alternating between the
// outer radius and radius·innerRatio.
func Star(center vec.Vec2, radius float64, points int, innerRatio, rotation float64) []vec.Vec2 {
	if points <= 0 {
		return nil
	}
	total := 2 * points
	pts := make([]vec.Vec2, total)
	rot := radians(rotation)
	for i := range total {
		r := radius
		if i%2 == 1 {
			r = radius * innerRatio
		}
		a := float64(i)/float64(total)*2*math.Pi + rot
		pts[i] = onCircle(center, r, a)
	}
	return pts
}

// Ring returns a closed contour for an annulus: the outer circle,
// followed by the inner circle in reverse order.  The contour must be
// filled with the even-odd rule.
func Ring(center vec.Vec2, outer, inner, rotation float64, segments int) []vec.Vec2 {
	segments = max(segments, MinRingSegments)
	pts := make([]vec.Vec2, 0, 2*segments)
	rot := radians(rotation)
	for i := range segments {
		a := float64(i)/float64(segments)*2*math.Pi + rot
		pts = append(pts, onCircle(center, outer, a))
	}
	for i := segments - 1; i >= 0; i-- {
		a := float64(i)/float64(segments)*2*math.Pi + rot
		pts = append(pts, onCircle(center, inner, a))
	}
	return pts
}

// Square returns the corners of a square with the given half side,
// rotated about its center.
func Square(center vec.Vec2, half, rotation float64) []vec.Vec2 {
	pts := []vec.Vec2{
		{X: center.X - half, Y: center.Y - half},
		{X: center.X + half, Y: center.Y - half},
		{X: center.X + half, Y: center.Y + half},
		{X: center.X - half, Y: center.Y + half},
	}
	return rotateAll(pts, center, rotation)
}

// Circle returns a circle made of four cubic Bézier arcs.
func Circle(center vec.Vec2, r float64) *path.Data {
	cx, cy := center.X, center.Y
	kr := circleKappa * r
	p := &path.Data{}
	p.MoveTo(vec.Vec2{X: cx, Y: cy - r})
	p.CubeTo(vec.Vec2{X: cx + kr, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - kr}, vec.Vec2{X: cx + r, Y: cy})
	p.CubeTo(vec.Vec2{X: cx + r, Y: cy + kr}, vec.Vec2{X: cx + kr, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r})
	p.CubeTo(vec.Vec2{X: cx - kr, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + kr}, vec.Vec2{X: cx - r, Y: cy})
	p.CubeTo(vec.Vec2{X: cx - r, Y: cy - kr}, vec.Vec2{X: cx - kr, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r})
	p.Close()
	return p
}

// Petal returns a lens shaped petal of width size and height 1.6·size.
// The four points top, right, bottom and left are joined by two
// quadratic segments; right and left act as control points.
func Petal(center vec.Vec2, size, rotation float64) *path.Data {
	rx := size / 2
	ry := size * petalHeight / 2
	pts := rotateAll([]vec.Vec2{
		{X: center.X, Y: center.Y - ry},
		{X: center.X + rx, Y: center.Y},
		{X: center.X, Y: center.Y + ry},
		{X: center.X - rx, Y: center.Y},
	}, center, rotation)

	p := &path.Data{}
	p.MoveTo(pts[0])
	p.QuadTo(pts[1], pts[2])
	p.QuadTo(pts[3], pts[0])
	p.Close()
	return p
}

// Marigold returns a scalloped disc with twelve lobes,
// r(θ) = size·(0.9 + 0.1·cos 12θ).
func Marigold(center vec.Vec2, size, rotation float64) *path.Data {
	rot := radians(rotation)
	p := &path.Data{}
	for i := 0; i <= marigoldSegments; i++ {
		theta := float64(i) / marigoldSegments * 2 * math.Pi
		r := size * (marigoldBase + marigoldAmp*math.Cos(marigoldFreq*theta))
		pt := onCircle(center, r, theta+rot)
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	p.Close()
	return p
}

// Lotus returns a pointed bud, 0.8·size wide and 1.5·size high.
func Lotus(center vec.Vec2, size, rotation float64) *path.Data {
	w := size * lotusWidth
	h := size * lotusHeight
	pts := rotateAll([]vec.Vec2{
		{X: center.X, Y: center.Y - h/2},
		{X: center.X + w/2, Y: center.Y},
		{X: center.X, Y: center.Y + h/2},
		{X: center.X - w/2, Y: center.Y},
	}, center, rotation)

	p := &path.Data{}
	p.MoveTo(pts[0])
	p.CubeTo(pts[1], pts[1], pts[2])
	p.CubeTo(pts[3], pts[3], pts[0])
	p.Close()
	return p
}

// Leaf returns an asymmetric mango leaf, 1.2·size long.
// The two sides bulge at opposite ends of the leaf.
func Leaf(center vec.Vec2, size, rotation float64) *path.Data {
	l := size * leafLength
	w := size * leafWidth
	pts := rotateAll([]vec.Vec2{
		{X: center.X, Y: center.Y + l/2},     // stem
		{X: center.X + w, Y: center.Y + l/4}, // right bulge
		{X: center.X, Y: center.Y - l/2},     // tip
		{X: center.X - w, Y: center.Y - l/4}, // left bulge
	}, center, rotation)

	p := &path.Data{}
	p.MoveTo(pts[0])
	p.QuadTo(pts[1], pts[2])
	p.QuadTo(pts[3], pts[0])
	p.Close()
	return p
}

// Polyline turns a vertex list into a closed path.
func Polyline(pts []vec.Vec2) *path.Data {
	p := &path.Data{}
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	if len(pts) > 0 {
		p.Close()
	}
	return p
}
