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

// Package geometry builds the outlines of the shape kinds.
//
// All functions in this package are pure.  Coordinates are in canvas
// space: the canvas is [CanvasSize] units wide and high, the origin is
// in the top-left corner and y grows downwards.  Angles are given in
// degrees.
package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Canvas dimensions in canvas units.
const (
	CanvasSize = 800.0
	Center     = CanvasSize / 2
)

// CanvasCenter is the pivot for radial symmetry.
var CanvasCenter = vec.Vec2{X: Center, Y: Center}

// Rotate rotates p about pivot by deg degrees.
//
// This is the rotation primitive shared by all generators and by the
// symmetry expansion.
func Rotate(p, pivot vec.Vec2, deg float64) vec.Vec2 {
	a := deg * math.Pi / 180
	s, c := math.Sincos(a)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return vec.Vec2{
		X: dx*c - dy*s + pivot.X,
		Y: dx*s + dy*c + pivot.Y,
	}
}

// rotateAll rotates the points in place and returns the slice.
func rotateAll(pts []vec.Vec2, pivot vec.Vec2, deg float64) []vec.Vec2 {
	if deg == 0 {
		return pts
	}
	for i, p := range pts {
		pts[i] = Rotate(p, pivot, deg)
	}
	return pts
}

// onCircle returns the point at angle a (radians) on the circle of
// radius r about c.
func onCircle(c vec.Vec2, r, a float64) vec.Vec2 {
	s, co := math.Sincos(a)
	return vec.Vec2{X: c.X + co*r, Y: c.Y + s*r}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
