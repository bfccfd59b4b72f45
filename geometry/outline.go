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

	"seehuhn.de/go/pookalam/shape"
)

// Outline is the renderable description of one shape instance.
type Outline struct {
	// Vertices holds the closed polygon for polygonal kinds.
	// It is nil for curved kinds.
	Vertices []vec.Vec2

	// Path is the outline as a path.  It is always set.
	Path *path.Data

	// EvenOdd is set if the outline must be filled using the even-odd
	// rule instead of the nonzero winding rule.
	EvenOdd bool
}

// Build returns the outline of s, drawn at the given center and rotation
// instead of the shape's own.  This is how symmetry instances are drawn.
//
// Missing optional parameters fall back to the per-kind defaults.  Out of
// range parameters are not corrected and may give degenerate geometry.
func Build(s *shape.Shape, center vec.Vec2, rotation float64) Outline {
	switch s.Kind {
	case shape.Circle:
		return Outline{Path: Circle(center, s.Size)}
	case shape.Square:
		return polygonal(Square(center, s.Size, rotation), false)
	case shape.Polygon:
		return polygonal(Polygon(center, s.Size, sides(s), rotation), false)
	case shape.Star:
		ratio := innerRatio(s, DefaultStarInnerRatio)
		return polygonal(Star(center, s.Size, sides(s), ratio, rotation), false)
	case shape.Ring:
		ratio := innerRatio(s, DefaultRingInnerRatio)
		return polygonal(Ring(center, s.Size, s.Size*ratio, rotation, RingSegments), true)
	case shape.Petal:
		return Outline{Path: Petal(center, s.Size, rotation)}
	case shape.Marigold:
		return Outline{Path: Marigold(center, s.Size, rotation)}
	case shape.Lotus:
		return Outline{Path: Lotus(center, s.Size, rotation)}
	case shape.Leaf:
		return Outline{Path: Leaf(center, s.Size, rotation)}
	default:
		return Outline{Path: &path.Data{}}
	}
}

// BuildShape returns the outline of s at its own position.
func BuildShape(s *shape.Shape) Outline {
	return Build(s, s.Center, s.Rotation)
}

func polygonal(pts []vec.Vec2, evenOdd bool) Outline {
	return Outline{
		Vertices: pts,
		Path:     Polyline(pts),
		EvenOdd:  evenOdd,
	}
}

func sides(s *shape.Shape) int {
	if s.Sides != nil {
		return *s.Sides
	}
	return DefaultSides
}

func innerRatio(s *shape.Shape, def float64) float64 {
	if s.InnerRatio != nil {
		return *s.InnerRatio
	}
	return def
}
