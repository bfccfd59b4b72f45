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

// Package shape defines the authored shape record of a pookalam design.
//
// One [Shape] exists per user placement, independent of how many copies
// symmetry produces when the design is drawn.
package shape

import "seehuhn.de/go/geom/vec"

// Paint is the fill of a shape: either a solid color or a texture
// reference, never both.
type Paint struct {
	Color   string // CSS-style color, e.g. "#ff9f1c"
	Texture string // texture reference, empty for solid fills

	// TextureDensity scales the texture tile. Zero means 1.
	TextureDensity float64
}

// SetColor switches the paint to a solid color.
func (p *Paint) SetColor(c string) {
	p.Color = c
	p.Texture = ""
}

// SetTexture switches the paint to a texture.
func (p *Paint) SetTexture(ref string) {
	p.Texture = ref
	p.Color = ""
}

// IsTexture reports whether the paint refers to a texture.
func (p Paint) IsTexture() bool {
	return p.Texture != ""
}

// Density returns the texture scale factor, treating zero as 1.
func (p Paint) Density() float64 {
	if p.TextureDensity <= 0 {
		return 1
	}
	return p.TextureDensity
}

// Shape is one authored shape.
type Shape struct {
	ID     string
	Kind   Kind
	Center vec.Vec2 // canvas coordinates, not clamped
	Size   float64  // radius, half side or outer radius, depending on Kind

	// Sides and InnerRatio are only consulted for the kinds which use them.
	// Nil means "use the generator default".
	Sides      *int
	InnerRatio *float64

	Rotation float64 // degrees, interpreted mod 360

	Fill        Paint
	Stroke      string
	StrokeWidth float64

	Visible bool
	Locked  bool
}

// HiddenOpacity is the opacity used to draw shapes which are not visible.
const HiddenOpacity = 0.1

// Opacity returns the opacity used when drawing s.
func (s *Shape) Opacity() float64 {
	if s.Visible {
		return 1
	}
	return HiddenOpacity
}

// Clone returns a deep copy of s.
func (s *Shape) Clone() *Shape {
	c := *s
	if s.Sides != nil {
		n := *s.Sides
		c.Sides = &n
	}
	if s.InnerRatio != nil {
		r := *s.InnerRatio
		c.InnerRatio = &r
	}
	return &c
}

// CloneAll returns a deep copy of an ordered shape collection.
func CloneAll(shapes []*Shape) []*Shape {
	if shapes == nil {
		return nil
	}
	res := make([]*Shape, len(shapes))
	for i, s := range shapes {
		res[i] = s.Clone()
	}
	return res
}

// Equal reports whether a and b describe the same shape.
func Equal(a, b *Shape) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Kind != b.Kind || a.Center != b.Center ||
		a.Size != b.Size || a.Rotation != b.Rotation || a.Fill != b.Fill ||
		a.Stroke != b.Stroke || a.StrokeWidth != b.StrokeWidth ||
		a.Visible != b.Visible || a.Locked != b.Locked {
		return false
	}
	if (a.Sides == nil) != (b.Sides == nil) || a.Sides != nil && *a.Sides != *b.Sides {
		return false
	}
	if (a.InnerRatio == nil) != (b.InnerRatio == nil) ||
		a.InnerRatio != nil && *a.InnerRatio != *b.InnerRatio {
		return false
	}
	return true
}

// EqualAll reports whether two ordered collections are deeply equal.
func EqualAll(a, b []*Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Draft holds the attributes of a shape before it is placed.
type Draft struct {
	Kind        Kind
	Center      vec.Vec2
	Size        float64
	Sides       *int
	InnerRatio  *float64
	Rotation    float64
	Fill        Paint
	Stroke      string
	StrokeWidth float64
}

// New turns the draft into a visible, unlocked shape with the given id.
func (d *Draft) New(id string) *Shape {
	s := &Shape{
		ID:          id,
		Kind:        d.Kind,
		Center:      d.Center,
		Size:        d.Size,
		Rotation:    d.Rotation,
		Fill:        d.Fill,
		Stroke:      d.Stroke,
		StrokeWidth: d.StrokeWidth,
		Visible:     true,
	}
	if d.Sides != nil {
		n := *d.Sides
		s.Sides = &n
	}
	if d.InnerRatio != nil {
		r := *d.InnerRatio
		s.InnerRatio = &r
	}
	return s
}

// Patch is a partial update of a shape.  Nil fields are left unchanged.
type Patch struct {
	Kind           *Kind
	Center         *vec.Vec2
	Size           *float64
	Sides          *int
	InnerRatio     *float64
	Rotation       *float64
	Color          *string // clears the texture
	Texture        *string // clears the color
	TextureDensity *float64
	Stroke         *string
	StrokeWidth    *float64
	Visible        *bool
	Locked         *bool
}

// Apply merges the non-nil fields of p into s.
func (s *Shape) Apply(p *Patch) {
	if p == nil {
		return
	}
	if p.Kind != nil {
		s.Kind = *p.Kind
	}
	if p.Center != nil {
		s.Center = *p.Center
	}
	if p.Size != nil {
		s.Size = *p.Size
	}
	if p.Sides != nil {
		n := *p.Sides
		s.Sides = &n
	}
	if p.InnerRatio != nil {
		r := *p.InnerRatio
		s.InnerRatio = &r
	}
	if p.Rotation != nil {
		s.Rotation = *p.Rotation
	}
	if p.Color != nil {
		s.Fill.SetColor(*p.Color)
	}
	if p.Texture != nil {
		s.Fill.SetTexture(*p.Texture)
	}
	if p.TextureDensity != nil {
		s.Fill.TextureDensity = *p.TextureDensity
	}
	if p.Stroke != nil {
		s.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		s.StrokeWidth = *p.StrokeWidth
	}
	if p.Visible != nil {
		s.Visible = *p.Visible
	}
	if p.Locked != nil {
		s.Locked = *p.Locked
	}
}

// Ptr returns a pointer to v.  It is a convenience for building patches.
func Ptr[T any](v T) *T {
	return &v
}
