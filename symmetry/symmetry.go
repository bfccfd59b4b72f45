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

// Package symmetry derives the rendered copies of an authored shape.
//
// Given the position and rotation of a shape and a [Config], [Expand]
// lists every instance which must be drawn, in a fixed order:
//
//  1. the primary instance, unchanged;
//  2. the mirrors of the primary instance;
//  3. for i = 1, ..., Radial-1, the primary rotated about the canvas
//     center by i·360°/Radial, each immediately followed by its mirrors.
//
// The mirrors of a radial copy are obtained by reflecting the radial
// copy itself across the canvas axes.  This is not the same as rotating
// the mirrors of the primary instance, and callers must not rely on the
// result forming a dihedral group.
package symmetry

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pookalam/geometry"
	"seehuhn.de/go/pookalam/shape"
)

// MaxRadial is the largest supported radial copy count.
const MaxRadial = 64

// Config is the global symmetry setting.  It applies to every shape.
type Config struct {
	Radial           int  // number of radial copies including the original
	MirrorVertical   bool // reflect across the vertical axis (x ↦ size-x)
	MirrorHorizontal bool // reflect across the horizontal axis (y ↦ size-y)
}

// Default is the symmetry of a new design.
var Default = Config{Radial: 8}

// Normalize returns c with the radial count clamped to [1, MaxRadial].
func (c Config) Normalize() Config {
	c.Radial = min(max(c.Radial, 1), MaxRadial)
	return c
}

// ClampRadial converts an arbitrary number to a valid radial count,
// rounding down and clamping to [1, MaxRadial].
func ClampRadial(x float64) int {
	if math.IsNaN(x) {
		return 1
	}
	x = math.Floor(x)
	if x < 1 {
		return 1
	}
	if x > MaxRadial {
		return MaxRadial
	}
	return int(x)
}

// MirrorCount returns the number of mirror variants per instance.
func (c Config) MirrorCount() int {
	switch {
	case c.MirrorVertical && c.MirrorHorizontal:
		return 3
	case c.MirrorVertical || c.MirrorHorizontal:
		return 1
	default:
		return 0
	}
}

// Count returns the number of instances [Expand] produces for c.
func (c Config) Count() int {
	return c.Normalize().Radial * (1 + c.MirrorCount())
}

func (c Config) String() string {
	s := fmt.Sprintf("radial=%d", c.Normalize().Radial)
	if c.MirrorVertical {
		s += " mirror-v"
	}
	if c.MirrorHorizontal {
		s += " mirror-h"
	}
	return s
}

// Role describes how an instance was derived.
type Role int

// These are the possible roles of an instance.
const (
	Primary Role = iota
	Mirror
	Radial
	RadialMirror
)

func (r Role) String() string {
	switch r {
	case Primary:
		return "primary"
	case Mirror:
		return "mirror"
	case Radial:
		return "radial"
	case RadialMirror:
		return "radial-mirror"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Instance is one rendered copy of a shape.
type Instance struct {
	Center   vec.Vec2
	Rotation float64 // degrees, not normalised

	Role   Role
	Step   int // radial step, 0 for the primary and its mirrors
	Mirror int // index into the active mirror variants, -1 if none
}

// Key returns an identifier for the instance which is stable as long as
// the symmetry configuration does not change.
func (inst Instance) Key(id string) string {
	switch inst.Role {
	case Mirror:
		return fmt.Sprintf("%s-m%d", id, inst.Mirror)
	case Radial:
		return fmt.Sprintf("%s-r%d", id, inst.Step)
	case RadialMirror:
		return fmt.Sprintf("%s-rm%d-%d", id, inst.Step, inst.Mirror)
	default:
		return id
	}
}

// Mirrors returns the active mirror variants of an instance at the given
// center and rotation.  The result has [Config.MirrorCount] elements:
// the vertical mirror, the horizontal mirror and, if both are enabled,
// the point reflection through the canvas center.
//
// Zero rotations stay zero under all mirrors.
func Mirrors(center vec.Vec2, rotation float64, c Config) []Instance {
	var res []Instance
	size := geometry.CanvasSize
	if c.MirrorVertical {
		r := 0.0
		if rotation != 0 {
			r = 360 - rotation
		}
		res = append(res, Instance{
			Center:   vec.Vec2{X: size - center.X, Y: center.Y},
			Rotation: r,
		})
	}
	if c.MirrorHorizontal {
		r := 0.0
		if rotation != 0 {
			r = 180 - rotation
		}
		res = append(res, Instance{
			Center:   vec.Vec2{X: center.X, Y: size - center.Y},
			Rotation: r,
		})
	}
	if c.MirrorVertical && c.MirrorHorizontal {
		r := 0.0
		if rotation != 0 {
			r = math.Mod(rotation+180, 360)
		}
		res = append(res, Instance{
			Center:   vec.Vec2{X: size - center.X, Y: size - center.Y},
			Rotation: r,
		})
	}
	for i := range res {
		res[i].Mirror = i
	}
	return res
}

// Expand lists all instances of a shape at the given center and rotation.
// The primary instance always comes first.  The result is deterministic
// and Expand has no side effects.
func Expand(center vec.Vec2, rotation float64, c Config) []Instance {
	c = c.Normalize()
	res := make([]Instance, 0, c.Count())

	res = append(res, Instance{Center: center, Rotation: rotation, Role: Primary, Mirror: -1})
	for _, m := range Mirrors(center, rotation, c) {
		m.Role = Mirror
		res = append(res, m)
	}

	for i := 1; i < c.Radial; i++ {
		angle := float64(i) * 360 / float64(c.Radial)
		p := geometry.Rotate(center, geometry.CanvasCenter, angle)
		rot := rotation + angle
		res = append(res, Instance{Center: p, Rotation: rot, Role: Radial, Step: i, Mirror: -1})

		for _, m := range Mirrors(p, rot, c) {
			m.Role = RadialMirror
			m.Step = i
			res = append(res, m)
		}
	}
	return res
}

// ExpandShape lists all instances of s.
func ExpandShape(s *shape.Shape, c Config) []Instance {
	return Expand(s.Center, s.Rotation, c)
}

// Guides returns the directions, in degrees, of the radial guide lines
// drawn from the canvas center.
func Guides(c Config) []float64 {
	c = c.Normalize()
	res := make([]float64, c.Radial)
	for i := range res {
		res[i] = float64(i) / float64(c.Radial) * 360
	}
	return res
}
