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

// Package raster converts shape outlines into anti-aliased pixel coverage.
//
// Coverage is computed exactly for the flattened outline, using signed
// area accumulation along each scanline.  Results are delivered row by row
// through a callback, so that callers can composite directly into any
// pixel format.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one pixel row, starting at column
// xMin.  Values range from 0 (outside) to 1 (inside).  The slice is only
// valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device space, oriented top to bottom.
type edge struct {
	xTop, yTop float64
	yBot       float64
	dxdy       float64
	dir        float32 // +1 if the original segment pointed down, else -1
}

func (e *edge) x(y float64) float64 {
	return e.xTop + e.dxdy*(y-e.yTop)
}

// Rasteriser fills and strokes paths.  Internal buffers are kept between
// calls, so one instance should be reused for many paths.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  It must be invertible.
	CTM matrix.Matrix

	// Clip limits the output to this device space rectangle, which must
	// have integer coordinates.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and its polygonal approximation.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap and Join select the stroke end and corner styles.
	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to Width.
	MiterLimit float64

	edges  []edge
	active []int
	cover  []float32
	area   []float32

	devMin, devMax vec.Vec2 // device bounding box of the edges
	haveBBox       bool

	polys []polyline

	outline path.Data // stroke outline under construction
}

// NewRasteriser returns a rasteriser for the given clip rectangle, with
// the identity transformation and default stroke settings.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default settings and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinRound
	r.MiterLimit = defaultMiterLimit
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, false, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, true, emit)
}

func (r *Rasteriser) fill(p *path.Data, evenOdd bool, emit EmitFunc) {
	r.edges = r.edges[:0]
	r.haveBBox = false
	for _, pl := range r.flatten(p) {
		n := len(pl.pts)
		for i := 1; i < n; i++ {
			r.addEdge(pl.pts[i-1], pl.pts[i])
		}
		if n > 1 && pl.pts[n-1] != pl.pts[0] {
			r.addEdge(pl.pts[n-1], pl.pts[0])
		}
	}
	if len(r.edges) == 0 {
		return
	}

	x0 := max(int(math.Floor(r.devMin.X)), int(r.Clip.LLx))
	x1 := min(int(math.Floor(r.devMax.X))+1, int(r.Clip.URx))
	y0 := max(int(math.Floor(r.devMin.Y)), int(r.Clip.LLy))
	y1 := min(int(math.Floor(r.devMax.Y))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return
	}
	r.scan(x0, x1, y0, y1, evenOdd, emit)
}

// linear applies the linear part of the CTM, for flatness estimates.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasteriser) device(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y + r.CTM[4],
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y + r.CTM[5],
	}
}

// addEdge records the user space segment a-b.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	a, b = r.device(a), r.device(b)
	if !r.haveBBox {
		r.haveBBox = true
		r.devMin = vec.Vec2{X: min(a.X, b.X), Y: min(a.Y, b.Y)}
		r.devMax = vec.Vec2{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
	} else {
		r.devMin = vec.Vec2{X: min(r.devMin.X, a.X, b.X), Y: min(r.devMin.Y, a.Y, b.Y)}
		r.devMax = vec.Vec2{X: max(r.devMax.X, a.X, b.X), Y: max(r.devMax.Y, a.Y, b.Y)}
	}

	if math.Abs(b.Y-a.Y) < horizontalEpsilon {
		return
	}
	var dir float32 = 1
	if b.Y < a.Y {
		a, b = b, a
		dir = -1
	}
	r.edges = append(r.edges, edge{
		xTop: a.X,
		yTop: a.Y,
		yBot: b.Y,
		dxdy: (b.X - a.X) / (b.Y - a.Y),
		dir:  dir,
	})
}

// scan runs over the rows y0, ..., y1-1 with an active edge list.
func (r *Rasteriser) scan(x0, x1, y0, y1 int, evenOdd bool, emit EmitFunc) {
	width := x1 - x0
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yTop, b.yTop)
	})
	r.active = r.active[:0]
	next := 0

	for y := y0; y < y1; y++ {
		top, bot := float64(y), float64(y+1)
		for next < len(r.edges) && r.edges[next].yTop < bot {
			r.active = append(r.active, next)
			next++
		}
		r.active = slices.DeleteFunc(r.active, func(i int) bool {
			return r.edges[i].yBot <= top
		})
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], top, bot, x0)
		}

		if evenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if row, offs := trim(r.cover); row != nil {
			emit(y, x0+offs, row)
		}
	}
}

// accumulate adds the part of e inside the row [top, bot) to the
// cover and area buffers.  Index 0 of the buffers is pixel column x0;
// contributions left of x0 are folded into column 0.
func (r *Rasteriser) accumulate(e *edge, top, bot float64, x0 int) {
	top = max(top, e.yTop)
	bot = min(bot, e.yBot)
	if bot <= top {
		return
	}
	xt, xb := e.x(top), e.x(bot)
	lo, hi := min(xt, xb), max(xt, xb)
	first, last := int(math.Floor(lo)), int(math.Floor(hi))

	if first == last {
		r.deposit(first-x0, e.dir*float32(bot-top), (lo+hi)/2-float64(first))
		return
	}
	dy := (bot - top) / (hi - lo)
	if left := float64(x0); lo < left {
		r.deposit(-1, e.dir*float32((min(hi, left)-lo)*dy), 0)
	}
	for col := max(first, x0); col <= min(last, x0+len(r.cover)-1); col++ {
		a := max(lo, float64(col))
		b := min(hi, float64(col+1))
		if b <= a {
			continue
		}
		r.deposit(col-x0, e.dir*float32((b-a)*dy), (a+b)/2-float64(col))
	}
}

// deposit adds a vertical extent c, crossing at horizontal pixel
// position frac, to column i.
func (r *Rasteriser) deposit(i int, c float32, frac float64) {
	switch {
	case i < 0:
		r.cover[0] += c
		r.area[0] += c
	case i < len(r.cover):
		r.cover[i] += c
		r.area[i] += c * float32(1-frac)
	}
}

// integrateNonZero turns accumulated cover and area into coverage for the
// nonzero winding rule.  The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		cover[i] = min(abs32(v), 1)
	}
}

// integrateEvenOdd is like integrateNonZero, for the even-odd rule.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := abs32(acc + area[i])
		acc += cover[i]
		v -= 2 * float32(int(v/2))
		cover[i] = 1 - abs32(1-v)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trim strips zero coverage from both ends of a row.
func trim(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row)
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

const (
	// defaultFlatness is the curve tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF default.
	defaultMiterLimit = 10.0

	horizontalEpsilon = 1e-10
)
