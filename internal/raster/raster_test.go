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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// render collects the output of one rasteriser call into a gray image.
func render(w, h int, draw func(emit EmitFunc)) []float32 {
	img := make([]float32, w*h)
	draw(func(y, xMin int, coverage []float32) {
		copy(img[y*w+xMin:], coverage)
	})
	return img
}

// TestTriangleCoverage checks exact coverage values for a thin triangle.
// The diagonal y = x/10 gives coverage (2x+1)/20 in pixel x.
func TestTriangleCoverage(t *testing.T) {
	tri := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{URx: 10, URy: 1})
	img := render(10, 1, func(emit EmitFunc) { r.FillNonZero(tri, emit) })

	for x := range 10 {
		want := float32(2*x+1) / 20
		if math.Abs(float64(img[x]-want)) > 1e-6 {
			t.Errorf("pixel %d: coverage %.4f, want %.4f", x, img[x], want)
		}
	}
}

func square(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	p := square(0, 0, 10, 10)
	inner := square(3, 3, 7, 7)
	p.Cmds = append(p.Cmds, inner.Cmds...)
	p.Coords = append(p.Coords, inner.Coords...)

	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	nz := render(10, 10, func(emit EmitFunc) { r.FillNonZero(p, emit) })
	eo := render(10, 10, func(emit EmitFunc) { r.FillEvenOdd(p, emit) })

	if nz[5*10+5] != 1 {
		t.Errorf("nonzero: center coverage %g, want 1", nz[55])
	}
	if eo[5*10+5] != 0 {
		t.Errorf("even-odd: center coverage %g, want 0", eo[55])
	}
	if nz[1*10+1] != 1 || eo[1*10+1] != 1 {
		t.Errorf("outer band: %g %g, want 1 1", nz[11], eo[11])
	}
}

func TestClipAndCTM(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 8, URy: 8})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 2, 2}

	// the unit square [0,2]² maps to [2,6]² in device space
	img := render(8, 8, func(emit EmitFunc) { r.FillNonZero(square(0, 0, 2, 2), emit) })
	for y := range 8 {
		for x := range 8 {
			want := float32(0)
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				want = 1
			}
			if math.Abs(float64(img[y*8+x]-want)) > 1e-6 {
				t.Errorf("(%d,%d): coverage %g, want %g", x, y, img[y*8+x], want)
			}
		}
	}

	// output outside the clip rectangle is never emitted
	r.Reset(rect.Rect{URx: 4, URy: 4})
	r.FillNonZero(square(-100, -100, 100, 100), func(y, xMin int, coverage []float32) {
		if y < 0 || y >= 4 || xMin < 0 || xMin+len(coverage) > 4 {
			t.Errorf("row %d [%d, %d) outside clip", y, xMin, xMin+len(coverage))
		}
	})
}

func circle(cx, cy, rad float64) *path.Data {
	const k = 0.5522847498
	p := &path.Data{}
	p.MoveTo(vec.Vec2{X: cx + rad, Y: cy})
	for i := range 4 {
		a0 := float64(i) * math.Pi / 2
		a1 := a0 + math.Pi/2
		p0 := vec.Vec2{X: cx + rad*math.Cos(a0), Y: cy + rad*math.Sin(a0)}
		p3 := vec.Vec2{X: cx + rad*math.Cos(a1), Y: cy + rad*math.Sin(a1)}
		c1 := p0.Add(vec.Vec2{X: -math.Sin(a0), Y: math.Cos(a0)}.Mul(k * rad))
		c2 := p3.Add(vec.Vec2{X: math.Sin(a1), Y: -math.Cos(a1)}.Mul(k * rad))
		p.CubeTo(c1, c2, p3)
	}
	return p.Close()
}

// regularPolygon returns an n-gon approximating a disc.
func regularPolygon(cx, cy, rad float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec.Vec2{X: cx + rad*math.Cos(a), Y: cy + rad*math.Sin(a)}
	}
	return pts
}

// TestDiscAgainstVector compares a filled disc with the output of
// golang.org/x/image/vector.
func TestDiscAgainstVector(t *testing.T) {
	const size = 64
	const n = 96
	pts := regularPolygon(32, 32, 20.5, n)

	p := &path.Data{}
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	p.Close()
	r := NewRasteriser(rect.Rect{URx: size, URy: size})
	img := render(size, size, func(emit EmitFunc) { r.FillNonZero(p, emit) })

	ref := vector.NewRasterizer(size, size)
	ref.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		ref.LineTo(float32(pt.X), float32(pt.Y))
	}
	ref.ClosePath()
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	ref.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

	var maxDiff, total float64
	for i, c := range img {
		diff := math.Abs(float64(c)*255 - float64(dst.Pix[i]))
		maxDiff = max(maxDiff, diff)
		total += float64(c)
	}
	if maxDiff > 4 {
		t.Errorf("max difference %g/255", maxDiff)
	}
	want := n / 2 * 20.5 * 20.5 * math.Sin(2*math.Pi/n)
	if math.Abs(total-want) > 0.05 {
		t.Errorf("total coverage %g, want %g", total, want)
	}
}

// TestCurveFlattening checks that flattened curves stay within the
// flatness tolerance, by comparing the area of a filled circle.
func TestCurveFlattening(t *testing.T) {
	for _, flat := range []float64{1, 0.25, 0.01} {
		t.Run(fmt.Sprint(flat), func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 100, URy: 100})
			r.Flatness = flat
			var total float64
			r.FillNonZero(circle(50, 50, 40), func(y, xMin int, coverage []float32) {
				for _, c := range coverage {
					total += float64(c)
				}
			})
			// chords lie inside the curve, at most flat away from it
			want := math.Pi * 40 * 40
			perimeter := 2 * math.Pi * 40
			if total > want+5 || total < want-perimeter*flat-5 {
				t.Errorf("area %g, want %g", total, want)
			}
		})
	}
}

func addCircleToVector(r *vector.Rasterizer, cx, cy, rad float32) {
	const k = float32(0.5522847498)
	kr := k * rad
	r.MoveTo(cx+rad, cy)
	r.CubeTo(cx+rad, cy+kr, cx+kr, cy+rad, cx, cy+rad)
	r.CubeTo(cx-kr, cy+rad, cx-rad, cy+kr, cx-rad, cy)
	r.CubeTo(cx-rad, cy-kr, cx-kr, cy-rad, cx, cy-rad)
	r.CubeTo(cx+kr, cy-rad, cx+rad, cy-kr, cx+rad, cy)
	r.ClosePath()
}

func TestStrokeLine(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 8, Y: 5})

	cases := []struct {
		cap    graphics.LineCapStyle
		x0, x1 int
	}{
		{graphics.LineCapButt, 2, 8},
		{graphics.LineCapSquare, 1, 9},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.cap), func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
			r.Width = 2
			r.Cap = c.cap
			img := render(10, 10, func(emit EmitFunc) { r.Stroke(line, emit) })
			for y := range 10 {
				for x := range 10 {
					want := float32(0)
					if y >= 4 && y < 6 && x >= c.x0 && x < c.x1 {
						want = 1
					}
					if math.Abs(float64(img[y*10+x]-want)) > 1e-5 {
						t.Errorf("(%d,%d): coverage %g, want %g", x, y, img[y*10+x], want)
					}
				}
			}
		})
	}
}

// TestStrokeClosedSquare checks that join pieces do not cancel the
// segment pieces they overlap.
func TestStrokeClosedSquare(t *testing.T) {
	for _, join := range []graphics.LineJoinStyle{graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel} {
		t.Run(fmt.Sprint(join), func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
			r.Width = 4
			r.Join = join
			img := render(20, 20, func(emit EmitFunc) { r.Stroke(square(5, 5, 15, 15), emit) })

			for _, p := range [][2]int{{10, 4}, {10, 5}, {15, 10}, {10, 15}, {4, 10}} {
				if c := img[p[1]*20+p[0]]; c < 1-1e-5 {
					t.Errorf("pixel %v: coverage %g, want 1", p, c)
				}
			}
			if c := img[10*20+10]; c > 1e-5 {
				t.Errorf("interior coverage %g, want 0", c)
			}
			corner := img[3*20+3]
			if join == graphics.LineJoinMiter && corner < 1-1e-5 {
				t.Errorf("miter corner coverage %g, want 1", corner)
			}
			if join == graphics.LineJoinBevel && corner > 1e-5 {
				t.Errorf("bevel corner coverage %g, want 0", corner)
			}
		})
	}
}

func TestStrokeDegenerate(t *testing.T) {
	dot := (&path.Data{}).MoveTo(vec.Vec2{X: 5, Y: 5}).LineTo(vec.Vec2{X: 5, Y: 5})
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	r.Width = 4

	called := false
	r.Stroke(dot, func(int, int, []float32) { called = true })
	if called {
		t.Error("butt cap on a zero length path produced output")
	}

	r.Cap = graphics.LineCapRound
	img := render(10, 10, func(emit EmitFunc) { r.Stroke(dot, emit) })
	if img[5*10+5] < 1-1e-5 {
		t.Errorf("round dot: center coverage %g, want 1", img[55])
	}
}

func BenchmarkFillDisc(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			disc := circle(float64(size)/2, float64(size)/2, float64(size)*0.45)

			b.ReportAllocs()
			for b.Loop() {
				r.FillNonZero(disc, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

func BenchmarkVectorDisc(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			c := float32(size) / 2

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, c, c, float32(size)*0.45)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}
