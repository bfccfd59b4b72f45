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

package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/symmetry"
)

var single = symmetry.Config{Radial: 1}

func testShape(kind shape.Kind, x, y, size float64, fill string) *shape.Shape {
	return &shape.Shape{
		ID:      "s",
		Kind:    kind,
		Center:  vec.Vec2{X: x, Y: y},
		Size:    size,
		Fill:    shape.Paint{Color: fill},
		Visible: true,
	}
}

type uniformTextures struct {
	col   color.RGBA
	calls int
}

func (u *uniformTextures) Texture(ref string) (image.Image, error) {
	u.calls++
	if ref != "rice.png" {
		return nil, ErrNoTexture
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = u.col.R, u.col.G, u.col.B, u.col.A
	}
	return img, nil
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestRenderSolid(t *testing.T) {
	shapes := []*shape.Shape{testShape(shape.Circle, 400, 400, 100, "#ff0000")}
	img, err := Render(shapes, single, &Options{Size: 800})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(400, 400); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center = %v, want opaque red", got)
	}
	if got := img.RGBAAt(10, 10); got.A != 0 {
		t.Errorf("corner = %v, want transparent", got)
	}
}

func TestRenderScale(t *testing.T) {
	shapes := []*shape.Shape{testShape(shape.Square, 100, 100, 50, "#00ff00")}
	img, err := Render(shapes, single, &Options{Size: 400})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Fatalf("bounds = %v", b)
	}
	// the square covers [50,150]² in canvas units, [25,75]² in pixels
	if got := img.RGBAAt(50, 50); got.G != 255 || got.A != 255 {
		t.Errorf("inside = %v", got)
	}
	if got := img.RGBAAt(80, 50); got.A != 0 {
		t.Errorf("outside = %v", got)
	}
}

func TestRenderSymmetry(t *testing.T) {
	shapes := []*shape.Shape{testShape(shape.Circle, 400, 200, 30, "#0000ff")}
	cfg := symmetry.Config{Radial: 4}
	img, err := Render(shapes, cfg, &Options{Size: 800})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []image.Point{{400, 200}, {600, 400}, {400, 600}, {200, 400}} {
		if got := img.RGBAAt(p.X, p.Y); got.B != 255 || got.A != 255 {
			t.Errorf("instance at %v: %v", p, got)
		}
	}
	if got := img.RGBAAt(400, 400); got.A != 0 {
		t.Errorf("center = %v, want transparent", got)
	}
}

func TestRenderHidden(t *testing.T) {
	s := testShape(shape.Square, 400, 400, 100, "#ffffff")
	s.Visible = false
	img, err := Render([]*shape.Shape{s}, single, &Options{Size: 800})
	if err != nil {
		t.Fatal(err)
	}
	got := img.RGBAAt(400, 400)
	if !near(got.A, 26, 1) || !near(got.R, 26, 1) {
		t.Errorf("hidden shape pixel = %v, want about 10%% white", got)
	}
}

func TestRenderRing(t *testing.T) {
	s := testShape(shape.Ring, 400, 400, 100, "#000000")
	img, err := Render([]*shape.Shape{s}, single, &Options{Size: 800, Background: "#fff"})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(400, 400); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("hole = %v, want background", got)
	}
	if got := img.RGBAAt(400, 490); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("band = %v, want black", got)
	}
}

func TestRenderStroke(t *testing.T) {
	s := testShape(shape.Circle, 400, 400, 100, "none")
	s.Stroke = "#000000"
	s.StrokeWidth = 6
	img, err := Render([]*shape.Shape{s}, single, &Options{Size: 800})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(400, 400); got.A != 0 {
		t.Errorf("interior = %v, want transparent", got)
	}
	if got := img.RGBAAt(500, 400); got.A < 250 {
		t.Errorf("outline = %v, want opaque", got)
	}
}

func TestRenderTexture(t *testing.T) {
	s := testShape(shape.Square, 400, 400, 100, "")
	s.Fill.SetTexture("rice.png")
	s.Fill.TextureDensity = 0.5
	s2 := s.Clone()
	s2.Center = vec.Vec2{X: 100, Y: 100}
	s2.Size = 20

	tex := &uniformTextures{col: color.RGBA{0, 0, 200, 255}}
	img, err := Render([]*shape.Shape{s, s2}, single, &Options{Size: 800, Textures: tex})
	if err != nil {
		t.Fatal(err)
	}
	got := img.RGBAAt(400, 400)
	if !near(got.B, 200, 2) || got.R != 0 || got.A != 255 {
		t.Errorf("textured pixel = %v", got)
	}
	if tex.calls != 1 {
		t.Errorf("texture loaded %d times, want 1", tex.calls)
	}

	s.Fill.SetTexture("missing.png")
	_, err = Render([]*shape.Shape{s}, single, &Options{Textures: tex})
	if !errors.Is(err, ErrNoTexture) {
		t.Errorf("missing texture: got %v", err)
	}

	// without a texture source, textures are painted gray
	img, err = Render([]*shape.Shape{s2}, single, &Options{Size: 800})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(100, 100); !near(got.R, 128, 1) || got.R != got.G || got.A != 255 {
		t.Errorf("fallback pixel = %v", got)
	}
}

func TestBadColor(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*shape.Shape, *Options)
	}{
		{"fill", func(s *shape.Shape, _ *Options) { s.Fill.Color = "#12345" }},
		{"stroke", func(s *shape.Shape, _ *Options) { s.Stroke = "red"; s.StrokeWidth = 1 }},
		{"background", func(_ *shape.Shape, opt *Options) { opt.Background = "#xyz" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := testShape(shape.Circle, 400, 400, 50, "#ff0000")
			opt := &Options{Size: 100}
			tc.modify(s, opt)
			shapes := []*shape.Shape{s}

			if _, err := Render(shapes, single, opt); !errors.Is(err, ErrBadColor) {
				t.Errorf("Render: got %v", err)
			}
			if err := SVG(&bytes.Buffer{}, shapes, single, opt); !errors.Is(err, ErrBadColor) {
				t.Errorf("SVG: got %v", err)
			}
			fname := filepath.Join(t.TempDir(), "out.pdf")
			if err := PDF(fname, shapes, single, opt); !errors.Is(err, ErrBadColor) {
				t.Errorf("PDF: got %v", err)
			}
		})
	}
}

func TestPNG(t *testing.T) {
	shapes := []*shape.Shape{testShape(shape.Petal, 400, 300, 60, "#ff9f1c")}
	var done []int
	opt := &Options{Progress: func(d, total int) {
		if total != 1 {
			t.Errorf("total = %d", total)
		}
		done = append(done, d)
	}}

	buf := &bytes.Buffer{}
	if err := PNG(buf, shapes, symmetry.Default, opt); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != DefaultPNGSize || b.Dy() != DefaultPNGSize {
		t.Errorf("bounds = %v", b)
	}
	if len(done) != 1 || done[0] != 1 {
		t.Errorf("progress = %v", done)
	}
}

func TestSVG(t *testing.T) {
	hidden := testShape(shape.Ring, 400, 200, 40, "#e71d36")
	hidden.Visible = false
	hidden.Stroke = "#111827"
	hidden.StrokeWidth = 2
	tex := testShape(shape.Star, 300, 300, 40, "")
	tex.Fill.SetTexture("rice.png")
	tex.Fill.TextureDensity = 0.5
	shapes := []*shape.Shape{
		testShape(shape.Circle, 400, 300, 20, "#FF9F1C"),
		hidden,
		tex,
	}

	cfg := symmetry.Config{Radial: 3, MirrorVertical: true}
	buf := &bytes.Buffer{}
	if err := SVG(buf, shapes, cfg, &Options{Background: "#ffffff"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	count := func(s string) int { return strings.Count(out, s) }
	if n := count("<path "); n != 3*cfg.Count() {
		t.Errorf("%d path elements, want %d", n, 3*cfg.Count())
	}
	if n := count(`fill-rule="evenodd"`); n != cfg.Count() {
		t.Errorf("%d even-odd paths, want %d", n, cfg.Count())
	}
	if n := count(`opacity="0.1"`); n != cfg.Count() {
		t.Errorf("%d hidden paths, want %d", n, cfg.Count())
	}
	if n := count(`stroke="#111827" stroke-width="2"`); n != cfg.Count() {
		t.Errorf("%d stroked paths, want %d", n, cfg.Count())
	}
	if n := count("<pattern "); n != 1 {
		t.Errorf("%d patterns, want 1", n)
	}
	for _, want := range []string{
		`viewBox="0 0 800 800"`,
		`patternTransform="scale(0.5)"`,
		`href="rice.png"`,
		`fill="url(#tex0)"`,
		`fill="#ff9f1c"`,
		`<rect width="800" height="800" fill="#ffffff"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %s", want)
		}
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document not terminated")
	}
}

func TestPathData(t *testing.T) {
	s := testShape(shape.Square, 100, 100, 10, "#000")
	var buf bytes.Buffer
	if err := SVG(&buf, []*shape.Shape{s}, single, nil); err != nil {
		t.Fatal(err)
	}
	want := `d="M90 90 L110 90 L110 110 L90 110 Z"`
	if !strings.Contains(buf.String(), want) {
		t.Errorf("got %s, want %s", buf.String(), want)
	}

	for _, tc := range []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0.1, "0.1"},
		{1.23456, "1.235"},
		{-0.0001, "0"},
	} {
		if got := fmtNum(tc.in); got != tc.want {
			t.Errorf("fmtNum(%g) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPDF(t *testing.T) {
	hidden := testShape(shape.Lotus, 400, 300, 40, "#2ec4b6")
	hidden.Visible = false
	shapes := []*shape.Shape{
		testShape(shape.Marigold, 400, 200, 40, "#ff9f1c"),
		testShape(shape.Ring, 400, 400, 80, "#e71d36"),
		hidden,
	}
	shapes[0].Stroke = "#000"
	shapes[0].StrokeWidth = 1.5

	fname := filepath.Join(t.TempDir(), "design.pdf")
	if err := PDF(fname, shapes, symmetry.Default, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("not a PDF file: %q", data[:min(len(data), 10)])
	}
}

func TestDirTextures(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	f, err := os.Create(filepath.Join(dir, "kolam.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	src := DirTextures(dir)
	got, err := src.Texture("kolam.png")
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 4 {
		t.Errorf("bounds = %v", got.Bounds())
	}

	if _, err := src.Texture("../kolam.png"); !errors.Is(err, ErrNoTexture) {
		t.Errorf("escape: got %v", err)
	}
	if _, err := src.Texture("absent.png"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("absent: got %v", err)
	}
}

func BenchmarkRender(b *testing.B) {
	shapes := []*shape.Shape{
		testShape(shape.Marigold, 400, 200, 60, "#ff9f1c"),
		testShape(shape.Petal, 400, 300, 40, "#e71d36"),
		testShape(shape.Ring, 400, 400, 100, "#2ec4b6"),
	}
	opt := &Options{Size: 800}
	for b.Loop() {
		if _, err := Render(shapes, symmetry.Default, opt); err != nil {
			b.Fatal(err)
		}
	}
}
