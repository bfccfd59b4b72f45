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
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/pookalam/geometry"
	"seehuhn.de/go/pookalam/internal/raster"
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/symmetry"
)

// neutral is used for textures which cannot be resolved.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// PNG renders the design and writes it as a PNG image.
func PNG(w io.Writer, shapes []*shape.Shape, cfg symmetry.Config, opt *Options) error {
	img, err := Render(shapes, cfg, opt)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Render draws the design into a new RGBA image.
func Render(shapes []*shape.Shape, cfg symmetry.Config, opt *Options) (*image.RGBA, error) {
	size := opt.size()
	scale := float64(size) / geometry.CanvasSize

	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, size, size)),
		r:     raster.NewRasteriser(rect.Rect{URx: float64(size), URy: float64(size)}),
		tiles: make(map[tileKey]*image.RGBA),
		scale: scale,
	}
	if opt != nil {
		c.textures = opt.Textures
	}

	if opt != nil && opt.Background != "" {
		bg, ok, err := parseColor(opt.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		if ok {
			c.fillRect(bg)
		}
	}

	err := walk(shapes, cfg, opt, false, c.draw)
	if err != nil {
		return nil, err
	}
	return c.img, nil
}

type tileKey struct {
	ref     string
	density float64
}

// canvas composites instances into an image.
type canvas struct {
	img      *image.RGBA
	r        *raster.Rasteriser
	textures TextureSource
	tiles    map[tileKey]*image.RGBA
	scale    float64
}

func (c *canvas) draw(it item) error {
	s := it.shape
	alpha := s.Opacity()

	c.r.Reset(c.r.Clip)
	c.r.CTM = matrix.Scale(c.scale, c.scale)

	var src func(x, y int) (colorful.Color, float64)
	if s.Fill.IsTexture() {
		tile, err := c.tile(s.Fill)
		if err != nil {
			return err
		}
		if tile != nil {
			src = tileSource(tile)
		} else {
			src = solidSource(neutral)
		}
	} else {
		col, ok, err := parseColor(s.Fill.Color)
		if err != nil {
			return fmt.Errorf("fill: %w", err)
		}
		if ok {
			src = solidSource(col)
		}
	}
	if src != nil {
		emit := c.compositor(src, alpha)
		if it.outline.EvenOdd {
			c.r.FillEvenOdd(it.outline.Path, emit)
		} else {
			c.r.FillNonZero(it.outline.Path, emit)
		}
	}

	if s.StrokeWidth > 0 {
		col, ok, err := parseColor(s.Stroke)
		if err != nil {
			return fmt.Errorf("stroke: %w", err)
		}
		if ok {
			c.r.Width = s.StrokeWidth
			c.r.Join = graphics.LineJoinMiter
			c.r.MiterLimit = svgMiterLimit
			c.r.Stroke(it.outline.Path, c.compositor(solidSource(col), alpha))
		}
	}
	return nil
}

// svgMiterLimit is the SVG default, used so that PNG and SVG agree.
const svgMiterLimit = 4

func solidSource(col colorful.Color) func(x, y int) (colorful.Color, float64) {
	return func(int, int) (colorful.Color, float64) { return col, 1 }
}

func tileSource(tile *image.RGBA) func(x, y int) (colorful.Color, float64) {
	b := tile.Bounds()
	w, h := b.Dx(), b.Dy()
	return func(x, y int) (colorful.Color, float64) {
		px := tile.RGBAAt(mod(x, w), mod(y, h))
		if px.A == 0 {
			return colorful.Color{}, 0
		}
		a := float64(px.A)
		return colorful.Color{
			R: float64(px.R) / a,
			G: float64(px.G) / a,
			B: float64(px.B) / a,
		}, a / 255
	}
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// compositor returns a callback which paints src over the image with
// the given coverage and opacity.
func (c *canvas) compositor(src func(x, y int) (colorful.Color, float64), opacity float64) raster.EmitFunc {
	return func(y, xMin int, coverage []float32) {
		for i, cov := range coverage {
			x := xMin + i
			col, a := src(x, y)
			c.blend(x, y, col, a*float64(cov)*opacity)
		}
	}
}

// blend paints col with alpha a over pixel (x, y), in premultiplied form.
func (c *canvas) blend(x, y int, col colorful.Color, a float64) {
	if a <= 0 {
		return
	}
	k := c.img.PixOffset(x, y)
	pix := c.img.Pix[k : k+4 : k+4]
	inv := 1 - a
	pix[0] = clamp8(col.R*a*255 + float64(pix[0])*inv)
	pix[1] = clamp8(col.G*a*255 + float64(pix[1])*inv)
	pix[2] = clamp8(col.B*a*255 + float64(pix[2])*inv)
	pix[3] = clamp8(a*255 + float64(pix[3])*inv)
}

func (c *canvas) fillRect(col colorful.Color) {
	r, g, b := col.RGB255()
	for i := 0; i < len(c.img.Pix); i += 4 {
		c.img.Pix[i] = r
		c.img.Pix[i+1] = g
		c.img.Pix[i+2] = b
		c.img.Pix[i+3] = 255
	}
}

func clamp8(v float64) uint8 {
	return uint8(min(max(math.Round(v), 0), 255))
}

// tile returns the texture tile for p, scaled to device pixels.  It
// returns nil if no texture source is configured.
func (c *canvas) tile(p shape.Paint) (*image.RGBA, error) {
	if c.textures == nil {
		return nil, nil
	}
	key := tileKey{ref: p.Texture, density: p.Density()}
	if t, ok := c.tiles[key]; ok {
		return t, nil
	}

	src, err := c.textures.Texture(p.Texture)
	if err != nil {
		return nil, err
	}
	n := max(1, int(math.Round(TextureTile*key.density*c.scale)))
	t := image.NewRGBA(image.Rect(0, 0, n, n))
	draw.CatmullRom.Scale(t, t.Bounds(), src, src.Bounds(), draw.Src, nil)
	c.tiles[key] = t
	return t, nil
}
