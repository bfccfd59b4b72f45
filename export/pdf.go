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

	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/pookalam/geometry"
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/symmetry"
)

// PDF writes the design as a single page PDF file with an 800×800 point
// page.  Hidden shapes are omitted.  Textured shapes are filled with the
// average color of their texture.
func PDF(fileName string, shapes []*shape.Shape, cfg symmetry.Config, opt *Options) error {
	bg := colorful.Color{R: 1, G: 1, B: 1}
	if opt != nil && opt.Background != "" {
		c, ok, err := parseColor(opt.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		if ok {
			bg = c
		}
	}

	tex := &textureMeans{means: make(map[string]colorful.Color)}
	if opt != nil {
		tex.src = opt.Textures
	}

	paper := &pdf.Rectangle{URx: geometry.CanvasSize, URy: geometry.CanvasSize}
	page, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(rgb(bg))
	page.Rectangle(0, 0, geometry.CanvasSize, geometry.CanvasSize)
	page.Fill()

	// Canvas coordinates have the origin at the top left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, geometry.CanvasSize})
	page.SetLineJoin(graphics.LineJoinMiter)
	page.SetMiterLimit(svgMiterLimit)

	// PDF has no quadratic segments, so these are converted to cubic ones.
	emitPath := func(p *path.Data) {
		for cmd, pts := range p.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
	}

	draw := func(it item) error {
		s := it.shape

		var fill colorful.Color
		hasFill := true
		if s.Fill.IsTexture() {
			c, err := tex.color(s.Fill.Texture)
			if err != nil {
				return err
			}
			fill = c
		} else {
			c, ok, err := parseColor(s.Fill.Color)
			if err != nil {
				return fmt.Errorf("fill: %w", err)
			}
			fill, hasFill = c, ok
		}
		if hasFill {
			page.SetFillColor(rgb(fill))
			emitPath(it.outline.Path)
			if it.outline.EvenOdd {
				page.FillEvenOdd()
			} else {
				page.Fill()
			}
		}

		if s.StrokeWidth > 0 {
			c, ok, err := parseColor(s.Stroke)
			if err != nil {
				return fmt.Errorf("stroke: %w", err)
			}
			if ok {
				page.SetStrokeColor(rgb(c))
				page.SetLineWidth(s.StrokeWidth)
				emitPath(it.outline.Path)
				page.Stroke()
			}
		}
		return nil
	}

	err = walk(shapes, cfg, opt, true, draw)
	if err != nil {
		page.Close()
		return err
	}
	return page.Close()
}

// textureMeans caches the average colors of textures.
type textureMeans struct {
	src   TextureSource
	means map[string]colorful.Color
}

// color returns the average color of a texture, or neutral gray if no
// texture source is configured.
func (t *textureMeans) color(ref string) (colorful.Color, error) {
	if t.src == nil {
		return neutral, nil
	}
	if c, ok := t.means[ref]; ok {
		return c, nil
	}
	img, err := t.src.Texture(ref)
	if err != nil {
		return colorful.Color{}, err
	}
	c := meanColor(img)
	t.means[ref] = c
	return c, nil
}

// meanColor averages the non-transparent pixels of img.
func meanColor(img image.Image) colorful.Color {
	var r, g, b, a float64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			r += float64(pr)
			g += float64(pg)
			b += float64(pb)
			a += float64(pa)
		}
	}
	if a == 0 {
		return neutral
	}
	return colorful.Color{R: r / a, G: g / a, B: b / a}.Clamped()
}

func rgb(c colorful.Color) color.DeviceRGB {
	c = c.Clamped()
	return color.DeviceRGB{c.R, c.G, c.B}
}
