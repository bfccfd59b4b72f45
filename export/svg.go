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
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/pookalam/geometry"
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/symmetry"
)

// SVG writes the design as an SVG document with an 800×800 view box.
// Every instance becomes one path element.  Textures are referenced by
// URL through pattern elements; the Textures option is not used.
func SVG(w io.Writer, shapes []*shape.Shape, cfg symmetry.Config, opt *Options) error {
	out := bufio.NewWriter(w)

	var bg string
	if opt != nil && opt.Background != "" {
		c, ok, err := parseColor(opt.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		if ok {
			bg = c.Hex()
		}
	}

	// validate colors before anything is written
	patterns := make(map[tileKey]string)
	var order []tileKey
	for _, s := range shapes {
		if s.Fill.IsTexture() {
			key := tileKey{ref: s.Fill.Texture, density: s.Fill.Density()}
			if _, ok := patterns[key]; !ok {
				patterns[key] = "tex" + strconv.Itoa(len(order))
				order = append(order, key)
			}
		} else if _, _, err := parseColor(s.Fill.Color); err != nil {
			return fmt.Errorf("shape %s: fill: %w", s.ID, err)
		}
		if _, _, err := parseColor(s.Stroke); err != nil && s.StrokeWidth > 0 {
			return fmt.Errorf("shape %s: stroke: %w", s.ID, err)
		}
	}

	size := fmtNum(geometry.CanvasSize)
	fmt.Fprintf(out, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		size, size, size, size)
	if len(order) > 0 {
		out.WriteString("<defs>\n")
		for _, key := range order {
			tile := fmtNum(TextureTile)
			fmt.Fprintf(out, `<pattern id="%s" patternUnits="userSpaceOnUse" width="%s" height="%s" patternTransform="scale(%s)">`,
				patterns[key], tile, tile, fmtNum(key.density))
			fmt.Fprintf(out, `<image href="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid slice"/>`,
				html.EscapeString(key.ref), tile, tile)
			out.WriteString("</pattern>\n")
		}
		out.WriteString("</defs>\n")
	}
	if bg != "" {
		fmt.Fprintf(out, `<rect width="%s" height="%s" fill="%s"/>`+"\n", size, size, bg)
	}

	err := walk(shapes, cfg, opt, false, func(it item) error {
		s := it.shape
		fill := "none"
		if s.Fill.IsTexture() {
			fill = "url(#" + patterns[tileKey{ref: s.Fill.Texture, density: s.Fill.Density()}] + ")"
		} else if c, ok, _ := parseColor(s.Fill.Color); ok {
			fill = c.Hex()
		}

		fmt.Fprintf(out, `<path d="%s" fill="%s"`, pathData(it.outline.Path), fill)
		if c, ok, _ := parseColor(s.Stroke); ok && s.StrokeWidth > 0 {
			fmt.Fprintf(out, ` stroke="%s" stroke-width="%s"`, c.Hex(), fmtNum(s.StrokeWidth))
		}
		if it.outline.EvenOdd {
			out.WriteString(` fill-rule="evenodd"`)
		}
		if !s.Visible {
			fmt.Fprintf(out, ` opacity="%s"`, fmtNum(shape.HiddenOpacity))
		}
		_, err := out.WriteString("/>\n")
		return err
	})
	if err != nil {
		return err
	}

	out.WriteString("</svg>\n")
	return out.Flush()
}

// pathData formats p in SVG path syntax.
func pathData(p *path.Data) string {
	var b strings.Builder
	k := 0
	point := func(n int) {
		for i := range n {
			pt := p.Coords[k+i]
			b.WriteByte(' ')
			b.WriteString(fmtNum(pt.X))
			b.WriteByte(' ')
			b.WriteString(fmtNum(pt.Y))
		}
		k += n
	}
	for i, cmd := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch cmd {
		case path.CmdMoveTo:
			b.WriteByte('M')
			point(1)
		case path.CmdLineTo:
			b.WriteByte('L')
			point(1)
		case path.CmdQuadTo:
			b.WriteByte('Q')
			point(2)
		case path.CmdCubeTo:
			b.WriteByte('C')
			point(3)
		case path.CmdClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// fmtNum formats x with at most three decimals.
func fmtNum(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // no "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
