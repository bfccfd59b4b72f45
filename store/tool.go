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

package store

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pookalam/shape"
)

// Placement defaults for new shapes.
const (
	DefaultSize       = 40
	DefaultSides      = 5
	DefaultInnerRatio = 0.5

	// MaxRecentColors is the length of the recent color list.
	MaxRecentColors = 6
)

// Tool holds the settings applied to newly placed shapes.
type Tool struct {
	Kind        shape.Kind
	Fill        shape.Paint
	Stroke      string
	StrokeWidth float64
	Size        float64

	// Recent lists recently used fill colors, newest first.
	Recent []string
}

// DefaultTool returns the tool settings of a new design.
func DefaultTool() Tool {
	return Tool{
		Kind:        shape.Petal,
		Fill:        shape.Paint{Color: "#ff9f1c", TextureDensity: 1},
		Stroke:      "#111827",
		StrokeWidth: 1,
		Size:        DefaultSize,
		Recent:      []string{"#ff9f1c", "#e71d36", "#2ec4b6", "#ffbf69", "#ffffff", "#000000"},
	}
}

// Draft returns a draft for a shape of the current kind at the given
// position.  Sides are set for polygons and stars, the inner ratio for
// stars and rings.
func (t *Tool) Draft(at vec.Vec2) *shape.Draft {
	d := &shape.Draft{
		Kind:        t.Kind,
		Center:      at,
		Size:        t.Size,
		Fill:        t.Fill,
		Stroke:      t.Stroke,
		StrokeWidth: t.StrokeWidth,
	}
	if d.Size <= 0 {
		d.Size = DefaultSize
	}
	if t.Kind.UsesSides() {
		d.Sides = shape.Ptr(DefaultSides)
	}
	if t.Kind.UsesInnerRatio() {
		d.InnerRatio = shape.Ptr(DefaultInnerRatio)
	}
	return d
}

// SetColor selects a solid fill color, clears the texture and records the
// color in the recent color list.
func (t *Tool) SetColor(c string) error {
	norm, err := NormalizeColor(c)
	if err != nil {
		return err
	}
	t.Fill.SetColor(norm)
	t.Recent = slices.DeleteFunc(t.Recent, func(r string) bool { return r == norm })
	t.Recent = slices.Insert(t.Recent, 0, norm)
	if len(t.Recent) > MaxRecentColors {
		t.Recent = t.Recent[:MaxRecentColors]
	}
	return nil
}

// SetStroke selects the stroke color.
func (t *Tool) SetStroke(c string) error {
	norm, err := NormalizeColor(c)
	if err != nil {
		return err
	}
	t.Stroke = norm
	return nil
}

// NormalizeColor converts a hex color to the canonical "#rrggbb" form.
func NormalizeColor(c string) (string, error) {
	col, err := colorful.Hex(c)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", c, err)
	}
	return col.Hex(), nil
}
