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

// Package export writes designs as PNG, SVG and PDF files.
//
// All exporters draw every symmetry instance of every shape, in the
// order given by [symmetry.Expand], on an 800×800 canvas.  Hidden shapes
// are drawn at reduced opacity in PNG and SVG output and are left out of
// PDF output.
package export

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // texture formats
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/pookalam/geometry"
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/symmetry"
)

// DefaultPNGSize is the default width and height of PNG output in pixels.
const DefaultPNGSize = 1600

// TextureTile is the size of one texture tile in canvas units, before
// scaling by the texture density.
const TextureTile = 100

// ErrBadColor is returned when a shape has a color which cannot be parsed.
var ErrBadColor = errors.New("invalid color")

// ErrNoTexture is returned when a texture is used but cannot be found.
var ErrNoTexture = errors.New("texture not available")

// Options control the output of all exporters.
// The zero value is valid.
type Options struct {
	// Size is the width and height of PNG output in pixels.
	// Zero selects DefaultPNGSize.
	Size int

	// Background, if set, is painted below the design.
	// Otherwise the background is transparent (white for PDF).
	Background string

	// Textures resolves texture references for PNG and PDF output.
	// If nil, textured shapes are painted in neutral gray.
	Textures TextureSource

	// Progress, if set, is called after each authored shape.
	Progress func(done, total int)
}

func (opt *Options) size() int {
	if opt == nil || opt.Size <= 0 {
		return DefaultPNGSize
	}
	return opt.Size
}

// TextureSource looks up texture images by reference.
type TextureSource interface {
	Texture(ref string) (image.Image, error)
}

// DirTextures loads PNG, JPEG and WebP textures from a directory.
// References are file names relative to the directory.
type DirTextures string

// Texture implements [TextureSource].
func (dir DirTextures) Texture(ref string) (image.Image, error) {
	name := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(name) || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("texture %q: %w", ref, ErrNoTexture)
	}
	f, err := os.Open(filepath.Join(string(dir), name))
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", ref, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", ref, err)
	}
	return img, nil
}

// parseColor parses a hex color.  The values "", "none" and "transparent"
// give ok == false.
func parseColor(s string) (c colorful.Color, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "transparent":
		return colorful.Color{}, false, nil
	}
	c, err = colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, false, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	return c, true, nil
}

// item is one drawable instance.
type item struct {
	shape   *shape.Shape
	outline geometry.Outline
}

// walk calls fn for every instance of every shape, in drawing order.
// Hidden shapes are skipped if skipHidden is set.
func walk(shapes []*shape.Shape, cfg symmetry.Config, opt *Options, skipHidden bool, fn func(item) error) error {
	for i, s := range shapes {
		if !skipHidden || s.Visible {
			for _, inst := range symmetry.ExpandShape(s, cfg) {
				it := item{shape: s, outline: geometry.Build(s, inst.Center, inst.Rotation)}
				if err := fn(it); err != nil {
					return fmt.Errorf("shape %s: %w", s.ID, err)
				}
			}
		}
		if opt != nil && opt.Progress != nil {
			opt.Progress(i+1, len(shapes))
		}
	}
	return nil
}
