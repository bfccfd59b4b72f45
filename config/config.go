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

// Package config reads the TOML settings file of the pookalam tool.
//
// A settings file looks like this:
//
//	[symmetry]
//	radial = 12
//	mirror_vertical = true
//
//	[tool]
//	kind = "star"
//	color = "#e71d36"
//
//	[snap]
//	enabled = true
//	step = 10
//
//	[export]
//	png_size = 2400
//
//	[log]
//	level = "debug"
//
// Missing values take their defaults.  Unknown keys are an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/pookalam/editor"
	"seehuhn.de/go/pookalam/export"
	"seehuhn.de/go/pookalam/history"
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/store"
	"seehuhn.de/go/pookalam/symmetry"
)

// Environment variables which override values from the settings file.
const (
	EnvLogLevel   = "POOKALAM_LOG_LEVEL"
	EnvPNGSize    = "POOKALAM_PNG_SIZE"
	EnvTextureDir = "POOKALAM_TEXTURE_DIR"
)

// Config holds all settings.
type Config struct {
	Symmetry Symmetry `toml:"symmetry"`
	Tool     Tool     `toml:"tool"`
	Snap     Snap     `toml:"snap"`
	History  History  `toml:"history"`
	Export   Export   `toml:"export"`
	Log      Log      `toml:"log"`
	Textures Textures `toml:"textures"`
}

// Symmetry is the initial symmetry of the design.
type Symmetry struct {
	Radial           int  `toml:"radial"`
	MirrorVertical   bool `toml:"mirror_vertical"`
	MirrorHorizontal bool `toml:"mirror_horizontal"`
}

// Tool holds the settings for newly placed shapes.
type Tool struct {
	Kind           string   `toml:"kind"`
	Size           float64  `toml:"size"`
	Color          string   `toml:"color"`
	Texture        string   `toml:"texture"`
	TextureDensity float64  `toml:"texture_density"`
	Stroke         string   `toml:"stroke"`
	StrokeWidth    *float64 `toml:"stroke_width"`
}

// Snap controls grid snapping of pointer positions.
type Snap struct {
	Enabled bool    `toml:"enabled"`
	Step    float64 `toml:"step"`
}

// History controls the undo history.
type History struct {
	Limit int `toml:"limit"`
}

// Export holds the defaults for file export.
type Export struct {
	PNGSize    int    `toml:"png_size"`
	Background string `toml:"background"`
}

// Log controls diagnostic output.
type Log struct {
	Level string `toml:"level"`
}

// Textures locates texture images.
type Textures struct {
	Dir string `toml:"dir"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	tool := store.DefaultTool()

	if c.Symmetry.Radial == 0 {
		c.Symmetry.Radial = symmetry.Default.Radial
	}
	if c.Tool.Kind == "" {
		c.Tool.Kind = string(tool.Kind)
	}
	if c.Tool.Size == 0 {
		c.Tool.Size = tool.Size
	}
	if c.Tool.Color == "" && c.Tool.Texture == "" {
		c.Tool.Color = tool.Fill.Color
	}
	if c.Tool.TextureDensity == 0 {
		c.Tool.TextureDensity = 1
	}
	if c.Tool.Stroke == "" {
		c.Tool.Stroke = tool.Stroke
	}
	if c.Tool.StrokeWidth == nil {
		c.Tool.StrokeWidth = shape.Ptr(tool.StrokeWidth)
	}
	if c.Snap.Step == 0 {
		c.Snap.Step = editor.DefaultSnapStep
	}
	if c.History.Limit == 0 {
		c.History.Limit = history.DefaultLimit
	}
	if c.Export.PNGSize == 0 {
		c.Export.PNGSize = export.DefaultPNGSize
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Load reads a settings file, applies defaults and environment overrides,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := decode(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads settings from r and applies defaults.  Environment
// variables are not consulted.
func Decode(r io.Reader) (*Config, error) {
	return decode("<reader>", r)
}

func decode(source string, r io.Reader) (*Config, error) {
	c := &Config{}
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return nil, pe
	}
	c.setDefaults()
	return c, nil
}

// ApplyEnv overrides settings from environment variables, looked up
// using lookup.  Pass os.LookupEnv to use the process environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPNGSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPNGSize, err)
		}
		c.Export.PNGSize = n
	}
	if v, ok := lookup(EnvTextureDir); ok && v != "" {
		c.Textures.Dir = v
	}
	return nil
}

// Validate checks values which cannot be corrected silently.
// Radial counts outside the valid range are clamped, not rejected.
func (c *Config) Validate() error {
	if _, err := shape.ParseKind(c.Tool.Kind); err != nil {
		return fmt.Errorf("tool.kind: %w", err)
	}
	if c.Tool.Size < 0 {
		return fmt.Errorf("tool.size: negative value %g", c.Tool.Size)
	}
	if c.Tool.Texture == "" {
		if _, err := store.NormalizeColor(c.Tool.Color); err != nil {
			return fmt.Errorf("tool.color: %w", err)
		}
	}
	if _, err := store.NormalizeColor(c.Tool.Stroke); err != nil {
		return fmt.Errorf("tool.stroke: %w", err)
	}
	if c.Snap.Step < 0 {
		return fmt.Errorf("snap.step: negative value %g", c.Snap.Step)
	}
	if c.Export.PNGSize < 0 {
		return fmt.Errorf("export.png_size: negative value %d", c.Export.PNGSize)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Config returns the symmetry configuration, with the radial count
// clamped to the valid range.
func (s Symmetry) Config() symmetry.Config {
	return symmetry.Config{
		Radial:           symmetry.ClampRadial(float64(s.Radial)),
		MirrorVertical:   s.MirrorVertical,
		MirrorHorizontal: s.MirrorHorizontal,
	}
}

// Tool returns the placement settings.  The configuration must be valid.
func (t Tool) Tool() store.Tool {
	res := store.DefaultTool()
	if k, err := shape.ParseKind(t.Kind); err == nil {
		res.Kind = k
	}
	res.Size = t.Size
	if t.Texture != "" {
		res.Fill.SetTexture(t.Texture)
	} else if err := res.SetColor(t.Color); err != nil {
		res.Fill.SetColor(t.Color)
	}
	res.Fill.TextureDensity = t.TextureDensity
	if err := res.SetStroke(t.Stroke); err != nil {
		res.Stroke = t.Stroke
	}
	if t.StrokeWidth != nil {
		res.StrokeWidth = *t.StrokeWidth
	}
	return res
}

// SlogLevel converts the level name to a slog level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// EditorOptions returns the editor settings described by c.
func (c *Config) EditorOptions(logger *slog.Logger) *editor.Options {
	tool := c.Tool.Tool()
	return &editor.Options{
		Symmetry:     c.Symmetry.Config(),
		HistoryLimit: c.History.Limit,
		Snap:         c.Snap.Enabled,
		SnapStep:     c.Snap.Step,
		Tool:         &tool,
		Logger:       logger,
	}
}

// ParseError is returned when a settings file cannot be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
