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

// Package script replays editing sessions described in YAML.
//
// A session script lists the steps of an editing session:
//
//	name: simple flower
//	symmetry: {radial: 8, mirror_vertical: true}
//	steps:
//	  - action: tool
//	    tool: {kind: petal, color: "#ff9f1c"}
//	  - action: click
//	    at: [400, 250]
//	  - action: drag
//	    at: [400, 250]
//	    path: [[410, 250], [420, 240]]
//	  - action: undo
//
// Shape ids are random, so steps refer to shapes by their placement
// index: the first shape placed by the script is shape 0.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Script is a recorded editing session.
type Script struct {
	Name string `yaml:"name"`

	// Symmetry and Snap, if set, are applied before the first step.
	Symmetry *Symmetry `yaml:"symmetry"`
	Snap     *bool     `yaml:"snap"`

	Steps []Step `yaml:"steps"`
}

// Step is one user action.  Which fields are used depends on Action.
type Step struct {
	Action string `yaml:"action"`

	At       *Point  `yaml:"at"`       // place, click, drag
	Path     []Point `yaml:"path"`     // drag
	Additive bool    `yaml:"additive"` // click, drag, select

	Shape  *int  `yaml:"shape"`  // select, update, remove, toggle_*
	Shapes []int `yaml:"shapes"` // update_many

	From *int `yaml:"from"` // reorder
	To   *int `yaml:"to"`   // reorder

	Patch    *Patch    `yaml:"patch"`    // update, update_many, update_selected
	Tool     *Tool     `yaml:"tool"`     // tool
	Symmetry *Symmetry `yaml:"symmetry"` // symmetry
	Enabled  *bool     `yaml:"enabled"`  // snap

	// Count repeats undo and redo steps.  Zero means once.
	Count int `yaml:"count"`
}

// Symmetry is a symmetry setting.
type Symmetry struct {
	Radial           float64 `yaml:"radial"`
	MirrorVertical   bool    `yaml:"mirror_vertical"`
	MirrorHorizontal bool    `yaml:"mirror_horizontal"`
}

// Tool changes the settings for new shapes.  Unset fields are left alone.
type Tool struct {
	Kind           *string  `yaml:"kind"`
	Size           *float64 `yaml:"size"`
	Color          *string  `yaml:"color"`
	Texture        *string  `yaml:"texture"`
	TextureDensity *float64 `yaml:"texture_density"`
	Stroke         *string  `yaml:"stroke"`
	StrokeWidth    *float64 `yaml:"stroke_width"`
}

// Patch is a partial shape update.
type Patch struct {
	Kind           *string  `yaml:"kind"`
	Center         *Point   `yaml:"center"`
	Size           *float64 `yaml:"size"`
	Sides          *int     `yaml:"sides"`
	InnerRatio     *float64 `yaml:"inner_ratio"`
	Rotation       *float64 `yaml:"rotation"`
	Color          *string  `yaml:"color"`
	Texture        *string  `yaml:"texture"`
	TextureDensity *float64 `yaml:"texture_density"`
	Stroke         *string  `yaml:"stroke"`
	StrokeWidth    *float64 `yaml:"stroke_width"`
	Visible        *bool    `yaml:"visible"`
	Locked         *bool    `yaml:"locked"`
}

// Point is a canvas position, written either as [x, y] or as {x: .., y: ..}.
type Point struct {
	X, Y float64
}

// UnmarshalYAML implements yaml.Unmarshaler for Point.
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: point needs 2 coordinates, got %d", value.Line, len(xy))
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	}

	var m struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}
	if err := value.Decode(&m); err != nil {
		return err
	}
	p.X, p.Y = m.X, m.Y
	return nil
}

// Actions lists the supported step actions.
var Actions = []string{
	"tool", "symmetry", "snap",
	"place", "click", "drag",
	"select", "deselect",
	"update", "update_many", "update_selected",
	"remove", "remove_selected", "reorder",
	"toggle_visibility", "toggle_lock",
	"undo", "redo",
}

var (
	// ErrUnknownAction is returned for steps with an unsupported action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingField is returned when a step lacks a required field.
	ErrMissingField = errors.New("missing field")

	// ErrNoShape is returned when a step refers to a shape index which
	// has not been placed.
	ErrNoShape = errors.New("no such shape")
)

// Error describes a failed step.
type Error struct {
	Step   int // zero based
	Action string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step+1, e.Action, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads a script from a YAML file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script and checks that all actions are known.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	s := &Script{}
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, step := range s.Steps {
		if !slices.Contains(Actions, step.Action) {
			return nil, &Error{Step: i, Action: step.Action, Err: ErrUnknownAction}
		}
	}
	return s, nil
}
