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

package script

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pookalam/editor"
	"seehuhn.de/go/pookalam/shape"
	"seehuhn.de/go/pookalam/store"
	"seehuhn.de/go/pookalam/symmetry"
)

// Player replays scripts on an editor.
type Player struct {
	ed  *editor.Editor
	ids []string // shape ids, by placement index
}

// NewPlayer returns a player which drives ed.
func NewPlayer(ed *editor.Editor) *Player {
	return &Player{ed: ed}
}

// IDs returns the ids of the shapes placed so far, in placement order.
// Shapes which were later removed are still listed.
func (p *Player) IDs() []string {
	return append([]string(nil), p.ids...)
}

// Run executes the steps of s in order.  It stops at the first failing
// step and returns an [*Error] for it.  Steps which were executed before
// the failure stay applied.
func (p *Player) Run(s *Script) error {
	if s.Symmetry != nil {
		p.ed.SetSymmetry(s.Symmetry.config())
	}
	if s.Snap != nil {
		p.ed.SetSnap(*s.Snap)
	}
	for i := range s.Steps {
		step := &s.Steps[i]
		if err := p.step(step); err != nil {
			return &Error{Step: i, Action: step.Action, Err: err}
		}
	}
	return nil
}

func (p *Player) step(st *Step) error {
	ed := p.ed
	switch st.Action {
	case "tool":
		if st.Tool == nil {
			return fmt.Errorf("%w: tool", ErrMissingField)
		}
		return st.Tool.apply(ed.Tool())

	case "symmetry":
		if st.Symmetry == nil {
			return fmt.Errorf("%w: symmetry", ErrMissingField)
		}
		ed.SetSymmetry(st.Symmetry.config())

	case "snap":
		if st.Enabled == nil {
			return fmt.Errorf("%w: enabled", ErrMissingField)
		}
		ed.SetSnap(*st.Enabled)

	case "place":
		at, err := st.at()
		if err != nil {
			return err
		}
		p.ids = append(p.ids, ed.Place(ed.Tool().Draft(at)))

	case "click", "drag":
		at, err := st.at()
		if err != nil {
			return err
		}
		action, id := ed.PointerDown(at, st.Additive)
		if action == editor.ActionPlace {
			p.ids = append(p.ids, id)
		}
		if st.Action == "drag" {
			for _, pt := range st.Path {
				ed.PointerMove(vec.Vec2(pt))
			}
		}
		ed.PointerUp()

	case "select":
		id, err := p.shape(st)
		if err != nil {
			return err
		}
		ed.Select(id, st.Additive)

	case "deselect":
		ed.Deselect()

	case "update":
		id, err := p.shape(st)
		if err != nil {
			return err
		}
		patch, err := st.patch()
		if err != nil {
			return err
		}
		// a discrete edit, so it gets its own checkpoint
		ed.UpdateMany([]string{id}, patch)

	case "update_many":
		if len(st.Shapes) == 0 {
			return fmt.Errorf("%w: shapes", ErrMissingField)
		}
		ids := make([]string, len(st.Shapes))
		for i, idx := range st.Shapes {
			id, err := p.lookup(idx)
			if err != nil {
				return err
			}
			ids[i] = id
		}
		patch, err := st.patch()
		if err != nil {
			return err
		}
		ed.UpdateMany(ids, patch)

	case "update_selected":
		patch, err := st.patch()
		if err != nil {
			return err
		}
		ed.UpdateSelected(patch)

	case "remove":
		id, err := p.shape(st)
		if err != nil {
			return err
		}
		ed.Remove(id)

	case "remove_selected":
		ed.RemoveSelected()

	case "reorder":
		if st.From == nil || st.To == nil {
			return fmt.Errorf("%w: from/to", ErrMissingField)
		}
		if !ed.Reorder(*st.From, *st.To) {
			return fmt.Errorf("cannot move layer %d to %d", *st.From, *st.To)
		}

	case "toggle_visibility", "toggle_lock":
		id, err := p.shape(st)
		if err != nil {
			return err
		}
		if st.Action == "toggle_lock" {
			ed.ToggleLock(id)
		} else {
			ed.ToggleVisibility(id)
		}

	case "undo", "redo":
		fn := ed.Undo
		if st.Action == "redo" {
			fn = ed.Redo
		}
		for range max(st.Count, 1) {
			fn()
		}

	default:
		return ErrUnknownAction
	}
	return nil
}

func (st *Step) at() (vec.Vec2, error) {
	if st.At == nil {
		return vec.Vec2{}, fmt.Errorf("%w: at", ErrMissingField)
	}
	return vec.Vec2(*st.At), nil
}

func (p *Player) shape(st *Step) (string, error) {
	if st.Shape == nil {
		return "", fmt.Errorf("%w: shape", ErrMissingField)
	}
	return p.lookup(*st.Shape)
}

func (p *Player) lookup(idx int) (string, error) {
	if idx < 0 || idx >= len(p.ids) {
		return "", fmt.Errorf("%w: %d", ErrNoShape, idx)
	}
	return p.ids[idx], nil
}

func (st *Step) patch() (*shape.Patch, error) {
	if st.Patch == nil {
		return nil, fmt.Errorf("%w: patch", ErrMissingField)
	}
	return st.Patch.convert()
}

func (sp *Patch) convert() (*shape.Patch, error) {
	res := &shape.Patch{
		Size:           sp.Size,
		Sides:          sp.Sides,
		InnerRatio:     sp.InnerRatio,
		Rotation:       sp.Rotation,
		Texture:        sp.Texture,
		TextureDensity: sp.TextureDensity,
		StrokeWidth:    sp.StrokeWidth,
		Visible:        sp.Visible,
		Locked:         sp.Locked,
	}
	if sp.Kind != nil {
		k, err := shape.ParseKind(*sp.Kind)
		if err != nil {
			return nil, err
		}
		res.Kind = &k
	}
	if sp.Center != nil {
		c := vec.Vec2(*sp.Center)
		res.Center = &c
	}
	if sp.Color != nil {
		c, err := store.NormalizeColor(*sp.Color)
		if err != nil {
			return nil, err
		}
		res.Color = &c
	}
	if sp.Stroke != nil {
		c, err := store.NormalizeColor(*sp.Stroke)
		if err != nil {
			return nil, err
		}
		res.Stroke = &c
	}
	return res, nil
}

func (t *Tool) apply(tool *store.Tool) error {
	if t.Kind != nil {
		k, err := shape.ParseKind(*t.Kind)
		if err != nil {
			return err
		}
		tool.Kind = k
	}
	if t.Size != nil {
		tool.Size = *t.Size
	}
	if t.Color != nil {
		if err := tool.SetColor(*t.Color); err != nil {
			return err
		}
	}
	if t.Texture != nil {
		tool.Fill.SetTexture(*t.Texture)
	}
	if t.TextureDensity != nil {
		tool.Fill.TextureDensity = *t.TextureDensity
	}
	if t.Stroke != nil {
		if err := tool.SetStroke(*t.Stroke); err != nil {
			return err
		}
	}
	if t.StrokeWidth != nil {
		tool.StrokeWidth = *t.StrokeWidth
	}
	return nil
}

func (s *Symmetry) config() symmetry.Config {
	return symmetry.Config{
		Radial:           symmetry.ClampRadial(s.Radial),
		MirrorVertical:   s.MirrorVertical,
		MirrorHorizontal: s.MirrorHorizontal,
	}
}
