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

package history

import (
	"fmt"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pookalam/shape"
)

func mkShapes(n int) []*shape.Shape {
	var res []*shape.Shape
	for i := range n {
		d := &shape.Draft{
			Kind:   shape.Circle,
			Center: vec.Vec2{X: float64(10 * i), Y: 5},
			Size:   20,
			Sides:  shape.Ptr(5),
			Fill:   shape.Paint{Color: "#ff9f1c"},
		}
		res = append(res, d.New(fmt.Sprintf("s%d", i)))
	}
	return res
}

func TestCheckpointUndo(t *testing.T) {
	h := New(0)
	present := mkShapes(3)
	want := shape.CloneAll(present)

	h.Checkpoint(present)

	// mutate the present in place, including pointer fields
	present[0].Center = vec.Vec2{X: 999, Y: 999}
	*present[0].Sides = 11
	present = present[:2]

	got, ok := h.Undo(present)
	if !ok {
		t.Fatal("undo failed")
	}
	if !shape.EqualAll(got, want) {
		t.Errorf("undo did not restore the checkpoint")
	}
	if h.CanUndo() || !h.CanRedo() {
		t.Errorf("stacks: undo=%d redo=%d", h.UndoCount(), h.RedoCount())
	}

	again, ok := h.Redo(got)
	if !ok {
		t.Fatal("redo failed")
	}
	if len(again) != 2 || again[0].Center.X != 999 || *again[0].Sides != 11 {
		t.Errorf("redo returned the wrong state: %v", again)
	}
}

func TestCheckpointClearsFuture(t *testing.T) {
	h := New(0)
	s := mkShapes(1)
	h.Checkpoint(s)
	s2 := mkShapes(2)
	prev, _ := h.Undo(s2)
	if h.RedoCount() != 1 {
		t.Fatalf("redo count %d", h.RedoCount())
	}
	h.Checkpoint(prev)
	if h.CanRedo() {
		t.Error("checkpoint did not clear the redo stack")
	}
	got, ok := h.Redo(prev)
	if ok || !shape.EqualAll(got, prev) {
		t.Error("redo after checkpoint was not a no-op")
	}
}

func TestEmptyStacks(t *testing.T) {
	h := New(0)
	present := mkShapes(2)
	got, ok := h.Undo(present)
	if ok || !shape.EqualAll(got, present) {
		t.Error("undo on an empty stack changed the state")
	}
	got, ok = h.Redo(present)
	if ok || !shape.EqualAll(got, present) {
		t.Error("redo on an empty stack changed the state")
	}
}

func TestLimit(t *testing.T) {
	for _, limit := range []int{0, 1, 7, 50} {
		t.Run(fmt.Sprint(limit), func(t *testing.T) {
			h := New(limit)
			capacity := h.Limit()
			for i := range 3 * DefaultLimit {
				h.Checkpoint(mkShapes(i % 4))
				if h.UndoCount() > capacity {
					t.Fatalf("undo stack has %d entries", h.UndoCount())
				}
			}
			if h.UndoCount() != capacity {
				t.Errorf("undo stack has %d entries, want %d", h.UndoCount(), capacity)
			}

			// the oldest entries are dropped
			last := 3*DefaultLimit - 1
			got, _ := h.Undo(nil)
			if len(got) != last%4 {
				t.Errorf("newest snapshot has %d shapes, want %d", len(got), last%4)
			}

			present := got
			for h.CanUndo() {
				present, _ = h.Undo(present)
			}
			if h.RedoCount() > capacity {
				t.Errorf("redo stack has %d entries", h.RedoCount())
			}
		})
	}
}

func TestRedoOrder(t *testing.T) {
	h := New(0)
	a, b, c := mkShapes(1), mkShapes(2), mkShapes(3)
	h.Checkpoint(a)
	h.Checkpoint(b)

	s, _ := h.Undo(c) // present b
	s, _ = h.Undo(s)  // present a
	if len(s) != 1 {
		t.Fatalf("got %d shapes, want 1", len(s))
	}
	s, _ = h.Redo(s)
	if len(s) != 2 {
		t.Errorf("first redo: got %d shapes, want 2", len(s))
	}
	s, _ = h.Redo(s)
	if len(s) != 3 {
		t.Errorf("second redo: got %d shapes, want 3", len(s))
	}
}

func TestClear(t *testing.T) {
	h := New(0)
	h.Checkpoint(mkShapes(1))
	h.Undo(mkShapes(2))
	h.Checkpoint(mkShapes(1))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear left snapshots behind")
	}
}

func BenchmarkCheckpoint(b *testing.B) {
	h := New(0)
	shapes := mkShapes(200)
	for b.Loop() {
		h.Checkpoint(shapes)
	}
}
