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

package shape

import (
	"errors"
	"fmt"
)

// Kind identifies the geometry generator used for a shape.
type Kind string

// The closed set of shape kinds.
const (
	Circle   Kind = "circle"
	Square   Kind = "square"
	Polygon  Kind = "polygon"
	Star     Kind = "star"
	Ring     Kind = "ring"
	Petal    Kind = "petal"
	Marigold Kind = "flower-1" // stylized flower A
	Lotus    Kind = "flower-2" // stylized flower B
	Leaf     Kind = "leaf-1"   // stylized leaf
)

// Kinds lists all shape kinds in toolbar order.
var Kinds = []Kind{Circle, Square, Polygon, Star, Ring, Petal, Marigold, Lotus, Leaf}

// ErrUnknownKind is returned by [ParseKind] for names outside [Kinds].
var ErrUnknownKind = errors.New("unknown shape kind")

// ParseKind converts a kind name into a Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !k.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case Circle, Square, Polygon, Star, Ring, Petal, Marigold, Lotus, Leaf:
		return true
	}
	return false
}

// UsesSides reports whether the sides count affects the geometry of k.
func (k Kind) UsesSides() bool {
	return k == Polygon || k == Star
}

// UsesInnerRatio reports whether the inner ratio affects the geometry of k.
func (k Kind) UsesInnerRatio() bool {
	return k == Star || k == Ring
}

func (k Kind) String() string {
	return string(k)
}
