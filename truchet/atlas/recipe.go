// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package atlas

import (
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/tile"
)

// Role selects which palette color fills a primitive.
type Role uint8

const (
	Primary Role = iota
	Secondary
)

// Shape is a primitive shape.
type Shape uint8

const (
	ShapeRect Shape = iota
	// ShapePie is a 90 degree wedge of the ellipse inscribed in its box,
	// starting at Start degrees clockwise from the x axis.
	ShapePie
	// ShapeCircle is the ellipse inscribed in its box.
	ShapeCircle
)

// Primitive is one filled shape of a tile, positioned by its bounding box in
// tile image pixels.
type Primitive struct {
	Shape  Shape
	Role   Role
	X, Y   int
	W, H   int
	Start  int // degrees, pies only
	Corner tile.Corner
}

// Sweep of every pie in degrees.
const Sweep = 90

// Recipe lists the primitives of kind for a tile of logical size s, in
// painting order. The image is 2s wide: the tile square sits in the middle
// with an s/2 margin that the corner and edge circles spill into.
//
// All arithmetic is integer, so sizes that are not multiples of 6 round the
// same way at every level.
func Recipe(kind tile.Kind, s int) []Primitive {
	connectors := kind.Connectors()

	primitives := make([]Primitive, 0, 14)
	primitives = append(primitives, square(s))

	if connectors.Pies != [4]bool{} {
		primitives = append(primitives, pies(s, connectors.Pies)...)
	}
	if connectors.Vertical {
		primitives = append(primitives, verticalBar(s))
	}
	if connectors.Horizontal {
		primitives = append(primitives, horizontalBar(s))
	}

	primitives = append(primitives, cornerCircles(s)...)
	primitives = append(primitives, edgeCircles(s)...)
	return primitives
}

func square(s int) Primitive {
	return Primitive{Shape: ShapeRect, Role: Primary, X: s / 2, Y: s / 2, W: s, H: s}
}

func verticalBar(s int) Primitive {
	a, b := s/2, s/3
	return Primitive{Shape: ShapeRect, Role: Secondary, X: a + b, Y: a, W: b, H: s}
}

func horizontalBar(s int) Primitive {
	a, b := s/2, s/3
	return Primitive{Shape: ShapeRect, Role: Secondary, X: a, Y: a + b, W: s, H: b}
}

// pies are quarter discs centred on the corners of the tile square, curving
// inwards.
func pies(s int, corners [4]bool) []Primitive {
	c := -s / 6
	d := (s / 3) * 4
	boxes := [4][2]int{
		tile.NW: {c, c},
		tile.NE: {c + s, c},
		tile.SE: {c + s, c + s},
		tile.SW: {c, c + s},
	}

	var out []Primitive
	for corner, on := range corners {
		if !on {
			continue
		}
		out = append(out, Primitive{
			Shape:  ShapePie,
			Role:   Secondary,
			X:      boxes[corner][0],
			Y:      boxes[corner][1],
			W:      d,
			H:      d,
			Start:  corner * Sweep,
			Corner: tile.Corner(corner),
		})
	}
	return out
}

// cornerCircles round off the joints between neighbouring tiles.
func cornerCircles(s int) []Primitive {
	c := s / 6
	d := (s / 3) * 2
	return []Primitive{
		{Shape: ShapeCircle, Role: Primary, X: c, Y: c, W: d, H: d},
		{Shape: ShapeCircle, Role: Primary, X: c, Y: c + s, W: d, H: d},
		{Shape: ShapeCircle, Role: Primary, X: c + s, Y: c, W: d, H: d},
		{Shape: ShapeCircle, Role: Primary, X: c + s, Y: c + s, W: d, H: d},
	}
}

// edgeCircles sit on the middle of each edge, where connectors of
// neighbouring tiles meet.
func edgeCircles(s int) []Primitive {
	d := s / 3
	a := s/2 + s/3
	b := s / 3
	c := (s * 4) / 3
	return []Primitive{
		{Shape: ShapeCircle, Role: Secondary, X: a, Y: b, W: d, H: d},
		{Shape: ShapeCircle, Role: Secondary, X: a, Y: c, W: d, H: d},
		{Shape: ShapeCircle, Role: Secondary, X: b, Y: a, W: d, H: d},
		{Shape: ShapeCircle, Role: Secondary, X: c, Y: a, W: d, H: d},
	}
}

func (p Primitive) String() string {
	names := [...]string{"rect", "pie", "circle"}
	return fmt.Sprintf("%s(%d, %d, %d, %d)", names[p.Shape], p.X, p.Y, p.W, p.H)
}
