// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import "fmt"

// Rect is a square in logical canvas pixels.
type Rect struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Size int `json:"size"`
}

func RectFrom(x, y, size int) Rect {
	return Rect{X: x, Y: y, Size: size}
}

func (a Rect) Area() int {
	return a.Size * a.Size
}

// Contains a fully contains b
func (a Rect) Contains(b Rect) bool {
	return a.X <= b.X && a.Y <= b.Y && a.X+a.Size >= b.X+b.Size && a.Y+a.Size >= b.Y+b.Size
}

// Intersects a and b share interior area
func (a Rect) Intersects(b Rect) bool {
	return a.X < b.X+b.Size && b.X < a.X+a.Size && a.Y < b.Y+b.Size && b.Y < a.Y+a.Size
}

// Quadrants All quadrants of a
func (a Rect) Quadrants() [4]Rect {
	var quadrants [4]Rect
	for i := range quadrants {
		quadrants[i] = a.Quadrant(Corner(i))
	}
	return quadrants
}

// Quadrant of a by corner. Odd sizes lose their last row and column.
func (a Rect) Quadrant(corner Corner) Rect {
	half := a.Size / 2
	q := Rect{X: a.X, Y: a.Y, Size: half}
	switch corner {
	case NE:
		q.X += half
	case SE:
		q.X += half
		q.Y += half
	case SW:
		q.Y += half
	}
	return q
}

func (a Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d, %d)", a.Size, a.Size, a.X, a.Y)
}
