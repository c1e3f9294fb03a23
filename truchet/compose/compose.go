// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose draws a forest onto a canvas.
package compose

import (
	"github.com/SoftbearStudios/truchet/truchet/forest"
	"github.com/gogpu/gg"
	"image"
	"image/color"
)

// Canvas receives tile images at pixel positions. *gg.Context satisfies it.
type Canvas interface {
	DrawImage(img *gg.ImageBuf, x, y float64)
}

// Offset is added to both coordinates of every leaf at traversal depth
// (0 for roots). Tile images are twice their logical size with the tile
// square centred, so the offset pulls the square back onto its logical
// position; a bordered canvas keeps a half tile margin on every side.
func Offset(tileSize, depth int, borderless bool) int {
	offset := 0
	if borderless {
		offset = -tileSize / 2
	}
	if depth > 0 {
		t := tileSize / 4
		offset += t
		for i := 1; i < depth; i++ {
			t /= 2
			offset += t
		}
	}
	return offset
}

// CanvasSize is the pixel size of a rendered grid. A bordered canvas is one
// tile larger in each dimension.
func CanvasSize(rows, columns, tileSize int, borderless bool) (width, height int) {
	if !borderless {
		rows++
		columns++
	}
	return columns * tileSize, rows * tileSize
}

// Draw paints the forest breadth first, one depth at a time, so deeper tiles
// cover their ancestors' neighbours.
func Draw(c Canvas, f *forest.Forest, borderless bool) {
	var frontier []forest.Node
	for _, row := range f.Roots {
		frontier = append(frontier, row...)
	}

	for depth := 0; depth < f.Levels && len(frontier) > 0; depth++ {
		offset := Offset(f.TileSize, depth, borderless)
		var next []forest.Node

		for _, n := range frontier {
			switch n := n.(type) {
			case *forest.Leaf:
				c.DrawImage(n.Image, float64(n.Rect.X+offset), float64(n.Rect.Y+offset))
			case *forest.Container:
				next = append(next, n.Children[:]...)
			}
		}

		frontier = next
	}
}

type Options struct {
	Width      int
	Height     int
	Borderless bool
	// Background fills the canvas first. Nil leaves it transparent.
	Background color.Color
}

// Render draws the forest onto a new canvas of the given size.
func Render(f *forest.Forest, o Options) image.Image {
	dc := gg.NewContext(o.Width, o.Height)
	defer dc.Close()

	if o.Background != nil {
		dc.ClearWithColor(gg.FromColor(o.Background))
	}
	Draw(dc, f, o.Borderless)

	_ = dc.FlushGPU()
	return dc.Image()
}
