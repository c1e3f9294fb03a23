// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"github.com/SoftbearStudios/truchet/truchet/forest"
	"github.com/SoftbearStudios/truchet/truchet/tile"
	"github.com/gogpu/gg"
	"image/color"
	"testing"
)

type placement struct {
	img  *gg.ImageBuf
	x, y float64
}

type recorder struct {
	placements []placement
}

func (r *recorder) DrawImage(img *gg.ImageBuf, x, y float64) {
	r.placements = append(r.placements, placement{img, x, y})
}

func TestOffset(t *testing.T) {
	tests := []struct {
		tileSize   int
		depth      int
		borderless bool
		offset     int
	}{
		{300, 0, true, -150},
		{300, 0, false, 0},
		{300, 1, true, -75},
		{300, 1, false, 75},
		{300, 2, true, -38},
		{300, 2, false, 112},
		{320, 3, true, -20},
		{320, 3, false, 140},
	}

	for _, test := range tests {
		if got := Offset(test.tileSize, test.depth, test.borderless); got != test.offset {
			t.Errorf("Offset(%d, %d, %v): expected %d, got %d", test.tileSize, test.depth, test.borderless, test.offset, got)
		}
	}
}

func TestOffset_CentresTileSquare(t *testing.T) {
	// A tile image at depth d has a margin of half its logical size, which
	// must cancel exactly for borderless canvases.
	const tileSize = 256
	for depth := 0; depth < 5; depth++ {
		margin := (tileSize >> depth) / 2
		if got := Offset(tileSize, depth, true) + margin; got != 0 {
			t.Errorf("depth %d: tile square off by %d", depth, got)
		}
	}
}

func TestCanvasSize(t *testing.T) {
	if w, h := CanvasSize(4, 4, 300, true); w != 1200 || h != 1200 {
		t.Errorf("borderless: expected 1200x1200, got %dx%d", w, h)
	}
	if w, h := CanvasSize(4, 4, 300, false); w != 1500 || h != 1500 {
		t.Errorf("bordered: expected 1500x1500, got %dx%d", w, h)
	}
	if w, h := CanvasSize(2, 3, 100, true); w != 300 || h != 200 {
		t.Errorf("expected 300x200, got %dx%d", w, h)
	}
}

func newImage(t *testing.T) *gg.ImageBuf {
	t.Helper()
	img, err := gg.NewImageBuf(1, 1, gg.FormatRGBA8)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestDraw_Order(t *testing.T) {
	leafA := &forest.Leaf{Rect: tile.RectFrom(0, 0, 300), Level: 1, Image: newImage(t)}

	var children [4]forest.Node
	parent := tile.RectFrom(300, 0, 300)
	for i := range children {
		children[i] = &forest.Leaf{Rect: parent.Quadrant(tile.Corner(i)), Level: 2, Image: newImage(t)}
	}

	f := &forest.Forest{
		Roots:    [][]forest.Node{{leafA, forest.NewContainer(parent, 1, children)}},
		TileSize: 300,
		Levels:   2,
	}

	r := &recorder{}
	Draw(r, f, true)

	if len(r.placements) != 5 {
		t.Fatalf("expected 5 placements, got %d", len(r.placements))
	}
	if p := r.placements[0]; p.img != leafA.Image || p.x != -150 || p.y != -150 {
		t.Errorf("root leaf placed at (%v, %v)", p.x, p.y)
	}
	for i, p := range r.placements[1:] {
		leaf := children[i].(*forest.Leaf)
		x, y := float64(leaf.Rect.X-75), float64(leaf.Rect.Y-75)
		if p.img != leaf.Image || p.x != x || p.y != y {
			t.Errorf("child %d: expected (%v, %v), got (%v, %v)", i, x, y, p.x, p.y)
		}
	}
}

func TestDraw_StopsAtLevels(t *testing.T) {
	var children [4]forest.Node
	for i := range children {
		children[i] = &forest.Leaf{Rect: tile.RectFrom(0, 0, 50).Quadrant(tile.Corner(i)), Level: 2, Image: newImage(t)}
	}
	f := &forest.Forest{
		Roots:    [][]forest.Node{{forest.NewContainer(tile.RectFrom(0, 0, 50), 1, children)}},
		TileSize: 50,
		Levels:   1,
	}

	r := &recorder{}
	Draw(r, f, false)
	if len(r.placements) != 0 {
		t.Errorf("expected nothing past the last level, got %d placements", len(r.placements))
	}
}

func TestRender_Size(t *testing.T) {
	f := &forest.Forest{
		Roots:    [][]forest.Node{{&forest.Leaf{Rect: tile.RectFrom(0, 0, 10), Level: 1, Image: newImage(t)}}},
		TileSize: 10,
		Levels:   1,
	}
	w, h := CanvasSize(1, 1, 10, false)
	img := Render(f, Options{Width: w, Height: h, Background: color.White})
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("expected 20x20, got %v", b)
	}
	if r, _, _, a := img.At(19, 19).RGBA(); r != 0xffff || a != 0xffff {
		t.Error("background should be white")
	}
}
