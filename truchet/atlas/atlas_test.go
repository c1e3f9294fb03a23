// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package atlas

import (
	"bytes"
	"encoding/xml"
	"errors"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	"github.com/SoftbearStudios/truchet/truchet/tile"
	"github.com/gogpu/gg"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"
)

var xiketic = palette.Builtin[palette.DefaultIndex]

func pixel(img *gg.ImageBuf, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.ToStdImage().At(x, y)).(color.NRGBA)
}

func near(a color.NRGBA, b color.RGBA) bool {
	d := func(x, y uint8) bool {
		if x > y {
			return x-y <= 2
		}
		return y-x <= 2
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestRecipe_Geometry(t *testing.T) {
	r := Recipe(tile.Cross, 300)

	expected := []Primitive{
		{Shape: ShapeRect, Role: Primary, X: 150, Y: 150, W: 300, H: 300},
		{Shape: ShapePie, Role: Secondary, X: -50, Y: -50, W: 400, H: 400, Start: 0, Corner: tile.NW},
		{Shape: ShapePie, Role: Secondary, X: 250, Y: -50, W: 400, H: 400, Start: 90, Corner: tile.NE},
		{Shape: ShapePie, Role: Secondary, X: 250, Y: 250, W: 400, H: 400, Start: 180, Corner: tile.SE},
		{Shape: ShapePie, Role: Secondary, X: -50, Y: 250, W: 400, H: 400, Start: 270, Corner: tile.SW},
		{Shape: ShapeRect, Role: Secondary, X: 250, Y: 150, W: 100, H: 300},
		{Shape: ShapeCircle, Role: Primary, X: 50, Y: 50, W: 200, H: 200},
		{Shape: ShapeCircle, Role: Primary, X: 50, Y: 350, W: 200, H: 200},
		{Shape: ShapeCircle, Role: Primary, X: 350, Y: 50, W: 200, H: 200},
		{Shape: ShapeCircle, Role: Primary, X: 350, Y: 350, W: 200, H: 200},
		{Shape: ShapeCircle, Role: Secondary, X: 250, Y: 100, W: 100, H: 100},
		{Shape: ShapeCircle, Role: Secondary, X: 250, Y: 400, W: 100, H: 100},
		{Shape: ShapeCircle, Role: Secondary, X: 100, Y: 250, W: 100, H: 100},
		{Shape: ShapeCircle, Role: Secondary, X: 400, Y: 250, W: 100, H: 100},
	}

	if len(r) != len(expected) {
		t.Fatalf("expected %d primitives, got %d", len(expected), len(r))
	}
	for i := range r {
		if r[i] != expected[i] {
			t.Errorf("primitive %d: expected %v, got %v", i, expected[i], r[i])
		}
	}
}

func TestRecipe_Counts(t *testing.T) {
	for _, kind := range tile.Kinds() {
		c := kind.Connectors()
		n := 9 // square, 4 corner circles, 4 edge circles
		for _, pie := range c.Pies {
			if pie {
				n++
			}
		}
		if c.Vertical {
			n++
		}
		if c.Horizontal {
			n++
		}
		if got := len(Recipe(kind, 64)); got != n {
			t.Errorf("%s: expected %d primitives, got %d", kind, n, got)
		}
	}
}

func TestRecipe_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid kind")
		}
	}()
	Recipe(tile.Kind(tile.NumKinds), 300)
}

func TestBuild_Complete(t *testing.T) {
	a, err := Build(300, 3, xiketic)
	if err != nil {
		t.Fatal(err)
	}
	if a.Levels() != 3 {
		t.Errorf("expected 3 levels, got %d", a.Levels())
	}

	for level := 0; level < 3; level++ {
		side := 2 * (300 >> level)
		for _, kind := range tile.Kinds() {
			img := a.Tile(level, kind)
			if img == nil {
				t.Fatalf("missing %s at level %d", kind, level)
			}
			if img.Width() != side || img.Height() != side {
				t.Errorf("%s at level %d: expected %d, got %dx%d", kind, level, side, img.Width(), img.Height())
			}
		}
	}

	if a.Tile(1, tile.Cross) != a.Tile(1, tile.Cross) {
		t.Error("Tile should return the same image every call")
	}
}

func TestBuild_Pixels(t *testing.T) {
	a, err := Build(300, 2, xiketic)
	if err != nil {
		t.Fatal(err)
	}

	primary, secondary := xiketic.Primary.Color(), xiketic.Secondary.Color()

	if c := pixel(a.Tile(0, tile.Empty), 300, 300); !near(c, primary) {
		t.Errorf("empty center: expected %v, got %v", primary, c)
	}
	if c := pixel(a.Tile(0, tile.Vertical), 300, 300); !near(c, secondary) {
		t.Errorf("vertical center: expected %v, got %v", secondary, c)
	}
	if c := pixel(a.Tile(0, tile.Horizontal), 300, 300); !near(c, secondary) {
		t.Errorf("horizontal center: expected %v, got %v", secondary, c)
	}
	if c := pixel(a.Tile(0, tile.Empty), 0, 0); c.A != 0 {
		t.Errorf("margin corner should be transparent, got %v", c)
	}

	// Roles swap at the next level.
	if c := pixel(a.Tile(1, tile.Empty), 150, 150); !near(c, secondary) {
		t.Errorf("level 1 empty center: expected %v, got %v", secondary, c)
	}
	if c := pixel(a.Tile(1, tile.Vertical), 150, 150); !near(c, primary) {
		t.Errorf("level 1 vertical center: expected %v, got %v", primary, c)
	}
}

func TestBuild_Identical(t *testing.T) {
	for _, p := range palette.Builtin {
		a, err := Build(60, 3, p)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Build(60, 3, p)
		if err != nil {
			t.Fatal(err)
		}

		for level := 0; level < 3; level++ {
			for _, kind := range tile.Kinds() {
				imgA, imgB := a.Tile(level, kind).ToStdImage(), b.Tile(level, kind).ToStdImage()
				if imgA.Bounds() != imgB.Bounds() {
					t.Fatalf("%s: %s at level %d: bounds differ", p.Name, kind, level)
				}
				if !samePixels(imgA, imgB) {
					t.Errorf("%s: %s at level %d differs between builds", p.Name, kind, level)
				}
			}
		}
	}
}

func samePixels(a, b image.Image) bool {
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if color.NRGBAModel.Convert(a.At(x, y)) != color.NRGBAModel.Convert(b.At(x, y)) {
				return false
			}
		}
	}
	return true
}

func TestBuild_Invalid(t *testing.T) {
	if _, err := Build(300, 0, xiketic); !errors.Is(err, ErrLevels) {
		t.Errorf("expected ErrLevels, got %v", err)
	}
	if _, err := Build(4, 3, xiketic); !errors.Is(err, ErrTileSize) {
		t.Errorf("expected ErrTileSize, got %v", err)
	}
}

func TestAtlas_Colors(t *testing.T) {
	a, err := Build(60, 3, xiketic)
	if err != nil {
		t.Fatal(err)
	}
	if a.Colors(0) != xiketic || a.Colors(2) != xiketic {
		t.Error("even levels should use the palette as is")
	}
	if a.Colors(1) != xiketic.Swap() {
		t.Error("odd levels should swap")
	}
}

func TestAtlas_TilePanics(t *testing.T) {
	a, err := Build(60, 2, xiketic)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing level")
		}
	}()
	a.Tile(2, tile.Empty)
}

func TestAtlas_Sheet(t *testing.T) {
	a, err := Build(60, 3, xiketic)
	if err != nil {
		t.Fatal(err)
	}
	w, h := a.SheetSize()
	if w != 120*tile.NumKinds || h != 120+60+30 {
		t.Errorf("unexpected sheet size %dx%d", w, h)
	}
	b := a.Sheet().Bounds()
	if b.Dx() != w || b.Dy() != h {
		t.Errorf("sheet bounds %v do not match %dx%d", b, w, h)
	}
}

func TestWriteSVG(t *testing.T) {
	for _, p := range []palette.Palette{xiketic, palette.Builtin[len(palette.Builtin)-1]} {
		var buf bytes.Buffer
		if err := WriteSVG(&buf, 60, 2, p); err != nil {
			t.Fatal(err)
		}

		out := buf.String()
		if !strings.Contains(out, "<svg") {
			t.Fatalf("%s: not an svg document", p.Name)
		}
		if p.Gradient != strings.Contains(out, "linearGradient") {
			t.Errorf("%s: gradient definitions should match palette", p.Name)
		}
		if n := strings.Count(out, "translate("); n != 2*tile.NumKinds {
			t.Errorf("%s: expected %d tiles, got %d", p.Name, 2*tile.NumKinds, n)
		}

		decoder := xml.NewDecoder(&buf)
		for {
			_, err := decoder.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("%s: malformed svg: %v", p.Name, err)
			}
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Build(300, 3, xiketic); err != nil {
			b.Fatal(err)
		}
	}
}
