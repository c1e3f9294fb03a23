// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package atlas

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	"github.com/SoftbearStudios/truchet/truchet/tile"
	"github.com/gogpu/gg"
	"math"
)

var (
	ErrTileSize = errors.New("tile size too small for level count")
	ErrLevels   = errors.New("level count must be positive")
)

// Atlas holds one pre-rendered image per (level, kind). Images are immutable
// after Build and may be shared between goroutines.
type Atlas struct {
	tileSize int
	palette  palette.Palette
	tiles    [][tile.NumKinds]*gg.ImageBuf
}

// Build renders every kind at every level. Level 0 has logical size tileSize
// and each further level halves it. Colors swap between consecutive levels.
func Build(tileSize, levels int, p palette.Palette) (*Atlas, error) {
	a, err := newLayout(tileSize, levels, p)
	if err != nil {
		return nil, err
	}

	for level := range a.tiles {
		size := a.TileSize(level)
		colors := a.Colors(level)
		for _, kind := range tile.Kinds() {
			a.tiles[level][kind] = render(kind, size, colors)
		}
	}

	return a, nil
}

// newLayout checks the parameters and returns an Atlas without images.
// WriteSVG uses it for geometry only.
func newLayout(tileSize, levels int, p palette.Palette) (*Atlas, error) {
	if levels < 1 {
		return nil, ErrLevels
	}
	if tileSize>>(levels-1) < 2 {
		return nil, fmt.Errorf("%w: %d at %d levels", ErrTileSize, tileSize, levels)
	}
	return &Atlas{
		tileSize: tileSize,
		palette:  p,
		tiles:    make([][tile.NumKinds]*gg.ImageBuf, levels),
	}, nil
}

// Tile returns the image for kind at level. The image is twice the logical
// tile size on each side. Panics if either is out of range.
func (a *Atlas) Tile(level int, kind tile.Kind) *gg.ImageBuf {
	if level < 0 || level >= len(a.tiles) {
		panic(fmt.Sprintf("atlas has no level %d", level))
	}
	if !kind.Valid() {
		panic(fmt.Sprintf("atlas has no %s", kind))
	}
	return a.tiles[level][kind]
}

// Levels is the number of levels rendered.
func (a *Atlas) Levels() int {
	return len(a.tiles)
}

// TileSize is the logical tile size at level.
func (a *Atlas) TileSize(level int) int {
	return a.tileSize >> level
}

// Colors returns the palette as used at level: swapped on odd levels.
func (a *Atlas) Colors(level int) palette.Palette {
	if level%2 == 1 {
		return a.palette.Swap()
	}
	return a.palette
}

func render(kind tile.Kind, size int, colors palette.Palette) *gg.ImageBuf {
	side := 2 * size
	dc := gg.NewContext(side, side)

	primary := brush(colors.Primary, colors.PrimaryEnd, colors.Gradient, side)
	secondary := brush(colors.Secondary, colors.SecondaryEnd, colors.Gradient, side)

	for _, p := range Recipe(kind, size) {
		if p.Role == Primary {
			dc.SetFillBrush(primary)
		} else {
			dc.SetFillBrush(secondary)
		}
		trace(dc, p)
		// Fill only errors on an accelerator failure, after which the software
		// rasterizer has already drawn the path.
		_ = dc.Fill()
	}

	_ = dc.FlushGPU()
	img := gg.ImageBufFromImage(dc.Image())
	_ = dc.Close()
	return img
}

func brush(start, end palette.ColorVec, gradient bool, side int) gg.Brush {
	if !gradient {
		return gg.Solid(gg.FromColor(start.Color()))
	}
	return gg.NewLinearGradientBrush(0, 0, float64(side), float64(side)).
		AddColorStop(0, gg.FromColor(start.Color())).
		AddColorStop(1, gg.FromColor(end.Color()))
}

func trace(dc *gg.Context, p Primitive) {
	x, y := float64(p.X), float64(p.Y)
	w, h := float64(p.W), float64(p.H)

	switch p.Shape {
	case ShapeRect:
		dc.DrawRectangle(x, y, w, h)
	case ShapeCircle:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	case ShapePie:
		cx, cy, r := x+w/2, y+h/2, w/2
		a1 := radians(p.Start)
		a2 := radians(p.Start + Sweep)
		dc.MoveTo(cx, cy)
		dc.LineTo(cx+r*math.Cos(a1), cy+r*math.Sin(a1))
		dc.DrawArc(cx, cy, r, a1, a2)
		dc.ClosePath()
	default:
		panic(fmt.Sprintf("unknown shape %d", p.Shape))
	}
}

func radians(degrees int) float64 {
	return float64(degrees) * math.Pi / 180
}
