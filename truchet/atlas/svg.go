// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package atlas

import (
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	"github.com/SoftbearStudios/truchet/truchet/tile"
	svg "github.com/ajstarks/svgo"
	"io"
	"math"
	"strconv"
)

// WriteSVG writes the atlas sheet as vector graphics, laid out like Sheet.
func WriteSVG(w io.Writer, tileSize, levels int, p palette.Palette) error {
	a, err := newLayout(tileSize, levels, p)
	if err != nil {
		return err
	}

	width, height := a.SheetSize()
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(p.Name)

	if p.Gradient {
		canvas.Def()
		for level := 0; level < levels; level++ {
			colors := a.Colors(level)
			gradient(canvas, fillID(Primary, level), colors.Primary, colors.PrimaryEnd)
			gradient(canvas, fillID(Secondary, level), colors.Secondary, colors.SecondaryEnd)
		}
		canvas.DefEnd()
	}

	y := 0
	for level := 0; level < levels; level++ {
		size := a.TileSize(level)
		colors := a.Colors(level)
		fills := [2]string{
			Primary:   fill(colors.Gradient, colors.Primary, Primary, level),
			Secondary: fill(colors.Gradient, colors.Secondary, Secondary, level),
		}

		for _, kind := range tile.Kinds() {
			canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", int(kind)*2*size, y))
			for _, prim := range Recipe(kind, size) {
				style := fills[prim.Role]
				switch prim.Shape {
				case ShapeRect:
					canvas.Rect(prim.X, prim.Y, prim.W, prim.H, style)
				case ShapeCircle:
					canvas.Path(circlePath(prim), style)
				case ShapePie:
					canvas.Path(piePath(prim), style)
				}
			}
			canvas.Gend()
		}
		y += 2 * size
	}

	canvas.End()
	return nil
}

func fillID(role Role, level int) string {
	if role == Primary {
		return "p" + strconv.Itoa(level)
	}
	return "s" + strconv.Itoa(level)
}

func fill(gradient bool, c palette.ColorVec, role Role, level int) string {
	if gradient {
		return "fill:url(#" + fillID(role, level) + ")"
	}
	return "fill:" + c.HexString()
}

func gradient(canvas *svg.SVG, id string, start, end palette.ColorVec) {
	canvas.LinearGradient(id, 0, 0, 100, 100, []svg.Offcolor{
		{Offset: 0, Color: start.HexString(), Opacity: 1},
		{Offset: 100, Color: end.HexString(), Opacity: 1},
	})
}

func circlePath(p Primitive) string {
	r := float64(p.W) / 2
	cx, cy := float64(p.X)+r, float64(p.Y)+r
	return fmt.Sprintf("M%s,%s A%s,%s 0 1,0 %s,%s A%s,%s 0 1,0 %s,%s Z",
		num(cx-r), num(cy), num(r), num(r), num(cx+r), num(cy),
		num(r), num(r), num(cx-r), num(cy))
}

// piePath sweeps clockwise on screen, which is the positive angle direction
// with y pointing down.
func piePath(p Primitive) string {
	r := float64(p.W) / 2
	cx, cy := float64(p.X)+r, float64(p.Y)+r
	a1 := radians(p.Start)
	a2 := radians(p.Start + Sweep)
	return fmt.Sprintf("M%s,%s L%s,%s A%s,%s 0 0,1 %s,%s Z",
		num(cx), num(cy),
		num(cx+r*math.Cos(a1)), num(cy+r*math.Sin(a1)),
		num(r), num(r),
		num(cx+r*math.Cos(a2)), num(cy+r*math.Sin(a2)))
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
