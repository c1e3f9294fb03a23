// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package atlas

import (
	"github.com/SoftbearStudios/truchet/truchet/tile"
	"github.com/gogpu/gg"
	"image"
)

// SheetSize is the size of the image returned by Sheet.
func (a *Atlas) SheetSize() (width, height int) {
	width = 2 * a.tileSize * tile.NumKinds
	for level := range a.tiles {
		height += 2 * a.TileSize(level)
	}
	return
}

// Sheet lays out the whole atlas on a transparent image, one row per level
// and one column per kind.
func (a *Atlas) Sheet() image.Image {
	width, height := a.SheetSize()
	dc := gg.NewContext(width, height)
	defer dc.Close()

	y := 0
	for level, row := range a.tiles {
		side := 2 * a.TileSize(level)
		for kind, img := range row {
			dc.DrawImage(img, float64(kind*side), float64(y))
		}
		y += side
	}

	return dc.Image()
}
