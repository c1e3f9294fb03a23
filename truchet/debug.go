// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package truchet

import (
	"github.com/SoftbearStudios/truchet/truchet/noise"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// NoiseImage renders f as greyscale, one pixel per sample, scaled up by
// scale with nearest neighbour sampling.
func NoiseImage(f *noise.Field, scale int) image.Image {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for x := 0; x < f.Width; x++ {
		for y, v := range f.Column(x) {
			img.SetGray(x, y, color.Gray{Y: uint8(math.Floor(255 * v))})
		}
	}

	if scale <= 1 {
		return img
	}

	scaled := image.NewGray(image.Rect(0, 0, f.Width*scale, f.Height*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled
}

// Thumbnail scales img so its longer side is size, keeping the aspect ratio.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() >= b.Dy() {
		return resize.Resize(uint(size), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(size), img, resize.Lanczos3)
}

// EncodePNG writes the generated image.
func (r *Result) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image)
}
