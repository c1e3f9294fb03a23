// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package palette

import (
	"fmt"
	"github.com/chewxy/math32"
	"image/color"
	"strconv"
	"strings"
)

// ColorVec is an RGB color with components in [0, 1].
type ColorVec [3]float32

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

// Hex creates a color from a 0xRRGGBB integer.
func Hex(rgb uint32) ColorVec {
	return RGB(byte(rgb>>16), byte(rgb>>8), byte(rgb))
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (ColorVec, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return ColorVec{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColorVec{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}

// HexString formats the color as "#RRGGBB".
func (vec ColorVec) HexString() string {
	c := vec.Color()
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("vec4(%.3f, %.3f, %.3f, 1.0)", vec[0], vec[1], vec[2])
}

func (vec ColorVec) Mul(v float32) ColorVec {
	vec[0] *= v
	vec[1] *= v
	vec[2] *= v
	return vec
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = lerp(vec[i], other[i], factor)
	}
	return vec
}

// Color converts to an opaque color.RGBA.
func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func clamp(f float32) float32 {
	return math32.Max(0, math32.Min(1, f))
}

// floatToByte rounds to the nearest byte so that RGB round trips exactly.
func floatToByte(f float32) byte {
	return byte(math32.Floor(clamp(f)*255 + 0.5))
}

// Ramp maps v in [0, 1] onto a 256-step ramp from a to b, flooring like the
// greyscale debug image does.
func Ramp(a, b ColorVec, v float64) ColorVec {
	step := math32.Floor(255 * clamp(float32(v)))
	return a.Lerp(b, step/255)
}
