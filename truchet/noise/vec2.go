// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "math"

// Vec2 is a float64 vector on the noise lattice.
type Vec2 struct {
	X float64
	Y float64
}

func (vec Vec2) Sub(otherVec Vec2) Vec2 {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2) Dot(otherVec Vec2) float64 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y
}

func (vec Vec2) LengthSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y
}

// Norm returns a unit vector, or vec unchanged if it has zero length.
func (vec Vec2) Norm() Vec2 {
	l := vec.LengthSquared()
	if l <= 0 {
		return vec
	}
	inv := 1 / math.Sqrt(l)
	return Vec2{X: vec.X * inv, Y: vec.Y * inv}
}

func (vec Vec2) Floor() Vec2 {
	vec.X = math.Floor(vec.X)
	vec.Y = math.Floor(vec.Y)
	return vec
}
