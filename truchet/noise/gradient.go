// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "math"

// TableSize is the number of permutation entries and gradient vectors.
const TableSize = 256

// Rand is the subset of *rand.Rand the gradient tables draw from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Gradient is seeded 2D gradient noise.
// The tables are read-only after NewGradient, so Noise2D may be called concurrently.
type Gradient struct {
	permutation [TableSize]int
	gradients   [TableSize]Vec2
}

// NewGradient builds the tables from rng. The permutation shuffle consumes
// the stream first, then the gradient vectors, so the same stream always
// yields the same tables.
func NewGradient(rng Rand) *Gradient {
	g := &Gradient{}
	g.shufflePermutation(rng)
	g.randomizeGradients(rng)
	return g
}

// Fisher-Yates.
func (g *Gradient) shufflePermutation(rng Rand) {
	for i := range g.permutation {
		g.permutation[i] = i
	}
	for i := TableSize - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		g.permutation[i], g.permutation[j] = g.permutation[j], g.permutation[i]
	}
}

func (g *Gradient) randomizeGradients(rng Rand) {
	for i := range g.gradients {
		var v Vec2
		for {
			v = Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
			if l := v.LengthSquared(); l < 1 && l > 0 {
				break
			}
		}
		g.gradients[i] = v.Norm()
	}
}

// Permutation returns a copy of the permutation table.
func (g *Gradient) Permutation() [TableSize]int {
	return g.permutation
}

// Gradients returns a copy of the gradient table.
func (g *Gradient) Gradients() [TableSize]Vec2 {
	return g.gradients
}

func (g *Gradient) gradientAt(cx, cy int) Vec2 {
	i := g.permutation[cx&(TableSize-1)]
	i = g.permutation[(i+cy&(TableSize-1))&(TableSize-1)]
	return g.gradients[i]
}

// Noise2D implements Sampler. The result is in [-1, 1].
func (g *Gradient) Noise2D(x, y float64) float64 {
	origin := Vec2{X: x, Y: y}
	cell := origin.Floor()
	cx, cy := int(cell.X), int(cell.Y)

	corners := [4][2]int{
		{cx, cy},
		{cx, cy + 1},
		{cx + 1, cy},
		{cx + 1, cy + 1},
	}

	var sum float64
	for _, corner := range corners {
		w := origin.Sub(Vec2{X: float64(corner[0]), Y: float64(corner[1])})
		grad := g.gradientAt(corner[0], corner[1])
		sum += Smoothstep(w.X) * Smoothstep(w.Y) * grad.Dot(w)
	}

	return math.Max(math.Min(sum, 1), -1)
}

// Smoothstep is the quintic falloff kernel: 1 at t=0, 0 at |t|=1, symmetric.
func Smoothstep(t float64) float64 {
	t = math.Abs(t)
	return 1 - t*t*t*(t*(t*6-15)+10)
}
