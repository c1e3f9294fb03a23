// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package forest

// Rand is the random stream shared by policies and leaf selection.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Policy decides whether the square at logical (x, y) on level subdivides.
// Implementations may draw from a random stream, so call order matters.
type Policy interface {
	Subdivide(x, y, level int) bool
}

// Uniform subdivides with probability 1/(level+1), never past MaxLevel.
type Uniform struct {
	Rand     Rand
	MaxLevel int
}

func (u Uniform) Subdivide(_, _ int, level int) bool {
	return level < u.MaxLevel && u.Rand.Intn(level+1) == 0
}

// Field is a scalar field in [0, 1], sampled with clamped coordinates.
// *noise.Field satisfies it.
type Field interface {
	At(x, y int) float64
}

// Defaults of NoiseBiased.
const (
	DefaultDecimation  = 10
	DefaultLimit       = 0.5
	DefaultRisingLimit = 0.05
	DefaultJitterScale = 0.2
)

// NoiseBiased subdivides where the field is low. The threshold drops by
// RisingLimit every level, so deep subdivision needs ever lower noise.
// Decimation maps logical coordinates to field samples.
type NoiseBiased struct {
	Rand        Rand
	Field       Field
	MaxLevel    int
	Decimation  int
	Limit       float64
	RisingLimit float64
	JitterScale float64
}

// NewNoiseBiased uses the default constants.
func NewNoiseBiased(rng Rand, field Field, maxLevel int) *NoiseBiased {
	return &NoiseBiased{
		Rand:        rng,
		Field:       field,
		MaxLevel:    maxLevel,
		Decimation:  DefaultDecimation,
		Limit:       DefaultLimit,
		RisingLimit: DefaultRisingLimit,
		JitterScale: DefaultJitterScale,
	}
}

func (n *NoiseBiased) Subdivide(x, y, level int) bool {
	decimation := n.Decimation
	if decimation < 1 {
		decimation = 1
	}

	// The jitter is drawn even at the last level to keep the stream aligned.
	value := n.Field.At(x/decimation, y/decimation) + (n.Rand.Float64()-0.5)*n.JitterScale
	if level >= n.MaxLevel {
		return false
	}
	return value < n.Limit-float64(level-1)*n.RisingLimit
}
