// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Sampler evaluates coherent noise at a point.
// Implementations must be safe for concurrent use after construction.
type Sampler interface {
	Noise2D(x, y float64) float64
}

const (
	// BackendGradient is the seeded gradient noise of this package.
	BackendGradient = "gradient"
	// BackendPerlin is aquilax/go-perlin.
	BackendPerlin = "perlin"
	// BackendSimplex is ojrac/opensimplex-go.
	BackendSimplex = "simplex"
)

// Backends lists the names accepted by NewSampler.
var Backends = []string{BackendGradient, BackendPerlin, BackendSimplex}

// Perlin adapts go-perlin to Sampler.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates a Perlin sampler with the same alpha/beta/n that
// terrain generators commonly use.
func NewPerlin(seed int64) *Perlin {
	const (
		alpha = 2.0
		beta  = 2.0
		n     = 3
	)
	return &Perlin{p: perlin.NewPerlin(alpha, beta, n, seed)}
}

func (p *Perlin) Noise2D(x, y float64) float64 {
	return p.p.Noise2D(x, y)
}

// Simplex adapts opensimplex to Sampler.
type Simplex struct {
	n opensimplex.Noise
}

func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.New(seed)}
}

func (s *Simplex) Noise2D(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

// NewSampler creates a sampler by backend name. Only the gradient backend
// draws from rng; the others are seeded directly.
func NewSampler(backend string, seed int64, rng Rand) (Sampler, error) {
	switch backend {
	case "", BackendGradient:
		return NewGradient(rng), nil
	case BackendPerlin:
		return NewPerlin(seed), nil
	case BackendSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}
