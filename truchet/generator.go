// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package truchet generates images of recursively subdivided Truchet tiles.
//
// A Generator validates a Config, renders the tile atlas once, and then
// produces images: an optional noise field biases where tiles subdivide, a
// forest of subdivision trees picks a tile per leaf, and the compositor
// paints the leaves breadth first.
package truchet

import (
	"github.com/SoftbearStudios/truchet/truchet/atlas"
	"github.com/SoftbearStudios/truchet/truchet/compose"
	"github.com/SoftbearStudios/truchet/truchet/forest"
	"github.com/SoftbearStudios/truchet/truchet/noise"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	"image"
	"math/rand"
	"time"
)

// Stage names a step of Generate.
type Stage string

const (
	StageNoise   Stage = "noise"
	StageForest  Stage = "forest"
	StageCompose Stage = "compose"
	StageDone    Stage = "done"
)

// Generator owns everything one configuration needs. It is not safe for
// concurrent use, but its atlas is, and may be shared through Atlas.
type Generator struct {
	cfg     Config
	palette palette.Palette
	atlas   *atlas.Atlas
	// OnStage, if set, is called after each stage with the partial result.
	OnStage func(stage Stage, r *Result)
}

// Result is one generated image and what went into it.
type Result struct {
	Config  Config
	Palette palette.Palette
	// Field is nil when noise is disabled.
	Field    *noise.Field
	Forest   *forest.Forest
	Stats    forest.Stats
	Image    image.Image
	Timings  map[Stage]time.Duration
	Finished time.Time
}

// New validates cfg and renders the atlas. Nil palettes means the built-in
// list.
func New(cfg Config, palettes palette.List) (*Generator, error) {
	if palettes == nil {
		palettes = palette.Builtin
	}
	if err := cfg.Validate(len(palettes)); err != nil {
		return nil, err
	}

	start := time.Now()
	p := palettes[cfg.Palette]
	a, err := atlas.Build(cfg.TileSize, cfg.Levels, p)
	if err != nil {
		return nil, err
	}
	Logger().Debug("atlas built", "palette", p.Name, "levels", cfg.Levels, "elapsed", time.Since(start))

	return &Generator{cfg: cfg, palette: p, atlas: a}, nil
}

func (g *Generator) Config() Config {
	return g.cfg
}

func (g *Generator) Palette() palette.Palette {
	return g.palette
}

func (g *Generator) Atlas() *atlas.Atlas {
	return g.atlas
}

// Generate produces an image. Every call starts a fresh random stream from
// the seed, so repeated calls return identical results. The noise tables
// are drawn from the stream before the forest.
func (g *Generator) Generate() (*Result, error) {
	cfg := g.cfg
	rng := rand.New(rand.NewSource(cfg.Seed))
	r := &Result{
		Config:  cfg,
		Palette: g.palette,
		Timings: make(map[Stage]time.Duration, 3),
	}

	var policy forest.Policy = forest.Uniform{Rand: rng, MaxLevel: cfg.Levels}
	if cfg.Noise {
		start := time.Now()
		field, err := g.field(rng)
		if err != nil {
			return nil, err
		}
		r.Field = field
		policy = &forest.NoiseBiased{
			Rand:        rng,
			Field:       field,
			MaxLevel:    cfg.Levels,
			Decimation:  cfg.NoiseParams.Decimation,
			Limit:       cfg.Subdivision.Limit,
			RisingLimit: cfg.Subdivision.RisingLimit,
			JitterScale: cfg.Subdivision.JitterScale,
		}
		g.stage(StageNoise, r, start)
	}

	start := time.Now()
	f, err := forest.Build(forest.Options{
		Rows:         cfg.Rows,
		Columns:      cfg.Columns,
		TileSize:     cfg.TileSize,
		MaxLevel:     cfg.Levels,
		Policy:       policy,
		Rand:         rng,
		Images:       g.atlas,
		ExcludeEmpty: cfg.ExcludeEmpty,
	})
	if err != nil {
		return nil, err
	}
	r.Forest = f
	r.Stats = f.Stats()
	g.stage(StageForest, r, start)

	start = time.Now()
	width, height := cfg.CanvasSize()
	r.Image = compose.Render(f, compose.Options{
		Width:      width,
		Height:     height,
		Borderless: cfg.Borderless,
	})
	g.stage(StageCompose, r, start)

	r.Finished = time.Now()
	Logger().Info("generated",
		"seed", cfg.Seed,
		"size", [2]int{width, height},
		"leaves", r.Stats.TotalLeaves(),
		"containers", r.Stats.TotalContainers(),
	)
	if g.OnStage != nil {
		g.OnStage(StageDone, r)
	}
	return r, nil
}

func (g *Generator) field(rng *rand.Rand) (*noise.Field, error) {
	np := g.cfg.NoiseParams
	sampler, err := noise.NewSampler(np.Backend, g.cfg.Seed, rng)
	if err != nil {
		return nil, &ConfigError{Kind: InvalidNoise, Field: "noiseParams.backend", Value: np.Backend}
	}

	width, height := g.cfg.FieldSize()
	return noise.Generate(sampler, noise.Params{
		Width:     width,
		Height:    height,
		Frequency: np.Frequency,
		Amplitude: np.Amplitude,
		Octaves:   np.Octaves,
	})
}

func (g *Generator) stage(stage Stage, r *Result, start time.Time) {
	r.Timings[stage] = time.Since(start)
	Logger().Debug("stage done", "stage", string(stage), "elapsed", r.Timings[stage])
	if g.OnStage != nil {
		g.OnStage(stage, r)
	}
}

// Generate is New followed by Generator.Generate.
func Generate(cfg Config, palettes palette.List) (*Result, error) {
	g, err := New(cfg, palettes)
	if err != nil {
		return nil, err
	}
	return g.Generate()
}
