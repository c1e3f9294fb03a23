// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package truchet

import (
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/compose"
	"github.com/SoftbearStudios/truchet/truchet/forest"
	"github.com/SoftbearStudios/truchet/truchet/noise"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	jsoniter "github.com/json-iterator/go"
	"io"
	"math"
)

const (
	// MaxCanvasDimension bounds each side of the output image.
	MaxCanvasDimension = 16384
	// MaxLevels bounds recursion; a tile at this depth is already smaller
	// than any tile size that passes the canvas bound.
	MaxLevels = 14
	// MinLeafSize is the smallest logical tile size a subdivision may
	// produce below the last level.
	MinLeafSize = 2
)

type NoiseParams struct {
	Backend    string  `json:"backend"`
	Frequency  float64 `json:"frequency"`
	Amplitude  float64 `json:"amplitude"`
	Octaves    int     `json:"octaves"`
	Decimation int     `json:"decimation"`
}

type Subdivision struct {
	Limit       float64 `json:"limit"`
	RisingLimit float64 `json:"risingLimit"`
	JitterScale float64 `json:"jitterScale"`
}

// Config is everything that determines an image. Two generations with equal
// configs and palettes produce identical pixels.
type Config struct {
	TileSize     int         `json:"tileSize"`
	Rows         int         `json:"rows"`
	Columns      int         `json:"columns"`
	Levels       int         `json:"levels"`
	Seed         int64       `json:"seed"`
	Palette      int         `json:"palette"`
	Noise        bool        `json:"noise"`
	Borderless   bool        `json:"borderless"`
	ExcludeEmpty bool        `json:"excludeEmpty"`
	NoiseParams  NoiseParams `json:"noiseParams"`
	Subdivision  Subdivision `json:"subdivision"`
}

func DefaultConfig() Config {
	return Config{
		TileSize:   300,
		Rows:       20,
		Columns:    20,
		Levels:     3,
		Seed:       465622,
		Palette:    palette.DefaultIndex,
		Noise:      true,
		Borderless: true,
		NoiseParams: NoiseParams{
			Backend:    noise.BackendGradient,
			Frequency:  2,
			Amplitude:  1,
			Octaves:    3,
			Decimation: forest.DefaultDecimation,
		},
		Subdivision: Subdivision{
			Limit:       forest.DefaultLimit,
			RisingLimit: forest.DefaultRisingLimit,
			JitterScale: forest.DefaultJitterScale,
		},
	}
}

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

// LoadConfig reads JSON over the defaults, so a file only needs the fields
// it changes. Unknown fields are an error.
func LoadConfig(r io.Reader) (Config, error) {
	return DefaultConfig().Overlay(r)
}

// Overlay reads JSON over a copy of cfg.
func (cfg Config) Overlay(r io.Reader) (Config, error) {
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func SaveConfig(w io.Writer, cfg Config) error {
	return json.NewEncoder(w).Encode(cfg)
}

// CanvasSize is the size of the image the config renders.
func (cfg Config) CanvasSize() (width, height int) {
	return compose.CanvasSize(cfg.Rows, cfg.Columns, cfg.TileSize, cfg.Borderless)
}

// FieldSize is the size of the noise field, one sample per Decimation
// logical pixels.
func (cfg Config) FieldSize() (width, height int) {
	d := cfg.NoiseParams.Decimation
	return (cfg.Columns*cfg.TileSize + d - 1) / d, (cfg.Rows*cfg.TileSize + d - 1) / d
}

// Validate checks cfg against a palette list of the given length. It returns
// a *ConfigError for the first problem found.
func (cfg Config) Validate(palettes int) error {
	switch {
	case cfg.Rows < 1:
		return &ConfigError{Kind: InvalidRows, Field: "rows", Value: cfg.Rows}
	case cfg.Columns < 1:
		return &ConfigError{Kind: InvalidColumns, Field: "columns", Value: cfg.Columns}
	case cfg.Levels < 1 || cfg.Levels > MaxLevels:
		return &ConfigError{Kind: InvalidLevels, Field: "levels", Value: cfg.Levels, Limit: MaxLevels}
	case cfg.TileSize < 1:
		return &ConfigError{Kind: InvalidTileSize, Field: "tileSize", Value: cfg.TileSize}
	case cfg.Palette < 0 || cfg.Palette >= palettes:
		return &ConfigError{Kind: InvalidPalette, Field: "palette", Value: cfg.Palette, Limit: palettes - 1}
	}

	// Checked in int64 so huge values cannot wrap around.
	rows, columns := int64(cfg.Rows), int64(cfg.Columns)
	if !cfg.Borderless {
		rows++
		columns++
	}
	if columns*int64(cfg.TileSize) > MaxCanvasDimension {
		return &ConfigError{Kind: CanvasTooLarge, Field: "columns", Value: cfg.Columns, Limit: MaxCanvasDimension}
	}
	if rows*int64(cfg.TileSize) > MaxCanvasDimension {
		return &ConfigError{Kind: CanvasTooLarge, Field: "rows", Value: cfg.Rows, Limit: MaxCanvasDimension}
	}

	if cfg.TileSize>>cfg.Levels < MinLeafSize {
		return &ConfigError{Kind: TileTooSmall, Field: "tileSize", Value: cfg.TileSize, Limit: MinLeafSize << cfg.Levels}
	}

	if err := cfg.NoiseParams.validate(); err != nil {
		return err
	}
	return cfg.Subdivision.validate()
}

func (n NoiseParams) validate() error {
	known := false
	for _, b := range noise.Backends {
		known = known || n.Backend == b
	}

	switch {
	case !known:
		return &ConfigError{Kind: InvalidNoise, Field: "noiseParams.backend", Value: n.Backend}
	case !(n.Frequency > 0) || math.IsInf(n.Frequency, 0):
		return &ConfigError{Kind: InvalidNoise, Field: "noiseParams.frequency", Value: n.Frequency}
	case n.Amplitude < 0 || math.IsNaN(n.Amplitude) || math.IsInf(n.Amplitude, 0):
		return &ConfigError{Kind: InvalidNoise, Field: "noiseParams.amplitude", Value: n.Amplitude}
	case n.Octaves < 1 || n.Octaves > 16:
		return &ConfigError{Kind: InvalidNoise, Field: "noiseParams.octaves", Value: n.Octaves, Limit: 16}
	case n.Decimation < 1:
		return &ConfigError{Kind: InvalidNoise, Field: "noiseParams.decimation", Value: n.Decimation}
	}
	return nil
}

func (s Subdivision) validate() error {
	finite := func(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
	switch {
	case !finite(s.Limit):
		return &ConfigError{Kind: InvalidSubdivision, Field: "subdivision.limit", Value: s.Limit}
	case !finite(s.RisingLimit):
		return &ConfigError{Kind: InvalidSubdivision, Field: "subdivision.risingLimit", Value: s.RisingLimit}
	case !finite(s.JitterScale) || s.JitterScale < 0:
		return &ConfigError{Kind: InvalidSubdivision, Field: "subdivision.jitterScale", Value: s.JitterScale}
	}
	return nil
}
