// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"math"
	"runtime"
	"sync"
)

// Flat is the value of every cell of a field with no variation.
const Flat = 0.5

// Params describes a fractal noise field.
type Params struct {
	Width     int
	Height    int
	Frequency float64 // of the first octave, in cycles per field
	Amplitude float64 // of the first octave
	Octaves   int
	Workers   int // 0 means runtime.GOMAXPROCS(0)
}

// DefaultParams returns the frequency, amplitude and octave count the
// generator was tuned with.
func DefaultParams(width, height int) Params {
	return Params{
		Width:     width,
		Height:    height,
		Frequency: 2,
		Amplitude: 1,
		Octaves:   3,
	}
}

var (
	ErrFieldSize = errors.New("noise: field width and height must be positive")
	ErrOctaves   = errors.New("noise: octave count must be positive")
)

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return ErrFieldSize
	}
	if p.Octaves <= 0 {
		return ErrOctaves
	}
	return nil
}

// Field is a normalized scalar field in [0, 1], stored column-major.
type Field struct {
	Width  int
	Height int
	Values []float64
}

func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

func (f *Field) index(x, y int) int {
	return x*f.Height + y
}

// At returns the value at x, y. Coordinates outside the field are clamped
// to its edge.
func (f *Field) At(x, y int) float64 {
	x = clampInt(x, 0, f.Width-1)
	y = clampInt(y, 0, f.Height-1)
	return f.Values[f.index(x, y)]
}

// Column returns the values of column x. The slice aliases the field.
func (f *Field) Column(x int) []float64 {
	start := f.index(x, 0)
	return f.Values[start : start+f.Height]
}

// MinMax returns the smallest and largest values.
func (f *Field) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return
}

// Generate evaluates octaves of s over a Width x Height grid and normalizes
// the sum to [0, 1]. Columns are independent and are spread over a pool of
// workers; each worker keeps its own min/max which are merged afterwards, so
// the result does not depend on the number of workers.
func Generate(s Sampler, p Params) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	field := NewField(p.Width, p.Height)
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > p.Width {
		workers = p.Width
	}

	type bounds struct {
		min, max float64
	}
	partials := make([]bounds, workers)
	for i := range partials {
		partials[i] = bounds{min: math.Inf(1), max: math.Inf(-1)}
	}

	width, height := float64(p.Width), float64(p.Height)

	forColumns(p.Width, workers, func(worker, x int) {
		column := field.Column(x)
		frequency, amplitude := p.Frequency, p.Amplitude
		for octave := 0; octave < p.Octaves; octave++ {
			for y := range column {
				column[y] += s.Noise2D(float64(x)*frequency/width, float64(y)*frequency/height) * amplitude
			}
			frequency *= 2
			amplitude /= 2
		}

		b := &partials[worker]
		for _, v := range column {
			b.min = math.Min(b.min, v)
			b.max = math.Max(b.max, v)
		}
	})

	min, max := math.Inf(1), math.Inf(-1)
	for _, b := range partials {
		min = math.Min(min, b.min)
		max = math.Max(max, b.max)
	}

	span := max - min
	forColumns(p.Width, workers, func(_, x int) {
		column := field.Column(x)
		for y, v := range column {
			if span == 0 {
				column[y] = Flat
			} else {
				column[y] = (v - min) / span
			}
		}
	})

	return field, nil
}

// forColumns calls fn for every column in [0, width) from a fixed pool of
// workers and returns once all columns are done.
func forColumns(width, workers int, fn func(worker, x int)) {
	columns := make(chan int, width)
	for x := 0; x < width; x++ {
		columns <- x
	}
	close(columns)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()
			for x := range columns {
				fn(worker, x)
			}
		}(w)
	}
	wg.Wait()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
