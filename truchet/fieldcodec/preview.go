// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fieldcodec serializes noise fields: a lossy 4 bit preview small
// enough for a websocket message, and a lossless zstd snapshot.
package fieldcodec

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/noise"
	"io"
	"math"
)

var ErrPreview = errors.New("malformed preview")

// Preview is a decimated, quantized field. Data is row-major, one 4 bit
// sample per cell, run length encoded.
type Preview struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

// Quantize maps a field value to a byte.
func Quantize(v float64) byte {
	return byte(math.Floor(math.Max(0, math.Min(1, v)) * 255))
}

// EncodePreview samples every step-th value of f in each direction.
func EncodePreview(f *noise.Field, step int) Preview {
	if step < 1 {
		step = 1
	}

	p := Preview{
		Width:  (f.Width + step - 1) / step,
		Height: (f.Height + step - 1) / step,
	}

	var runs Runs
	runs.Grow(p.Width * p.Height / 4)

	row := make([]byte, p.Width)
	for y := 0; y < p.Height; y++ {
		for x := range row {
			row[x] = Quantize(f.At(x*step, y*step))
		}
		_, _ = runs.Write(row)
	}

	p.Data = runs.Bytes()
	return p
}

// Decode expands the preview to a field of its own size. Values are the
// centres of their 4 bit buckets.
func (p Preview) Decode() (*noise.Field, error) {
	if p.Width < 1 || p.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrPreview, p.Width, p.Height)
	}

	samples := make([]byte, p.Width*p.Height)
	var runs Runs
	runs.Reset(p.Data)

	n, err := io.ReadFull(&runs, samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %d of %d samples: %v", ErrPreview, n, len(samples), err)
	}
	if _, err := runs.Read(make([]byte, 1)); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing samples", ErrPreview)
	}

	f := noise.NewField(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			f.Values[x*p.Height+y] = (float64(samples[y*p.Width+x]) + 8) / 255
		}
	}
	return f, nil
}
