// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package truchet

import (
	"github.com/SoftbearStudios/truchet/truchet/tile"
	"io"
	"time"
)

// Manifest records how an image was made, next to the files written for it.
type Manifest struct {
	Name       string         `json:"name"`
	Config     Config         `json:"config"`
	Palette    string         `json:"palette"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Leaves     []int          `json:"leaves"`
	Containers []int          `json:"containers"`
	Kinds      map[string]int `json:"kinds"`
	TimingsMS  map[Stage]int  `json:"timingsMs"`
	Created    time.Time      `json:"created"`
	Files      []string       `json:"files,omitempty"`
}

func (r *Result) Manifest(name string, files ...string) Manifest {
	b := r.Image.Bounds()
	m := Manifest{
		Name:       name,
		Config:     r.Config,
		Palette:    r.Palette.Name,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Leaves:     r.Stats.Leaves,
		Containers: r.Stats.Containers,
		Kinds:      make(map[string]int, tile.NumKinds),
		TimingsMS:  make(map[Stage]int, len(r.Timings)),
		Created:    r.Finished.UTC(),
		Files:      files,
	}
	for kind, n := range r.Stats.Kinds {
		if n > 0 {
			m.Kinds[tile.Kind(kind).String()] = n
		}
	}
	for stage, d := range r.Timings {
		m.TimingsMS[stage] = int(d.Milliseconds())
	}
	return m
}

func WriteManifest(w io.Writer, m Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	err := json.NewDecoder(r).Decode(&m)
	return m, err
}
