// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet"
	"net/url"
	"strconv"
)

// configFromQuery overlays query parameters on defaults. Unknown parameters
// are ignored so links can carry extra state.
func configFromQuery(defaults truchet.Config, query url.Values) (truchet.Config, error) {
	cfg := defaults

	ints := []struct {
		name string
		dst  *int
	}{
		{"rows", &cfg.Rows},
		{"columns", &cfg.Columns},
		{"tileSize", &cfg.TileSize},
		{"levels", &cfg.Levels},
		{"palette", &cfg.Palette},
		{"octaves", &cfg.NoiseParams.Octaves},
	}
	for _, p := range ints {
		if s := query.Get(p.name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return cfg, fmt.Errorf("%s: %w", p.name, err)
			}
			*p.dst = v
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"noise", &cfg.Noise},
		{"borderless", &cfg.Borderless},
		{"excludeEmpty", &cfg.ExcludeEmpty},
	}
	for _, p := range bools {
		if s := query.Get(p.name); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return cfg, fmt.Errorf("%s: %w", p.name, err)
			}
			*p.dst = v
		}
	}

	if s := query.Get("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("seed: %w", err)
		}
		cfg.Seed = seed
	}
	if s := query.Get("backend"); s != "" {
		cfg.NoiseParams.Backend = s
	}

	return cfg, nil
}

func intQuery(query url.Values, name string, def, min, max int) (int, error) {
	s := query.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s: %d not in [%d, %d]", name, v, min, max)
	}
	return v, nil
}
