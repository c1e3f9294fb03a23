// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/truchet/cloud"
	"github.com/SoftbearStudios/truchet/cloud/db"
	"github.com/SoftbearStudios/truchet/truchet"
	"github.com/SoftbearStudios/truchet/truchet/atlas"
	"github.com/SoftbearStudios/truchet/truchet/fieldcodec"
	"github.com/SoftbearStudios/truchet/truchet/noise"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"
)

func main() {
	cfg := truchet.DefaultConfig()

	var (
		configPath   string
		palettesPath string
		paletteName  string
		out          string
		s3Stage      string
		region       string
		name         string
		debug        bool
		thumbnail    int
		cpuProfile   string
		listPalettes bool
		verbose      bool
	)

	flag.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "logical size of a top level tile in pixels")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "number of top level tile rows")
	flag.IntVar(&cfg.Columns, "columns", cfg.Columns, "number of top level tile columns")
	flag.IntVar(&cfg.Levels, "levels", cfg.Levels, "number of subdivision levels")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.IntVar(&cfg.Palette, "palette", cfg.Palette, "palette index (see -list-palettes)")
	flag.BoolVar(&cfg.Noise, "noise", cfg.Noise, "bias subdivision with a noise field")
	flag.BoolVar(&cfg.Borderless, "borderless", cfg.Borderless, "crop the half tile border")
	flag.BoolVar(&cfg.ExcludeEmpty, "exclude-empty", cfg.ExcludeEmpty, "never pick the empty tile")
	flag.StringVar(&cfg.NoiseParams.Backend, "backend", cfg.NoiseParams.Backend, "noise backend: "+strings.Join(noise.Backends, ", "))
	flag.Float64Var(&cfg.NoiseParams.Frequency, "frequency", cfg.NoiseParams.Frequency, "base noise frequency")
	flag.Float64Var(&cfg.NoiseParams.Amplitude, "amplitude", cfg.NoiseParams.Amplitude, "base noise amplitude")
	flag.IntVar(&cfg.NoiseParams.Octaves, "octaves", cfg.NoiseParams.Octaves, "noise octaves")
	flag.IntVar(&cfg.NoiseParams.Decimation, "decimation", cfg.NoiseParams.Decimation, "logical pixels per noise sample")
	flag.Float64Var(&cfg.Subdivision.Limit, "limit", cfg.Subdivision.Limit, "noise value below which a level 1 tile subdivides")
	flag.Float64Var(&cfg.Subdivision.RisingLimit, "rising-limit", cfg.Subdivision.RisingLimit, "limit decrease per level")
	flag.Float64Var(&cfg.Subdivision.JitterScale, "jitter", cfg.Subdivision.JitterScale, "random jitter added to noise samples")

	flag.StringVar(&configPath, "config", "", "JSON config; flags given on the command line override it")
	flag.StringVar(&palettesPath, "palettes", "", "JSON palette list replacing the built-in palettes")
	flag.StringVar(&paletteName, "palette-name", "", "select a palette by name instead of index")
	flag.StringVar(&out, "out", ".", "output directory")
	flag.StringVar(&s3Stage, "s3", "", "upload to the S3 bucket and catalog of this stage instead of -out")
	flag.StringVar(&region, "region", "us-east-1", "AWS region for -s3")
	flag.StringVar(&name, "name", "", "output name (default truchet-<seed>)")
	flag.BoolVar(&debug, "debug", false, "also write the noise field, atlas and manifest")
	flag.IntVar(&thumbnail, "thumbnail", 0, "also write a thumbnail with this longer side")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	flag.BoolVar(&listPalettes, "list-palettes", false, "print the palettes and exit")
	flag.BoolVar(&verbose, "v", false, "log every stage")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	truchet.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	palettes := palette.List(palette.Builtin)
	if palettesPath != "" {
		var err error
		if palettes, err = loadPalettes(palettesPath); err != nil {
			log.Fatal("palettes: ", err)
		}
	}

	if listPalettes {
		for i, p := range palettes {
			fmt.Printf("%2d %s\n", i, p)
		}
		return
	}

	if configPath != "" {
		var err error
		if cfg, err = loadConfig(configPath); err != nil {
			log.Fatal("config: ", err)
		}
		// Flags are bound to cfg, so parsing again applies the explicit ones on top.
		if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
			log.Fatal(err)
		}
	}

	if paletteName != "" {
		p, err := palettes.ByName(paletteName)
		if err != nil {
			log.Fatal(err)
		}
		for i := range palettes {
			if palettes[i].Name == p.Name {
				cfg.Palette = i
				break
			}
		}
	}

	if name == "" {
		name = fmt.Sprint("truchet-", cfg.Seed)
	}

	var (
		c   *cloud.Cloud
		err error
	)
	if s3Stage != "" {
		c, err = cloud.New(region, s3Stage)
	} else {
		c, err = cloud.NewLocal(out)
	}
	if err != nil {
		log.Fatal("output: ", err)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	g, err := truchet.New(cfg, palettes)
	if err != nil {
		log.Fatal(err)
	}
	result, err := g.Generate()
	if err != nil {
		log.Fatal(err)
	}

	files, err := outputs(g, result, thumbnail, debug, name)
	if err != nil {
		log.Fatal(err)
	}

	b := result.Image.Bounds()
	configJSON, err := jsonString(result.Config)
	if err != nil {
		log.Fatal(err)
	}
	render, err := c.SaveRender(db.Render{
		Name:    name,
		Seed:    cfg.Seed,
		Palette: result.Palette.Name,
		Config:  configJSON,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Leaves:  result.Stats.TotalLeaves(),
		Created: result.Finished.Unix(),
	}, files)
	if err != nil {
		log.Fatal(err)
	}

	for _, file := range files {
		log.Printf("wrote %s %s (%d bytes)", c, cloud.RenderPath(render.Name, file.Name), len(file.Data))
	}
}

// outputs encodes the image and every requested extra file. The image comes
// first.
func outputs(g *truchet.Generator, result *truchet.Result, thumbnail int, debug bool, name string) ([]cloud.File, error) {
	var files []cloud.File
	add := func(file string, encode func(buf *bytes.Buffer) error) error {
		var buf bytes.Buffer
		if err := encode(&buf); err != nil {
			return fmt.Errorf("encoding %s: %w", file, err)
		}
		files = append(files, cloud.File{Name: file, Data: buf.Bytes()})
		return nil
	}
	encodePNG := func(img image.Image) func(*bytes.Buffer) error {
		return func(buf *bytes.Buffer) error { return png.Encode(buf, img) }
	}

	if err := add("image.png", func(buf *bytes.Buffer) error { return result.EncodePNG(buf) }); err != nil {
		return nil, err
	}

	if thumbnail > 0 {
		if err := add("thumbnail.png", encodePNG(truchet.Thumbnail(result.Image, thumbnail))); err != nil {
			return nil, err
		}
	}

	if !debug {
		return files, nil
	}

	cfg := result.Config
	if result.Field != nil {
		if err := add("noise.png", encodePNG(truchet.NoiseImage(result.Field, cfg.NoiseParams.Decimation))); err != nil {
			return nil, err
		}
		if err := add("field.zst", func(buf *bytes.Buffer) error {
			return fieldcodec.WriteSnapshot(buf, result.Field)
		}); err != nil {
			return nil, err
		}
	}
	if err := add("atlas.png", encodePNG(g.Atlas().Sheet())); err != nil {
		return nil, err
	}
	if err := add("atlas.svg", func(buf *bytes.Buffer) error {
		return atlas.WriteSVG(buf, cfg.TileSize, cfg.Levels, result.Palette)
	}); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files)+1)
	for _, file := range files {
		names = append(names, file.Name)
	}
	names = append(names, "manifest.json")
	if err := add("manifest.json", func(buf *bytes.Buffer) error {
		return truchet.WriteManifest(buf, result.Manifest(name, names...))
	}); err != nil {
		return nil, err
	}
	return files, nil
}

func jsonString(cfg truchet.Config) (string, error) {
	var buf bytes.Buffer
	if err := truchet.SaveConfig(&buf, cfg); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func loadPalettes(path string) (palette.List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return palette.Load(file)
}

func loadConfig(path string) (truchet.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return truchet.Config{}, err
	}
	defer file.Close()
	return truchet.LoadConfig(file)
}
