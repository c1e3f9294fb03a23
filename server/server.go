// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves previews over HTTP and websockets.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/truchet/cloud"
	"github.com/SoftbearStudios/truchet/truchet"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	jsoniter "github.com/json-iterator/go"
	"image"
	"image/png"
	"net/http"
	"sync/atomic"
)

const (
	// DefaultMaxPixels bounds canvases rendered on request.
	DefaultMaxPixels = 4096 * 4096

	DefaultThumbnailSize = 256
	MaxThumbnailSize     = 1024
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errTooLarge = errors.New("canvas too large to render on request")

type Options struct {
	// Cloud stores gallery renders. Nil disables the gallery.
	Cloud    *cloud.Cloud
	Palettes palette.List
	Defaults truchet.Config
	// MaxRenders bounds concurrent renders; 0 means 1.
	MaxRenders int
	MaxPixels  int
	// RenderLog, if set, gets a CSV row per finished render.
	RenderLog string
}

type Server struct {
	Options
	renders  chan struct{}
	rendered atomic.Int64
	mux      *http.ServeMux
}

func New(o Options) *Server {
	if o.Palettes == nil {
		o.Palettes = palette.Builtin
	}
	if o.Defaults == (truchet.Config{}) {
		o.Defaults = truchet.DefaultConfig()
	}
	if o.MaxRenders < 1 {
		o.MaxRenders = 1
	}
	if o.MaxPixels < 1 {
		o.MaxPixels = DefaultMaxPixels
	}

	s := &Server{
		Options: o,
		renders: make(chan struct{}, o.MaxRenders),
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.ServeIndex)
	s.mux.HandleFunc("/render.png", s.ServeRender)
	s.mux.HandleFunc("/thumbnail.png", s.ServeThumbnail)
	s.mux.HandleFunc("/gallery", s.ServeGallery)
	s.mux.HandleFunc("/ws", s.ServeSocket)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	names := make([]string, len(s.Palettes))
	for i, p := range s.Palettes {
		names[i] = p.Name
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Cloud    string         `json:"cloud"`
		Rendered int64          `json:"rendered"`
		Palettes []string       `json:"palettes"`
		Defaults truchet.Config `json:"defaults"`
	}{
		Cloud:    s.Cloud.String(),
		Rendered: s.rendered.Load(),
		Palettes: names,
		Defaults: s.Defaults,
	})
}

func (s *Server) ServeRender(w http.ResponseWriter, r *http.Request) {
	cfg, err := configFromQuery(s.Defaults, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.generate(r.Context(), cfg, nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	writePNG(w, result.Image)
}

func (s *Server) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cfg, err := configFromQuery(s.Defaults, query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := intQuery(query, "size", DefaultThumbnailSize, 1, MaxThumbnailSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.generate(r.Context(), cfg, nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	writePNG(w, truchet.Thumbnail(result.Image, size))
}

// generate validates cfg, waits for a render slot and renders. The atlas is
// built inside the slot, so nothing is drawn for a request that is rejected.
func (s *Server) generate(ctx context.Context, cfg truchet.Config, onStage func(truchet.Stage, *truchet.Result)) (*truchet.Result, error) {
	if err := s.check(cfg); err != nil {
		return nil, err
	}

	select {
	case s.renders <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-s.renders }()

	g, err := truchet.New(cfg, s.Palettes)
	if err != nil {
		return nil, err
	}
	g.OnStage = onStage
	result, err := g.Generate()
	if err != nil {
		return nil, err
	}
	s.rendered.Add(1)

	if s.RenderLog != "" {
		if err := logRender(s.RenderLog, result); err != nil {
			truchet.Logger().Warn("render log", "file", s.RenderLog, "err", err)
		}
	}
	return result, nil
}

// check rejects cfg without rendering anything.
func (s *Server) check(cfg truchet.Config) error {
	if err := cfg.Validate(len(s.Palettes)); err != nil {
		return err
	}
	if width, height := cfg.CanvasSize(); width*height > s.MaxPixels {
		return fmt.Errorf("%w: %dx%d", errTooLarge, width, height)
	}
	return nil
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	var configErr *truchet.ConfigError
	switch {
	case errors.As(err, &configErr), errors.Is(err, errTooLarge):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		truchet.Logger().Error("render failed", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePNG(w http.ResponseWriter, img image.Image) {
	data, err := encodePNG(img)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}
