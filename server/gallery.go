// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/truchet/cloud"
	"github.com/SoftbearStudios/truchet/cloud/db"
	"github.com/SoftbearStudios/truchet/truchet"
	"github.com/finnbear/moderation"
	"net/http"
	"strings"
)

const maxNameLength = 48

var (
	errName          = errors.New("name must be 1-48 lowercase letters, digits or dashes")
	errInappropriate = errors.New("inappropriate name")
)

// checkName accepts names usable as a path segment that pass the
// moderation filter. Dashes are read as spaces when scanning.
func checkName(name string) error {
	if len(name) == 0 || len(name) > maxNameLength {
		return errName
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return errName
		}
	}
	if moderation.Scan(strings.ReplaceAll(name, "-", " ")).Is(moderation.Inappropriate) {
		return errInappropriate
	}
	return nil
}

// ServeGallery saves a render with its thumbnail and manifest under a
// unique name.
func (s *Server) ServeGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.serveGalleryList(w)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Cloud == nil {
		http.Error(w, cloud.ErrOffline.Error(), http.StatusServiceUnavailable)
		return
	}

	query := r.URL.Query()
	name := query.Get("name")
	if err := checkName(name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg, err := configFromQuery(s.Defaults, query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := s.Cloud.Render(name); err == nil {
		http.Error(w, db.ErrExists.Error(), http.StatusConflict)
		return
	}

	result, err := s.generate(r.Context(), cfg, nil)
	if err != nil {
		s.fail(w, err)
		return
	}

	render, err := s.save(name, result)
	if errors.Is(err, db.ErrExists) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		truchet.Logger().Error("saving render", "name", name, "err", err)
		http.Error(w, "saving render failed", http.StatusBadGateway)
		return
	}

	truchet.Logger().Info("saved render", "name", name, "cloud", s.Cloud.String())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(render)
}

func (s *Server) serveGalleryList(w http.ResponseWriter) {
	renders, err := s.Cloud.Renders()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if renders == nil {
		renders = []db.Render{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(renders)
}

func (s *Server) save(name string, result *truchet.Result) (db.Render, error) {
	image, err := encodePNG(result.Image)
	if err != nil {
		return db.Render{}, err
	}
	thumbnail, err := encodePNG(truchet.Thumbnail(result.Image, DefaultThumbnailSize))
	if err != nil {
		return db.Render{}, err
	}

	var manifest bytes.Buffer
	files := []string{"image.png", "thumbnail.png", "manifest.json"}
	if err := truchet.WriteManifest(&manifest, result.Manifest(name, files...)); err != nil {
		return db.Render{}, err
	}
	configJSON, err := json.MarshalToString(result.Config)
	if err != nil {
		return db.Render{}, err
	}

	b := result.Image.Bounds()
	render, err := s.Cloud.SaveRender(db.Render{
		Name:    name,
		Seed:    result.Config.Seed,
		Palette: result.Palette.Name,
		Config:  configJSON,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Leaves:  result.Stats.TotalLeaves(),
		Created: result.Finished.Unix(),
	}, []cloud.File{
		{Name: files[0], Data: image},
		{Name: files[1], Data: thumbnail},
		{Name: files[2], Data: manifest.Bytes()},
	})
	if err != nil {
		return render, fmt.Errorf("saving %s: %w", name, err)
	}
	return render, nil
}
