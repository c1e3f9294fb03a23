// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/truchet/truchet"
	"github.com/SoftbearStudios/truchet/truchet/fieldcodec"
	"github.com/gorilla/websocket"
	"net/http"
	"time"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the config message from the peer.
	readWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Field preview sample spacing, in field samples.
	previewStep = 2
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  4096,
}

// Progress is sent as a text message after each stage.
type Progress struct {
	Stage     truchet.Stage       `json:"stage"`
	ElapsedMS int64               `json:"elapsedMs"`
	Preview   *fieldcodec.Preview `json:"preview,omitempty"`
	Leaves    []int               `json:"leaves,omitempty"`
	Width     int                 `json:"width,omitempty"`
	Height    int                 `json:"height,omitempty"`
}

// Failure is sent instead of the image when rendering fails.
type Failure struct {
	Error string `json:"error"`
}

// ServeSocket renders one image per connection. The client sends a JSON
// config, which overlays the server defaults; the server answers
// with Progress messages and a final binary PNG message, then closes.
func (s *Server) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		truchet.Logger().Debug("upgrade error", "err", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(readWait))

	_, reader, err := conn.NextReader()
	if err != nil {
		truchet.Logger().Debug("socket read error", "err", err)
		return
	}

	cfg, err := s.Defaults.Overlay(reader)
	if err != nil {
		writeJSON(conn, Failure{Error: err.Error()})
		closeSocket(conn, websocket.CloseUnsupportedData)
		return
	}

	start := time.Now()
	result, err := s.generate(r.Context(), cfg, func(stage truchet.Stage, result *truchet.Result) {
		progress := Progress{Stage: stage, ElapsedMS: time.Since(start).Milliseconds()}
		switch stage {
		case truchet.StageNoise:
			preview := fieldcodec.EncodePreview(result.Field, previewStep)
			progress.Preview = &preview
		case truchet.StageForest:
			progress.Leaves = result.Stats.Leaves
		case truchet.StageCompose, truchet.StageDone:
			b := result.Image.Bounds()
			progress.Width, progress.Height = b.Dx(), b.Dy()
		}
		writeJSON(conn, progress)
	})
	if err != nil {
		writeJSON(conn, Failure{Error: err.Error()})
		closeSocket(conn, websocket.CloseInternalServerErr)
		return
	}

	data, err := encodePNG(result.Image)
	if err != nil {
		writeJSON(conn, Failure{Error: err.Error()})
		closeSocket(conn, websocket.CloseInternalServerErr)
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		truchet.Logger().Debug("socket write error", "err", err)
		return
	}
	closeSocket(conn, websocket.CloseNormalClosure)
}

func writeJSON(conn *websocket.Conn, v interface{}) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	w, err := conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		truchet.Logger().Debug("socket encode error", "err", err)
	}
	_ = w.Close()
}

func closeSocket(conn *websocket.Conn, code int) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""))
}
