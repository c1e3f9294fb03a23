// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFilesystem_UploadStaticFile(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocalFilesystem(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatal(err)
	}

	data := []byte("png")
	if err := local.UploadStaticFile("renders/a.png", 60, data); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "out", "renders", "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("expected %q, got %q", data, got)
	}

	for _, name := range []string{"../a.png", "/etc/a.png", "x/../../a.png"} {
		if err := local.UploadStaticFile(name, 0, data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.png":          "image/png",
		"atlas.svg":      "image/svg+xml",
		"manifest.json":  "application/json",
		"field.zst":      "application/zstd",
		"something.else": "",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
}
