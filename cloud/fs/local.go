// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalFilesystem writes under a directory. Cache hints are ignored.
type LocalFilesystem struct {
	Dir string
}

func NewLocalFilesystem(dir string) (*LocalFilesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFilesystem{Dir: dir}, nil
}

func (local *LocalFilesystem) UploadStaticFile(filename string, _ int, data []byte) error {
	clean := filepath.Clean(filepath.FromSlash(filename))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("local: %q escapes %s", filename, local.Dir)
	}

	path := filepath.Join(local.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (local *LocalFilesystem) String() string {
	return local.Dir
}
