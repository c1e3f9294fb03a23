// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import "strings"

type Filesystem interface {
	UploadStaticFile(filename string, secondsCache int, data []byte) error
}

var contentTypes = map[string]string{
	".json": "application/json",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".zst":  "application/zstd",
}

// ContentType guesses from the extension, "" if unknown.
func ContentType(filename string) string {
	for ext, mime := range contentTypes {
		if strings.HasSuffix(filename, ext) {
			return mime
		}
	}
	return ""
}
