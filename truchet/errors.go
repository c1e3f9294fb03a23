// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package truchet

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates configuration problems.
type ErrorKind uint8

const (
	InvalidRows ErrorKind = iota
	InvalidColumns
	InvalidLevels
	InvalidTileSize
	InvalidPalette
	CanvasTooLarge
	TileTooSmall
	InvalidNoise
	InvalidSubdivision
	errorKindCount
)

var (
	ErrInvalidRows        = errors.New("row count must be positive")
	ErrInvalidColumns     = errors.New("column count must be positive")
	ErrInvalidLevels      = errors.New("level count out of range")
	ErrInvalidTileSize    = errors.New("tile size must be positive")
	ErrInvalidPalette     = errors.New("palette index out of range")
	ErrCanvasTooLarge     = errors.New("canvas too large")
	ErrTileTooSmall       = errors.New("tile size too small for level count")
	ErrInvalidNoise       = errors.New("invalid noise parameters")
	ErrInvalidSubdivision = errors.New("invalid subdivision parameters")
)

var kindErrors = [errorKindCount]error{
	InvalidRows:        ErrInvalidRows,
	InvalidColumns:     ErrInvalidColumns,
	InvalidLevels:      ErrInvalidLevels,
	InvalidTileSize:    ErrInvalidTileSize,
	InvalidPalette:     ErrInvalidPalette,
	CanvasTooLarge:     ErrCanvasTooLarge,
	TileTooSmall:       ErrTileTooSmall,
	InvalidNoise:       ErrInvalidNoise,
	InvalidSubdivision: ErrInvalidSubdivision,
}

var kindNames = [errorKindCount]string{
	"invalid_rows", "invalid_columns", "invalid_levels", "invalid_tile_size", "invalid_palette",
	"canvas_too_large", "tile_too_small", "invalid_noise", "invalid_subdivision",
}

func (kind ErrorKind) String() string {
	if kind >= errorKindCount {
		return fmt.Sprintf("error_kind(%d)", uint8(kind))
	}
	return kindNames[kind]
}

// ConfigError describes the first problem Validate found. It matches the
// sentinel of its kind with errors.Is.
type ConfigError struct {
	Kind  ErrorKind
	Field string
	Value any
	// Limit is the bound Value broke, if the check has one.
	Limit any
}

func (err *ConfigError) Error() string {
	msg := fmt.Sprintf("%s: %s = %v", kindErrors[err.Kind], err.Field, err.Value)
	if err.Limit != nil {
		msg += fmt.Sprintf(" (limit %v)", err.Limit)
	}
	return msg
}

func (err *ConfigError) Unwrap() error {
	return kindErrors[err.Kind]
}
