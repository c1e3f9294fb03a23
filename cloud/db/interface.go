// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import "errors"

var (
	ErrExists   = errors.New("render already exists")
	ErrNotFound = errors.New("render not found")
)

type Database interface {
	// PutRender fails with ErrExists if the name is taken.
	PutRender(render Render) error
	ReadRender(name string) (render Render, err error)
	ReadRenders() (renders []Render, err error)
	// DeleteRender frees the name. Deleting a missing render is not an error.
	DeleteRender(name string) error
}
