// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

// Render is a catalog entry for a saved image. Config is the generator
// config as JSON, so the image can be rendered again.
type Render struct {
	Name    string `dynamo:"name"`
	Seed    int64  `dynamo:"seed"`
	Palette string `dynamo:"palette"`
	Config  string `dynamo:"config"`
	Width   int    `dynamo:"width"`
	Height  int    `dynamo:"height"`
	Leaves  int    `dynamo:"leaves"`
	Image   string `dynamo:"image"`
	Created int64  `dynamo:"created"`
	TTL     int64  `dynamo:"ttl,omitempty"`
}
