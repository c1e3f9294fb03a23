// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package forest

import (
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/tile"
	"github.com/gogpu/gg"
)

// Node is either a *Container or a *Leaf.
type Node interface {
	// Bounds is the unscaled logical square the node covers.
	Bounds() tile.Rect
	// Depth is 1 for roots and grows by one per subdivision.
	Depth() int
	node()
}

// Container is a subdivided square with four children, indexed by
// tile.Corner.
type Container struct {
	Rect     tile.Rect
	Level    int
	Children [4]Node
}

// NewContainer panics if a child is missing.
func NewContainer(rect tile.Rect, level int, children [4]Node) *Container {
	for i, child := range children {
		if child == nil {
			panic(fmt.Sprintf("container %s missing child %d", rect, i))
		}
	}
	return &Container{Rect: rect, Level: level, Children: children}
}

func (c *Container) Bounds() tile.Rect {
	return c.Rect
}

func (c *Container) Depth() int {
	return c.Level
}

func (c *Container) node() {}

// Leaf is a square drawn with a single tile image.
type Leaf struct {
	Rect  tile.Rect
	Level int
	Kind  tile.Kind
	Image *gg.ImageBuf
}

func (l *Leaf) Bounds() tile.Rect {
	return l.Rect
}

func (l *Leaf) Depth() int {
	return l.Level
}

func (l *Leaf) node() {}
