// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package forest

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/tile"
	"github.com/gogpu/gg"
)

// Images supplies the tile image for a zero based level. *atlas.Atlas
// satisfies it.
type Images interface {
	Tile(level int, kind tile.Kind) *gg.ImageBuf
}

type Options struct {
	Rows     int
	Columns  int
	TileSize int
	// MaxLevel is the deepest level a node may have, 1 disables subdivision.
	MaxLevel int
	Policy   Policy
	Rand     Rand
	Images   Images
	// ExcludeEmpty never picks tile.Empty for a leaf.
	ExcludeEmpty bool
}

var (
	ErrGrid     = errors.New("rows and columns must be positive")
	ErrTileSize = errors.New("tile size must be positive")
	ErrMaxLevel = errors.New("max level must be at least 1")
	ErrMissing  = errors.New("policy, rand and images are required")
)

func (o Options) validate() error {
	switch {
	case o.Rows < 1 || o.Columns < 1:
		return fmt.Errorf("%w: %dx%d", ErrGrid, o.Columns, o.Rows)
	case o.TileSize < 1:
		return fmt.Errorf("%w: %d", ErrTileSize, o.TileSize)
	case o.MaxLevel < 1:
		return fmt.Errorf("%w: %d", ErrMaxLevel, o.MaxLevel)
	case o.Policy == nil || o.Rand == nil || o.Images == nil:
		return ErrMissing
	}
	return nil
}

// Forest is a grid of subdivision trees.
type Forest struct {
	Roots    [][]Node // [row][column]
	TileSize int
	Levels   int
}

// Build grows one tree per grid cell. Cells are visited column by column,
// and each tree depth first in NW, NE, SE, SW order, so the random stream is
// consumed in a fixed order for a given policy.
func Build(o Options) (*Forest, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	f := &Forest{
		Roots:    make([][]Node, o.Rows),
		TileSize: o.TileSize,
		Levels:   o.MaxLevel,
	}
	for row := range f.Roots {
		f.Roots[row] = make([]Node, o.Columns)
	}

	b := builder{Options: o}
	for col := 0; col < o.Columns; col++ {
		for row := 0; row < o.Rows; row++ {
			rect := tile.RectFrom(col*o.TileSize, row*o.TileSize, o.TileSize)
			f.Roots[row][col] = b.build(rect, 1)
		}
	}

	return f, nil
}

type builder struct {
	Options
}

func (b *builder) build(rect tile.Rect, level int) Node {
	if b.Policy.Subdivide(rect.X, rect.Y, level) {
		var children [4]Node
		for i := range children {
			children[i] = b.build(rect.Quadrant(tile.Corner(i)), level+1)
		}
		return NewContainer(rect, level, children)
	}

	kind := b.kind()
	return &Leaf{
		Rect:  rect,
		Level: level,
		Kind:  kind,
		Image: b.Images.Tile(level-1, kind),
	}
}

func (b *builder) kind() tile.Kind {
	if b.ExcludeEmpty {
		return tile.Kind(1 + b.Rand.Intn(tile.NumKinds-1))
	}
	return tile.Kind(b.Rand.Intn(tile.NumKinds))
}

// Walk visits every node depth first, roots in row major order. Returning
// false from fn skips the node's children.
func (f *Forest) Walk(fn func(row, col int, n Node) bool) {
	for row, roots := range f.Roots {
		for col, root := range roots {
			walk(root, func(n Node) bool { return fn(row, col, n) })
		}
	}
}

func walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if c, ok := n.(*Container); ok {
		for _, child := range c.Children {
			walk(child, fn)
		}
	}
}

// Stats counts nodes. Index i of the slices is level i+1.
type Stats struct {
	Containers []int
	Leaves     []int
	Kinds      [tile.NumKinds]int
}

func (s Stats) TotalLeaves() int {
	total := 0
	for _, n := range s.Leaves {
		total += n
	}
	return total
}

func (s Stats) TotalContainers() int {
	total := 0
	for _, n := range s.Containers {
		total += n
	}
	return total
}

func (f *Forest) Stats() Stats {
	s := Stats{
		Containers: make([]int, f.Levels),
		Leaves:     make([]int, f.Levels),
	}
	f.Walk(func(_, _ int, n Node) bool {
		switch n := n.(type) {
		case *Container:
			s.Containers[n.Level-1]++
		case *Leaf:
			s.Leaves[n.Level-1]++
			s.Kinds[n.Kind]++
		}
		return true
	})
	return s
}

// LeafArea sums the area of the leaves under one root. A fully covered root
// sums to TileSize squared when TileSize halves evenly down to the last level.
func (f *Forest) LeafArea(row, col int) int {
	area := 0
	walk(f.Roots[row][col], func(n Node) bool {
		if l, ok := n.(*Leaf); ok {
			area += l.Rect.Area()
		}
		return true
	})
	return area
}
