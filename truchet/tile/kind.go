// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import "fmt"

// Kind is one of the drawable tile shapes.
type Kind uint8

const (
	Empty Kind = iota
	Vertical
	Horizontal
	Cross
	Forwardslash
	Backslash
	FrownNW
	FrownNE
	FrownSE
	FrownSW
	TN
	TE
	TS
	TW
	NumKinds = iota
)

var kindNames = [NumKinds]string{
	"empty", "vertical", "horizontal", "cross", "forwardslash", "backslash",
	"frown_nw", "frown_ne", "frown_se", "frown_sw",
	"t_n", "t_e", "t_s", "t_w",
}

// Kinds returns every kind in order.
func Kinds() []Kind {
	kinds := make([]Kind, NumKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (kind Kind) Valid() bool {
	return kind < NumKinds
}

func (kind Kind) String() string {
	if !kind.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
	return kindNames[kind]
}

// Direction is a set of cardinal edges, one bit each.
type Direction uint8

const (
	North Direction = 1 << iota
	East
	South
	West
	None Direction = 0
	All            = North | East | South | West
)

var kindDirections = [NumKinds]Direction{
	Empty:        None,
	Vertical:     North | South,
	Horizontal:   East | West,
	Cross:        All,
	Forwardslash: All,
	Backslash:    All,
	FrownNW:      North | West,
	FrownNE:      North | East,
	FrownSE:      South | East,
	FrownSW:      South | West,
	TN:           North | East | West,
	TE:           North | East | South,
	TS:           East | South | West,
	TW:           North | South | West,
}

// Directions returns the edges the kind visually connects. Tiles are placed
// without matching neighbouring edges; the mask is informational.
func (kind Kind) Directions() Direction {
	return kindDirections[kind]
}

// Connects reports whether the kind reaches every edge in d.
func (kind Kind) Connects(d Direction) bool {
	return kind.Directions()&d == d
}

// Corner indexes the quarter-disc connectors, clockwise from the top left.
type Corner int

const (
	NW Corner = iota
	NE
	SE
	SW
)

// Connectors says which secondary colored shapes a kind draws over its
// primary square.
type Connectors struct {
	Pies       [4]bool // indexed by Corner
	Vertical   bool
	Horizontal bool
}

var kindConnectors = [NumKinds]Connectors{
	Empty:        {},
	Vertical:     {Vertical: true},
	Horizontal:   {Horizontal: true},
	Cross:        {Pies: [4]bool{true, true, true, true}, Vertical: true},
	Forwardslash: {Pies: [4]bool{NW: true, SE: true}},
	Backslash:    {Pies: [4]bool{NE: true, SW: true}},
	FrownNW:      {Pies: [4]bool{NW: true}},
	FrownNE:      {Pies: [4]bool{NE: true}},
	FrownSE:      {Pies: [4]bool{SE: true}},
	FrownSW:      {Pies: [4]bool{SW: true}},
	TN:           {Pies: [4]bool{NW: true, NE: true}, Horizontal: true},
	TE:           {Pies: [4]bool{NE: true, SE: true}, Vertical: true},
	TS:           {Pies: [4]bool{SE: true, SW: true}, Horizontal: true},
	TW:           {Pies: [4]bool{NW: true, SW: true}, Vertical: true},
}

// Connectors panics for an invalid kind.
func (kind Kind) Connectors() Connectors {
	if !kind.Valid() {
		panic(fmt.Sprintf("not a valid tile kind: %d", uint8(kind)))
	}
	return kindConnectors[kind]
}
