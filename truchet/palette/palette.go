// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package palette

import (
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"io"
	"strings"
)

// Palette is a named pair of colors. Tiles are drawn with Primary as the
// background and Secondary for the connectors; the roles swap at every
// subdivision level.
//
// A gradient palette fades each role from its color to its End color along
// the tile diagonal.
type Palette struct {
	Name         string
	Primary      ColorVec
	Secondary    ColorVec
	PrimaryEnd   ColorVec
	SecondaryEnd ColorVec
	Gradient     bool
}

// Solid creates a solid color palette from 0xRRGGBB values.
func Solid(primary, secondary uint32, name string) Palette {
	return Palette{
		Name:      name,
		Primary:   Hex(primary),
		Secondary: Hex(secondary),
	}
}

// LinearGradient creates a gradient palette from 0xRRGGBB values.
func LinearGradient(primary1, primary2, secondary1, secondary2 uint32, name string) Palette {
	return Palette{
		Name:         name,
		Primary:      Hex(primary1),
		PrimaryEnd:   Hex(primary2),
		Secondary:    Hex(secondary1),
		SecondaryEnd: Hex(secondary2),
		Gradient:     true,
	}
}

// Swap exchanges the primary and secondary roles.
func (p Palette) Swap() Palette {
	p.Primary, p.Secondary = p.Secondary, p.Primary
	p.PrimaryEnd, p.SecondaryEnd = p.SecondaryEnd, p.PrimaryEnd
	return p
}

func (p Palette) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Primary.HexString(), p.Secondary.HexString())
}

// Builtin is the palette list shipped with the generator.
var Builtin = []Palette{
	Solid(0xFFFFFF, 0x000000, "Monochrome"),
	Solid(0x05668D, 0xF0F3BD, "Sapphire"),
	Solid(0xE63946, 0x1D3557, "Imperial"),
	Solid(0x2D00F7, 0xE500A4, "Deep"),
	Solid(0xFFCDB2, 0x6D6875, "Apricot"),
	Solid(0x03071E, 0xFFBA08, "Xiketic"),
	Solid(0x3D315B, 0xF8F991, "Canary"),
	Solid(0x034732, 0xC1292E, "Meadow"),
	LinearGradient(0x03071E, 0x370617, 0xFFBA08, 0xE85D04, "Ember"),
}

// DefaultIndex is Xiketic.
const DefaultIndex = 5

var ErrNotFound = errors.New("palette not found")

// List is an ordered palette list, indexed the way the command line selects
// palettes.
type List []Palette

// At returns the palette at index.
func (l List) At(index int) (Palette, error) {
	if index < 0 || index >= len(l) {
		return Palette{}, fmt.Errorf("%w: index %d not in [0, %d)", ErrNotFound, index, len(l))
	}
	return l[index], nil
}

// ByName finds a palette case-insensitively.
func (l List) ByName(name string) (Palette, error) {
	for _, p := range l {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

type paletteJSON struct {
	Name         string `json:"name"`
	Primary      string `json:"primary"`
	Secondary    string `json:"secondary"`
	PrimaryEnd   string `json:"primaryEnd,omitempty"`
	SecondaryEnd string `json:"secondaryEnd,omitempty"`
}

// Load decodes a JSON array of palettes such as
//
//	[{"name": "Sapphire", "primary": "#05668D", "secondary": "#F0F3BD"}]
//
// Palettes with both end colors are gradients.
func Load(r io.Reader) (List, error) {
	var entries []paletteJSON
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding palettes: %w", err)
	}

	list := make(List, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("palette %d has no name", i)
		}

		var p Palette
		var err error
		p.Name = e.Name
		if p.Primary, err = ParseHex(e.Primary); err != nil {
			return nil, fmt.Errorf("palette %q: %w", e.Name, err)
		}
		if p.Secondary, err = ParseHex(e.Secondary); err != nil {
			return nil, fmt.Errorf("palette %q: %w", e.Name, err)
		}
		if e.PrimaryEnd != "" || e.SecondaryEnd != "" {
			if p.PrimaryEnd, err = ParseHex(e.PrimaryEnd); err != nil {
				return nil, fmt.Errorf("palette %q: %w", e.Name, err)
			}
			if p.SecondaryEnd, err = ParseHex(e.SecondaryEnd); err != nil {
				return nil, fmt.Errorf("palette %q: %w", e.Name, err)
			}
			p.Gradient = true
		}
		list = append(list, p)
	}
	return list, nil
}

// Save encodes palettes in the format Load reads.
func Save(w io.Writer, l List) error {
	entries := make([]paletteJSON, len(l))
	for i, p := range l {
		entries[i] = paletteJSON{
			Name:      p.Name,
			Primary:   p.Primary.HexString(),
			Secondary: p.Secondary.HexString(),
		}
		if p.Gradient {
			entries[i].PrimaryEnd = p.PrimaryEnd.HexString()
			entries[i].SecondaryEnd = p.SecondaryEnd.HexString()
		}
	}
	return json.NewEncoder(w).Encode(entries)
}
