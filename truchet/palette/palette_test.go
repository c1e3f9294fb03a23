// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package palette

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestHex_RoundTrip(t *testing.T) {
	for _, p := range Builtin {
		for _, c := range []ColorVec{p.Primary, p.Secondary} {
			parsed, err := ParseHex(c.HexString())
			if err != nil {
				t.Fatal(err)
			}
			if parsed.Color() != c.Color() {
				t.Errorf("%s: expected %v, got %v", p.Name, c.Color(), parsed.Color())
			}
		}
	}
}

func TestHex_Color(t *testing.T) {
	c := Hex(0xFFBA08).Color()
	if c.R != 0xFF || c.G != 0xBA || c.B != 0x08 || c.A != 0xFF {
		t.Errorf("expected FFBA08, got %v", c)
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, s := range []string{"", "#FFF", "#GGGGGG", "1234567"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q) expected error", s)
		}
	}
}

func TestPalette_Swap(t *testing.T) {
	p := Builtin[DefaultIndex]
	s := p.Swap()
	if s.Primary != p.Secondary || s.Secondary != p.Primary {
		t.Errorf("Swap expected %v/%v, got %v/%v", p.Secondary, p.Primary, s.Primary, s.Secondary)
	}
	if s.Swap() != p {
		t.Error("double Swap should be identity")
	}
}

func TestList_At(t *testing.T) {
	l := List(Builtin)
	p, err := l.At(DefaultIndex)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Xiketic" {
		t.Errorf("expected Xiketic, got %s", p.Name)
	}
	if _, err := l.At(len(l)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.At(-1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_ByName(t *testing.T) {
	p, err := List(Builtin).ByName("meadow")
	if err != nil {
		t.Fatal(err)
	}
	if p.Secondary.HexString() != "#C1292E" {
		t.Errorf("expected #C1292E, got %s", p.Secondary.HexString())
	}
}

func TestLoad(t *testing.T) {
	const input = `[
		{"name": "Sapphire", "primary": "#05668D", "secondary": "F0F3BD"},
		{"name": "Sunset", "primary": "#000000", "secondary": "#FFFFFF", "primaryEnd": "#FF0000", "secondaryEnd": "#00FF00"}
	]`

	l, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(l) != 2 {
		t.Fatalf("expected 2 palettes, got %d", len(l))
	}
	if l[0].Gradient || !l[1].Gradient {
		t.Error("gradient flags wrong")
	}
	if l[1].PrimaryEnd.HexString() != "#FF0000" {
		t.Errorf("expected #FF0000, got %s", l[1].PrimaryEnd.HexString())
	}

	var buf bytes.Buffer
	if err := Save(&buf, l); err != nil {
		t.Fatal(err)
	}
	again, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := range l {
		if again[i] != l[i] {
			t.Errorf("palette %d changed after Save/Load: %v != %v", i, again[i], l[i])
		}
	}
}

func TestLoad_Invalid(t *testing.T) {
	inputs := []string{
		`{}`,
		`[{"primary": "#000000", "secondary": "#FFFFFF"}]`,
		`[{"name": "x", "primary": "#000000", "secondary": "nope"}]`,
		`[{"name": "x", "primary": "#000000", "secondary": "#FFFFFF", "primaryEnd": "#000000"}]`,
		`[{"name": "x", "primary": "#000000", "secondary": "#FFFFFF", "extra": 1}]`,
	}
	for _, input := range inputs {
		if _, err := Load(strings.NewReader(input)); err == nil {
			t.Errorf("Load(%s) expected error", input)
		}
	}
}

func TestRamp(t *testing.T) {
	black, white := Gray(0), Gray(255)
	if c := Ramp(black, white, 0).Color(); c.R != 0 {
		t.Errorf("expected 0, got %d", c.R)
	}
	if c := Ramp(black, white, 1).Color(); c.R != 255 {
		t.Errorf("expected 255, got %d", c.R)
	}
	if c := Ramp(black, white, 0.5).Color(); c.R != 127 {
		t.Errorf("expected 127, got %d", c.R)
	}
}
