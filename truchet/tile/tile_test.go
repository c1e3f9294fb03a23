// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import "testing"

func TestKind_String(t *testing.T) {
	if s := FrownSE.String(); s != "frown_se" {
		t.Errorf("expected frown_se, got %s", s)
	}
	if s := Kind(NumKinds).String(); s != "kind(14)" {
		t.Errorf("expected kind(14), got %s", s)
	}
	if n := len(Kinds()); n != 14 {
		t.Errorf("expected 14 kinds, got %d", n)
	}
}

func TestKind_Connectors(t *testing.T) {
	tests := []struct {
		kind       Kind
		pies       [4]bool
		vertical   bool
		horizontal bool
	}{
		{Empty, [4]bool{}, false, false},
		{Vertical, [4]bool{}, true, false},
		{Horizontal, [4]bool{}, false, true},
		{Cross, [4]bool{true, true, true, true}, true, false},
		{Forwardslash, [4]bool{true, false, true, false}, false, false},
		{Backslash, [4]bool{false, true, false, true}, false, false},
		{FrownNW, [4]bool{true, false, false, false}, false, false},
		{FrownNE, [4]bool{false, true, false, false}, false, false},
		{FrownSE, [4]bool{false, false, true, false}, false, false},
		{FrownSW, [4]bool{false, false, false, true}, false, false},
		{TN, [4]bool{true, true, false, false}, false, true},
		{TE, [4]bool{false, true, true, false}, true, false},
		{TS, [4]bool{false, false, true, true}, false, true},
		{TW, [4]bool{true, false, false, true}, true, false},
	}

	if len(tests) != NumKinds {
		t.Fatalf("table covers %d of %d kinds", len(tests), NumKinds)
	}

	for _, test := range tests {
		c := test.kind.Connectors()
		if c.Pies != test.pies || c.Vertical != test.vertical || c.Horizontal != test.horizontal {
			t.Errorf("%s: expected %v/%v/%v, got %+v", test.kind, test.pies, test.vertical, test.horizontal, c)
		}
	}
}

func TestKind_ConnectorsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid kind")
		}
	}()
	Kind(NumKinds).Connectors()
}

func TestKind_Directions(t *testing.T) {
	if !Vertical.Connects(North | South) {
		t.Error("vertical should connect north and south")
	}
	if Vertical.Connects(East) {
		t.Error("vertical should not connect east")
	}
	if Empty.Directions() != None {
		t.Error("empty should connect nothing")
	}
	if !TE.Connects(North|East|South) || TE.Connects(West) {
		t.Errorf("t_e has wrong directions %04b", TE.Directions())
	}
}

func TestRect_Quadrants(t *testing.T) {
	r := RectFrom(100, 200, 300)
	q := r.Quadrants()

	expected := [4]Rect{
		{X: 100, Y: 200, Size: 150},
		{X: 250, Y: 200, Size: 150},
		{X: 250, Y: 350, Size: 150},
		{X: 100, Y: 350, Size: 150},
	}
	if q != expected {
		t.Errorf("expected %v, got %v", expected, q)
	}

	area := 0
	for i, a := range q {
		area += a.Area()
		if !r.Contains(a) {
			t.Errorf("quadrant %d not contained", i)
		}
		for j, b := range q {
			if i != j && a.Intersects(b) {
				t.Errorf("quadrants %d and %d overlap", i, j)
			}
		}
	}
	if area != r.Area() {
		t.Errorf("expected area %d, got %d", r.Area(), area)
	}
}
