// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldcodec

import (
	"bytes"
	"errors"
	"github.com/SoftbearStudios/truchet/truchet/noise"
	"math"
	"math/rand"
	"testing"
)

func TestRuns_Write(t *testing.T) {
	const n = 1024
	var runs Runs

	_, _ = runs.Write(make([]byte, n))

	if data := runs.Bytes(); len(data) != n/maxRun {
		t.Errorf("expected %d runs, got %d: %v", n/maxRun, len(data), data)
	}

	runs.Reset(nil)
	_, _ = runs.Write([]byte{0x10, 0x1f, 0x20, 0x10})
	if data := runs.Bytes(); !bytes.Equal(data, []byte{0x11, 0x20, 0x10}) {
		t.Errorf("unexpected runs %x", data)
	}
}

func TestRuns_Read(t *testing.T) {
	const n = 1024
	var runs Runs

	input := make([]byte, n)
	for i := range input {
		input[i] = quantizeNibble(byte(rand.Intn(256)))
	}

	_, _ = runs.Write(input)
	encoded := append([]byte(nil), runs.Bytes()...)

	// Odd sized reads split runs.
	var output []byte
	chunk := make([]byte, 7)
	for {
		r, err := runs.Read(chunk)
		output = append(output, chunk[:r]...)
		if err != nil {
			break
		}
	}

	if !bytes.Equal(input, output) {
		t.Errorf("expected %d samples back, got %d", len(input), len(output))
	}
	if !bytes.Equal(encoded, runs.Bytes()) {
		t.Error("Read modified the encoding")
	}
}

func field(t *testing.T, seed int64) *noise.Field {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	f, err := noise.Generate(noise.NewGradient(rng), noise.DefaultParams(40, 30))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestPreview_RoundTrip(t *testing.T) {
	f := field(t, 465622)

	for _, step := range []int{1, 3, 10} {
		p := EncodePreview(f, step)
		if p.Width != (40+step-1)/step || p.Height != (30+step-1)/step {
			t.Errorf("step %d: unexpected size %dx%d", step, p.Width, p.Height)
		}

		decoded, err := p.Decode()
		if err != nil {
			t.Fatal(err)
		}
		for x := 0; x < p.Width; x++ {
			for y := 0; y < p.Height; y++ {
				want := f.At(x*step, y*step)
				if got := decoded.At(x, y); math.Abs(got-want) > 16.0/255 {
					t.Errorf("step %d (%d, %d): expected about %f, got %f", step, x, y, want, got)
				}
			}
		}
	}
}

func TestPreview_Invalid(t *testing.T) {
	p := EncodePreview(field(t, 1), 5)

	short := p
	short.Data = p.Data[:len(p.Data)/2]
	if _, err := short.Decode(); !errors.Is(err, ErrPreview) {
		t.Errorf("expected ErrPreview for truncated data, got %v", err)
	}

	long := p
	long.Height--
	if _, err := long.Decode(); !errors.Is(err, ErrPreview) {
		t.Errorf("expected ErrPreview for trailing data, got %v", err)
	}

	empty := Preview{}
	if _, err := empty.Decode(); !errors.Is(err, ErrPreview) {
		t.Errorf("expected ErrPreview for empty preview, got %v", err)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	f := field(t, 42)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, f); err != nil {
		t.Fatal(err)
	}

	g, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != f.Width || g.Height != f.Height {
		t.Fatalf("expected %dx%d, got %dx%d", f.Width, f.Height, g.Width, g.Height)
	}
	for i := range f.Values {
		if f.Values[i] != g.Values[i] {
			t.Fatalf("value %d: expected %v, got %v", i, f.Values[i], g.Values[i])
		}
	}
}

func TestSnapshot_Invalid(t *testing.T) {
	if _, err := ReadSnapshot(bytes.NewReader([]byte("not zstd at all"))); err == nil {
		t.Error("expected error for garbage input")
	}

	var buf bytes.Buffer
	f := noise.NewField(2, 2)
	if err := WriteSnapshot(&buf, f); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()-4]
	if _, err := ReadSnapshot(bytes.NewReader(truncated)); err == nil {
		t.Error("expected error for truncated snapshot")
	}
}

func BenchmarkWriteSnapshot(b *testing.B) {
	f := noise.NewField(120, 120)
	for i := range f.Values {
		f.Values[i] = rand.Float64()
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := WriteSnapshot(&buf, f); err != nil {
			b.Fatal(err)
		}
	}
}
