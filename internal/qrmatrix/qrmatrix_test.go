package qrmatrix

import (
	"errors"
	"strings"
	"testing"
)

const payload = "upi://pay?pa=cafeluna@upi&pn=Cafe%20Luna"

// finderAt checks the 7x7 finder pattern whose top-left module is (ox, oy).
func finderAt(g *Grid, ox, oy int) bool {
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			ring := x == 0 || y == 0 || x == 6 || y == 6
			core := x >= 2 && x <= 4 && y >= 2 && y <= 4
			if g.Dark(ox+x, oy+y) != (ring || core) {
				return false
			}
		}
	}
	return true
}

func TestSourcesProduceStructuredGrids(t *testing.T) {
	for _, name := range SourceNames() {
		t.Run(name, func(t *testing.T) {
			src, err := NewSource(name)
			if err != nil {
				t.Fatalf("NewSource(%q) error = %v", name, err)
			}

			g, err := src.Encode(payload, LevelH)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			n := g.Size()
			if n < 21 || (n-17)%4 != 0 {
				t.Fatalf("Size() = %d, want 17+4v", n)
			}
			if !finderAt(g, 0, 0) || !finderAt(g, n-7, 0) || !finderAt(g, 0, n-7) {
				t.Errorf("finder patterns missing from %d-module grid", n)
			}
			if finderAt(g, n-7, n-7) {
				t.Errorf("unexpected finder pattern in bottom-right corner")
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	src, _ := NewSource("")
	a, err := src.Encode(payload, LevelH)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b, _ := src.Encode(payload, LevelH)
	if a.Size() != b.Size() || a.DarkCount() != b.DarkCount() {
		t.Fatalf("two encodings differ: %d/%d vs %d/%d", a.Size(), a.DarkCount(), b.Size(), b.DarkCount())
	}
	for y := 0; y < a.Size(); y++ {
		for x := 0; x < a.Size(); x++ {
			if a.Dark(x, y) != b.Dark(x, y) {
				t.Fatalf("module (%d,%d) differs between encodings", x, y)
			}
		}
	}
}

func TestEncodeTooLong(t *testing.T) {
	long := strings.Repeat("x", 4000)
	for _, name := range SourceNames() {
		src, _ := NewSource(name)
		_, err := src.Encode(long, LevelH)
		var encErr *EncodingError
		if !errors.As(err, &encErr) {
			t.Errorf("%s: Encode(4000 bytes) error = %v, want *EncodingError", name, err)
			continue
		}
		if encErr.Level != LevelH {
			t.Errorf("%s: EncodingError.Level = %v, want H", name, encErr.Level)
		}
	}
}

func TestNewSourceUnknown(t *testing.T) {
	if _, err := NewSource("qart"); err == nil {
		t.Error("NewSource(qart) error = nil, want error")
	}
}

func TestMustSource(t *testing.T) {
	if MustSource(DefaultSource) == nil {
		t.Fatal("MustSource(default) = nil")
	}
	defer func() {
		if recover() == nil {
			t.Error("MustSource(qart) did not panic")
		}
	}()
	MustSource("qart")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"L", LevelL, false},
		{"m", LevelM, false},
		{" Q ", LevelQ, false},
		{"h", LevelH, false},
		{"X", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestNewGrid(t *testing.T) {
	if _, err := NewGrid(nil); err == nil {
		t.Error("NewGrid(nil) error = nil, want error")
	}
	if _, err := NewGrid([][]bool{{true, false}, {true}}); err == nil {
		t.Error("NewGrid(ragged) error = nil, want error")
	}

	rows := [][]bool{{true, false}, {false, true}}
	g, err := NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	rows[0][1] = true
	if g.Dark(1, 0) {
		t.Error("Grid shares storage with its input rows")
	}
	if g.DarkCount() != 2 {
		t.Errorf("DarkCount() = %d, want 2", g.DarkCount())
	}
	if g.Dark(-1, 0) || g.Dark(0, 5) {
		t.Error("out of range modules must be light")
	}
}

func TestGridImage(t *testing.T) {
	g, _ := NewGrid([][]bool{{true, false}, {false, true}})
	img := g.Image(3, 1)

	if got := img.Bounds().Dx(); got != 12 {
		t.Fatalf("Image width = %d, want 12", got)
	}
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0xff},   // quiet zone
		{4, 4, 0x00},   // module (0,0)
		{7, 4, 0xff},   // module (1,0)
		{7, 7, 0x00},   // module (1,1)
		{11, 11, 0xff}, // quiet zone
	}
	for _, tt := range tests {
		if got := img.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("pixel (%d,%d) = %#x, want %#x", tt.x, tt.y, got, tt.want)
		}
	}
}
