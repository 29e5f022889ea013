// Package qrmatrix is the boundary to the QR encoders. It turns a payload
// and an error-correction level into an immutable square grid of modules.
package qrmatrix

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Level is the QR error-correction level.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts L, M, Q or H (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

// Grid is a square module matrix without quiet zone. It is never mutated
// after construction.
type Grid struct {
	size  int
	cells []bool
}

// NewGrid copies rows (indexed [y][x]) into a Grid. Rows must form a square.
func NewGrid(rows [][]bool) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("empty module grid")
	}
	g := &Grid{size: n, cells: make([]bool, n*n)}
	for y, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("module grid row %d has %d cells, want %d", y, len(row), n)
		}
		copy(g.cells[y*n:], row)
	}
	return g, nil
}

// Size is the number of modules per side.
func (g *Grid) Size() int { return g.size }

// Dark reports whether the module at column x, row y is dark. Out of range
// coordinates are light.
func (g *Grid) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}
	return g.cells[y*g.size+x]
}

// DarkCount is the number of dark modules.
func (g *Grid) DarkCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Image renders the grid as plain black squares on white, moduleSize pixels
// per module, surrounded by quietZone light modules.
func (g *Grid) Image(moduleSize, quietZone int) *image.Gray {
	if moduleSize < 1 {
		moduleSize = 1
	}
	side := (g.size + 2*quietZone) * moduleSize
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if !g.Dark(x, y) {
				continue
			}
			ox := (x + quietZone) * moduleSize
			oy := (y + quietZone) * moduleSize
			for dy := 0; dy < moduleSize; dy++ {
				for dx := 0; dx < moduleSize; dx++ {
					img.SetGray(ox+dx, oy+dy, color.Gray{Y: 0})
				}
			}
		}
	}
	return img
}
