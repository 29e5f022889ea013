package styling

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
)

// RenderModules draws one filled circle per dark module on a transparent
// bitmap of side Size()*ModuleSize*Upscale. Each circle is inscribed in its
// own cell, so neighbouring cells are never touched.
func RenderModules(grid *qrmatrix.Grid, fill color.Color, st Style) *image.RGBA {
	cell := st.CellSize()
	side := grid.Size() * cell
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	dc := gg.NewContextForRGBA(img)
	r := float64(cell) / 2
	dark := 0
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); x++ {
			if !grid.Dark(x, y) {
				continue
			}
			dc.DrawCircle(float64(x*cell)+r, float64(y*cell)+r, r)
			dark++
		}
	}
	if dark > 0 {
		dc.SetColor(fill)
		dc.Fill()
	}
	return img
}
