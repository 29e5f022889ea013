package styling

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// Finish pads bitmap with opaque white on every side and clips the padded
// square, bitmap included, to a rounded square. Padding and radius are
// absolute pixels.
func Finish(bitmap image.Image, fr Frame) *image.RGBA {
	b := bitmap.Bounds()
	pad := fr.Padding
	if pad < 0 {
		pad = 0
	}
	full := image.Rect(0, 0, b.Dx()+pad*2, b.Dy()+pad*2)

	padded := image.NewRGBA(full)
	draw.Draw(padded, full, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(padded, image.Rect(pad, pad, pad+b.Dx(), pad+b.Dy()), bitmap, b.Min, draw.Over)

	mc := gg.NewContext(full.Dx(), full.Dy())
	if fr.Radius > 0 {
		mc.DrawRoundedRectangle(0, 0, float64(full.Dx()), float64(full.Dy()), fr.Radius)
	} else {
		mc.DrawRectangle(0, 0, float64(full.Dx()), float64(full.Dy()))
	}
	mc.Fill()

	out := image.NewRGBA(full)
	draw.DrawMask(out, full, padded, image.Point{}, mc.AsMask(), image.Point{}, draw.Src)
	return out
}
