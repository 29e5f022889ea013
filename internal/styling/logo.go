package styling

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// OverlayLogo pastes logo at the centre of bitmap on top of a backing disc.
// The logo edge is LogoRatio of the bitmap width and the disc diameter adds
// BackingRatio of the width. Transparent logo pixels show the disc. bitmap
// is modified in place and returned.
func OverlayLogo(bitmap *image.RGBA, logo image.Image, backing color.Color) *image.RGBA {
	b := bitmap.Bounds()
	w, h := b.Dx(), b.Dy()
	logoSize := int(float64(w) * LogoRatio)
	if logoSize < 1 {
		return bitmap
	}
	if backing == nil {
		backing = color.White
	}

	discSize := logoSize + int(float64(w)*BackingRatio)
	dx := b.Min.X + (w-discSize)/2
	dy := b.Min.Y + (h-discSize)/2
	dc := gg.NewContextForRGBA(bitmap)
	radius := float64(discSize) / 2
	dc.DrawCircle(float64(dx)+radius, float64(dy)+radius, radius)
	dc.SetColor(backing)
	dc.Fill()

	fitted := FitSquare(logo, logoSize)
	lx := b.Min.X + (w-logoSize)/2
	ly := b.Min.Y + (h-logoSize)/2
	draw.Draw(bitmap, image.Rect(lx, ly, lx+logoSize, ly+logoSize), fitted, image.Point{}, draw.Over)
	return bitmap
}

// FitSquare scales logo so its shorter side equals size and crops the excess
// of the longer side evenly from both ends. It never letterboxes or stretches.
func FitSquare(logo image.Image, size int) *image.NRGBA {
	return imaging.Fill(logo, size, size, imaging.Center, imaging.Lanczos)
}
