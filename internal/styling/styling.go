// Package styling turns a QR module grid into the branded image embedded in
// the poster: dot modules, an optional centred logo on a backing disc, and a
// padded white card with rounded corners.
//
// Every function here is pure with respect to its inputs except that the
// compositor pastes into the bitmap it is handed. Identical inputs always
// produce identical pixels.
package styling

import (
	"image"
	"image/color"

	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
)

const (
	// DefaultModuleSize is the pixel edge of one module before upscaling.
	DefaultModuleSize = 20
	// DefaultUpscale multiplies the module size for smoother dots.
	DefaultUpscale = 4

	// LogoRatio is the logo edge relative to the bitmap width.
	LogoRatio = 0.20
	// BackingRatio is added to the logo edge to get the backing disc diameter.
	BackingRatio = 0.04

	// FramePadding is the white border added on every side, in pixels,
	// whatever the bitmap size.
	FramePadding = 100
	// CornerRadius is the radius of the rounded card corners, in pixels.
	CornerRadius = 60
)

// Style controls module rasterization.
type Style struct {
	ModuleSize int
	Upscale    int
}

// DefaultStyle returns the production module geometry.
func DefaultStyle() Style {
	return Style{ModuleSize: DefaultModuleSize, Upscale: DefaultUpscale}
}

// CellSize is the bitmap pixel edge of one module.
func (s Style) CellSize() int {
	ms, up := s.ModuleSize, s.Upscale
	if ms < 1 {
		ms = 1
	}
	if up < 1 {
		up = 1
	}
	return ms * up
}

// Frame controls the finishing card.
type Frame struct {
	Padding int
	Radius  float64
}

// DefaultFrame returns the production padding and corner radius.
func DefaultFrame() Frame {
	return Frame{Padding: FramePadding, Radius: CornerRadius}
}

// Options groups everything Compose needs besides the grid.
type Options struct {
	Style   Style
	Frame   Frame
	Backing color.Color
}

// DefaultOptions uses the production geometry and a white backing disc.
func DefaultOptions() Options {
	return Options{Style: DefaultStyle(), Frame: DefaultFrame(), Backing: color.White}
}

// Compose runs the styling stages in order. A nil logo skips the compositor,
// so the result equals Finish(RenderModules(grid, fill, style), frame).
func Compose(grid *qrmatrix.Grid, fill color.Color, logo image.Image, opts Options) *image.RGBA {
	bitmap := RenderModules(grid, fill, opts.Style)
	if logo != nil {
		bitmap = OverlayLogo(bitmap, logo, opts.Backing)
	}
	return Finish(bitmap, opts.Frame)
}
