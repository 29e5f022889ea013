// Package layout builds the poster page as an ordered list of drawing
// primitives and renders it to PDF or to a PNG preview.
//
// Coordinates are PDF points with the origin at the top-left corner of the
// page. Text is positioned by its horizontal centre and its baseline.
package layout

import "github.com/cristianadrielbraun/qrposter/internal/hexcolor"

// Font selects one of the two embedded faces at a point size.
type Font struct {
	Bold bool
	Size float64
}

// Primitive is one drawing operation. The concrete types are Rect, Line,
// Text and Image.
type Primitive interface {
	primitive()
}

// Rect is a filled rectangle, rounded when Radius > 0.
type Rect struct {
	X, Y, W, H float64
	Radius     float64
	Fill       hexcolor.Color
}

// Line is a stroked segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Stroke         hexcolor.Color
}

// Text is a single run centred on CX with its baseline at Baseline.
type Text struct {
	Value    string
	CX       float64
	Baseline float64
	Font     Font
	Color    hexcolor.Color
}

// Image places the raster at Path scaled into the given box.
type Image struct {
	Path       string
	X, Y, W, H float64
}

func (Rect) primitive()  {}
func (Line) primitive()  {}
func (Text) primitive()  {}
func (Image) primitive() {}

// Document is an append-only page. Primitives are rendered in insertion
// order, so later ones occlude earlier ones.
type Document struct {
	Width  float64
	Height float64

	items []Primitive
}

// NewDocument returns an empty page of the given size in points.
func NewDocument(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

func (d *Document) Fill(r Rect)     { d.items = append(d.items, r) }
func (d *Document) Stroke(l Line)   { d.items = append(d.items, l) }
func (d *Document) Write(t Text)    { d.items = append(d.items, t) }
func (d *Document) Place(img Image) { d.items = append(d.items, img) }

// Primitives returns a copy of the draw list in render order.
func (d *Document) Primitives() []Primitive {
	out := make([]Primitive, len(d.items))
	copy(out, d.items)
	return out
}

// Texts returns the text runs in render order.
func (d *Document) Texts() []Text {
	var out []Text
	for _, p := range d.items {
		if t, ok := p.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

// Images returns the placed rasters in render order.
func (d *Document) Images() []Image {
	var out []Image
	for _, p := range d.items {
		if img, ok := p.(Image); ok {
			out = append(out, img)
		}
	}
	return out
}
