package layout

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// PreviewScale renders the page at 150 DPI.
const PreviewScale = 150.0 / 72.0

// Rasterize draws doc into an RGBA image at scale pixels per point, in the
// same order and geometry as the PDF backend.
func Rasterize(doc *Document, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid preview scale %v", scale)
	}
	w := int(math.Ceil(doc.Width * scale))
	h := int(math.Ceil(doc.Height * scale))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForRGBA(rgba)

	faces := faceCache{}
	defer faces.Close()

	for i, p := range doc.items {
		if err := drawRaster(dc, rgba, faces, p, scale); err != nil {
			return nil, fmt.Errorf("draw primitive %d (%T): %w", i, p, err)
		}
	}
	return rgba, nil
}

// WritePNG rasterizes doc and writes it to path atomically.
func WritePNG(doc *Document, path string, scale float64) error {
	img, err := Rasterize(doc, scale)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return writeAtomic(path, buf.Bytes())
}

func drawRaster(dc *gg.Context, dst *image.RGBA, faces faceCache, p Primitive, s float64) error {
	switch v := p.(type) {
	case Rect:
		dc.SetColor(v.Fill.RGBA())
		if v.Radius > 0 {
			dc.DrawRoundedRectangle(v.X*s, v.Y*s, v.W*s, v.H*s, v.Radius*s)
		} else {
			dc.DrawRectangle(v.X*s, v.Y*s, v.W*s, v.H*s)
		}
		dc.Fill()

	case Line:
		dc.SetColor(v.Stroke.RGBA())
		dc.SetLineWidth(v.Width * s)
		dc.DrawLine(v.X1*s, v.Y1*s, v.X2*s, v.Y2*s)
		dc.Stroke()

	case Text:
		if v.Value == "" {
			return nil
		}
		face, err := faces.face(Font{Bold: v.Font.Bold, Size: v.Font.Size * s})
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetColor(v.Color.RGBA())
		dc.DrawStringAnchored(v.Value, v.CX*s, v.Baseline*s, 0.5, 0)

	case Image:
		src, err := imaging.Open(v.Path)
		if err != nil {
			return fmt.Errorf("open %s: %w", v.Path, err)
		}
		box := image.Rect(
			int(math.Round(v.X*s)), int(math.Round(v.Y*s)),
			int(math.Round((v.X+v.W)*s)), int(math.Round((v.Y+v.H)*s)),
		)
		xdraw.CatmullRom.Scale(dst, box, src, src.Bounds(), xdraw.Over, nil)

	default:
		return fmt.Errorf("unsupported primitive %T", p)
	}
	return nil
}
