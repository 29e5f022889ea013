package layout

import (
	"fmt"
	"os"

	"github.com/signintech/gopdf"
)

// RenderPDF draws doc onto a single PDF page and returns the file bytes.
func RenderPDF(doc *Document) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: doc.Width, H: doc.Height}})
	pdf.AddPage()

	for _, f := range []Font{{}, {Bold: true}} {
		if err := pdf.AddTTFFontData(f.family(), f.ttf()); err != nil {
			return nil, fmt.Errorf("embed font %s: %w", f.family(), err)
		}
	}

	for i, p := range doc.items {
		if err := drawPDF(&pdf, p); err != nil {
			return nil, fmt.Errorf("draw primitive %d (%T): %w", i, p, err)
		}
	}

	return pdf.GetBytesPdfReturnErr()
}

// WritePDF renders doc to path. The file only appears once it is complete;
// on failure nothing is left at path.
func WritePDF(doc *Document, path string) error {
	data, err := RenderPDF(doc)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func drawPDF(pdf *gopdf.GoPdf, p Primitive) error {
	switch v := p.(type) {
	case Rect:
		pdf.SetFillColor(v.Fill.RGB())
		if v.Radius <= 0 {
			pdf.RectFromUpperLeftWithStyle(v.X, v.Y, v.W, v.H, "F")
			return nil
		}
		return pdf.Rectangle(v.X, v.Y, v.X+v.W, v.Y+v.H, "F", v.Radius, 8)

	case Line:
		pdf.SetStrokeColor(v.Stroke.RGB())
		pdf.SetLineWidth(v.Width)
		pdf.Line(v.X1, v.Y1, v.X2, v.Y2)
		return nil

	case Text:
		if v.Value == "" {
			return nil
		}
		if err := pdf.SetFont(v.Font.family(), "", v.Font.Size); err != nil {
			return err
		}
		pdf.SetTextColor(v.Color.RGB())
		w, err := pdf.MeasureTextWidth(v.Value)
		if err != nil {
			return err
		}
		pdf.SetXY(v.CX-w/2, v.Baseline)
		return pdf.Text(v.Value)

	case Image:
		return pdf.Image(v.Path, v.X, v.Y, &gopdf.Rect{W: v.W, H: v.H})
	}
	return fmt.Errorf("unsupported primitive %T", p)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
