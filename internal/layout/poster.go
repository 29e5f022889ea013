package layout

import (
	"strings"

	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
)

// A4 in points.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	Inch = 72.0
)

const (
	headerHeight = 2.4 * Inch
	qrDisplay    = 4.4 * Inch
	shadowOffset = 3
	shadowRadius = 20

	badgeWidth   = 70
	badgeHeight  = 20
	badgeRadius  = 5
	badgeSpacing = 90
)

var (
	pageBackground = hexcolor.MustParse("#f8f9fa")
	shadowColor    = hexcolor.MustParse("#e0e0e0")
	detailColor    = hexcolor.MustParse("#444444")
	mutedColor     = hexcolor.MustParse("#666666")
	dividerColor   = hexcolor.MustParse("#eeeeee")
)

type badge struct {
	label string
	fill  hexcolor.Color
}

var badges = []badge{
	{"GPay", hexcolor.MustParse("#4285f4")},
	{"PhonePe", hexcolor.MustParse("#5f259f")},
	{"Paytm", hexcolor.MustParse("#00baf2")},
}

// Poster holds everything printed on the page. Colors are expected to be
// validated already; Build does not truncate or wrap any text.
type Poster struct {
	ShopName  string
	PaymentID string
	Tagline   string
	Handle    string
	Website   string

	Primary hexcolor.Color
	Text    hexcolor.Color

	// QRPath is the finished QR raster drawn in the middle of the page.
	QRPath string
}

// Build lays out the poster on a single A4 page. Every position derives from
// the page size and fixed inch offsets; measured text widths are only used
// by the renderers to centre runs.
func Build(p Poster) *Document {
	doc := NewDocument(PageWidth, PageHeight)
	cx := PageWidth / 2

	doc.Fill(Rect{W: PageWidth, H: PageHeight, Fill: pageBackground})

	doc.Fill(Rect{W: PageWidth, H: headerHeight, Fill: p.Primary})
	doc.Write(Text{
		Value:    strings.ToUpper(p.ShopName),
		CX:       cx,
		Baseline: 1.0 * Inch,
		Font:     Font{Bold: true, Size: 36},
		Color:    hexcolor.White,
	})
	if p.Tagline != "" {
		doc.Write(Text{
			Value:    p.Tagline,
			CX:       cx,
			Baseline: 1.4 * Inch,
			Font:     Font{Size: 16},
			Color:    hexcolor.White,
		})
	}

	qrX := (PageWidth - qrDisplay) / 2
	qrY := PageHeight/2 - qrDisplay/2 - 0.5*Inch
	doc.Fill(Rect{
		X: qrX + shadowOffset, Y: qrY + shadowOffset,
		W: qrDisplay, H: qrDisplay,
		Radius: shadowRadius,
		Fill:   shadowColor,
	})
	doc.Place(Image{Path: p.QRPath, X: qrX, Y: qrY, W: qrDisplay, H: qrDisplay})

	detailsY := qrY + qrDisplay + 0.6*Inch
	doc.Write(Text{
		Value:    "SCAN TO PAY",
		CX:       cx,
		Baseline: detailsY,
		Font:     Font{Bold: true, Size: 20},
		Color:    p.Text,
	})
	doc.Write(Text{
		Value:    "UPI ID: " + p.PaymentID,
		CX:       cx,
		Baseline: detailsY + 0.3*Inch,
		Font:     Font{Size: 12},
		Color:    detailColor,
	})

	socialY := detailsY + 0.9*Inch
	y := socialY
	handle := strings.ReplaceAll(p.Handle, "@", "")
	if handle != "" || p.Website != "" {
		doc.Stroke(Line{
			X1: 2 * Inch, Y1: socialY - 0.2*Inch,
			X2: PageWidth - 2*Inch, Y2: socialY - 0.2*Inch,
			Width:  1,
			Stroke: dividerColor,
		})
	}
	if handle != "" {
		doc.Write(Text{
			Value:    "@" + handle,
			CX:       cx,
			Baseline: y,
			Font:     Font{Bold: true, Size: 10},
			Color:    p.Primary,
		})
		y += 0.25 * Inch
	}
	if p.Website != "" {
		doc.Write(Text{
			Value:    strings.ToLower(p.Website),
			CX:       cx,
			Baseline: y,
			Font:     Font{Size: 10},
			Color:    mutedColor,
		})
	}

	doc.Write(Text{
		Value:    "ACCEPTED ON ALL UPI APPS",
		CX:       cx,
		Baseline: PageHeight - 1.3*Inch,
		Font:     Font{Bold: true, Size: 10},
		Color:    mutedColor,
	})

	badgeY := PageHeight - 0.9*Inch
	for i, b := range badges {
		bx := cx + float64(i-1)*badgeSpacing
		doc.Fill(Rect{
			X: bx - badgeWidth/2, Y: badgeY - badgeHeight/2,
			W: badgeWidth, H: badgeHeight,
			Radius: badgeRadius,
			Fill:   b.fill,
		})
		doc.Write(Text{
			Value:    b.label,
			CX:       bx,
			Baseline: badgeY + 3,
			Font:     Font{Bold: true, Size: 8},
			Color:    hexcolor.White,
		})
	}

	return doc
}
