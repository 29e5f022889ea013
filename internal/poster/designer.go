// Package poster runs the generation pipeline: payload, QR grid, styled
// QR image and finally the laid out poster document.
package poster

import (
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
	"github.com/cristianadrielbraun/qrposter/internal/layout"
	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
	"github.com/cristianadrielbraun/qrposter/internal/scan"
	"github.com/cristianadrielbraun/qrposter/internal/styling"
	"github.com/cristianadrielbraun/qrposter/internal/upi"
	"github.com/cristianadrielbraun/qrposter/internal/workspace"
)

// rawQuietZone is the module border around the plain raster, enough for
// decoders to find the code.
const rawQuietZone = 4

// Format selects the output document type.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// Request is one poster order.
//
// Field lengths, the payment ID shape and the colors are validated before a
// Request is built; the pipeline does not re-validate them.
type Request struct {
	ShopName  string
	PaymentID string
	Tagline   string
	Handle    string
	Website   string

	Primary hexcolor.Color
	Text    hexcolor.Color

	// LogoPath is optional; when set the logo must decode or the request fails.
	LogoPath string

	Format Format
}

// Designer holds the pipeline configuration. It keeps no per-request state
// and is safe for concurrent use.
type Designer struct {
	source       qrmatrix.Source
	level        qrmatrix.Level
	opts         styling.Options
	verify       bool
	previewScale float64
	logger       *logrus.Logger
}

type Option func(*Designer)

func WithSource(s qrmatrix.Source) Option {
	return func(d *Designer) { d.source = s }
}

func WithLevel(l qrmatrix.Level) Option {
	return func(d *Designer) { d.level = l }
}

func WithStyling(o styling.Options) Option {
	return func(d *Designer) { d.opts = o }
}

// WithVerify decodes the plain QR raster and fails the request when it
// does not read back as the payload.
func WithVerify(v bool) Option {
	return func(d *Designer) { d.verify = v }
}

func WithPreviewScale(s float64) Option {
	return func(d *Designer) { d.previewScale = s }
}

func WithLogger(l *logrus.Logger) Option {
	return func(d *Designer) { d.logger = l }
}

// NewDesigner returns a Designer using the default encoder at level H with
// the production styling.
func NewDesigner(opts ...Option) *Designer {
	d := &Designer{
		source:       qrmatrix.MustSource(qrmatrix.DefaultSource),
		level:        qrmatrix.LevelH,
		opts:         styling.DefaultOptions(),
		previewScale: layout.PreviewScale,
		logger:       logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Generate builds the poster for req inside ws and returns the document
// path. Every file it writes lives in ws; removing ws is up to the caller.
// On error no document exists at the returned path's location.
func (d *Designer) Generate(ws *workspace.Workspace, req Request) (string, error) {
	start := time.Now()
	log := d.logger.WithFields(logrus.Fields{
		"workspace": ws.Dir,
		"shop":      req.ShopName,
	})

	path, err := d.generate(ws, req, log)
	if err != nil {
		log.WithError(err).Error("poster generation failed")
		return "", err
	}
	log.WithField("duration", time.Since(start)).Info("poster generated")
	return path, nil
}

func (d *Designer) generate(ws *workspace.Workspace, req Request, log *logrus.Entry) (string, error) {
	payload := upi.BuildPayload(req.PaymentID, req.ShopName)

	grid, err := d.source.Encode(payload, d.level)
	if err != nil {
		return "", stageErr(StageEncode, err)
	}
	log.WithFields(logrus.Fields{"stage": StageEncode, "modules": grid.Size()}).Debug("payload encoded")

	if err := d.writeRaw(ws, grid, payload); err != nil {
		return "", err
	}

	var logo image.Image
	if req.LogoPath != "" {
		logo, err = styling.LoadLogo(req.LogoPath)
		if err != nil {
			return "", stageErr(StageLogo, err)
		}
	}

	styled := styling.Compose(grid, req.Primary.RGBA(), logo, d.opts)
	qrPath := ws.File("qr_final", ".png")
	if err := imaging.Save(styled, qrPath); err != nil {
		return "", stageErr(StageStyle, fmt.Errorf("save styled QR: %w", err))
	}
	log.WithField("stage", StageStyle).Debug("styled QR written")

	doc := layout.Build(layout.Poster{
		ShopName:  req.ShopName,
		PaymentID: req.PaymentID,
		Tagline:   req.Tagline,
		Handle:    req.Handle,
		Website:   req.Website,
		Primary:   req.Primary,
		Text:      req.Text,
		QRPath:    qrPath,
	})

	var out string
	switch req.Format {
	case FormatPNG:
		out = ws.File("poster", ".png")
		err = layout.WritePNG(doc, out, d.previewScale)
	case FormatPDF, "":
		out = ws.File("poster", ".pdf")
		err = layout.WritePDF(doc, out)
	default:
		err = fmt.Errorf("unsupported format %q", req.Format)
	}
	if err != nil {
		return "", stageErr(StageLayout, err)
	}
	return out, nil
}

// writeRaw stores the unstyled QR raster and, with verification on, checks
// that it decodes back to the payload.
func (d *Designer) writeRaw(ws *workspace.Workspace, grid *qrmatrix.Grid, payload string) error {
	raw := grid.Image(d.opts.Style.ModuleSize, rawQuietZone)
	if err := imaging.Save(raw, ws.File("raw", ".png")); err != nil {
		return stageErr(StageEncode, fmt.Errorf("save raw QR: %w", err))
	}
	if !d.verify {
		return nil
	}
	if err := scan.Verify(raw, payload); err != nil {
		return stageErr(StageVerify, err)
	}
	return nil
}
