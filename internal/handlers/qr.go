package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"

	"github.com/cristianadrielbraun/qrposter/internal/form"
	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
	"github.com/cristianadrielbraun/qrposter/internal/upi"
)

const (
	previewModuleWidth = 10
	previewBorder      = 20
)

// QRCodeHandler serves an unbranded preview of the payment QR:
// GET /api/qr?upi_id=..&shop_name=..&fg=%23646cff&shape=circle
func (h *Handler) QRCodeHandler(c *gin.Context) {
	upiID := strings.TrimSpace(c.Query("upi_id"))
	if !form.ValidUPIID(upiID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UPI ID: must look like name@bank"})
		return
	}
	shop := strings.TrimSpace(c.Query("shop_name"))
	if shop == "" || len([]rune(shop)) > 50 || !form.LinkSafe(shop) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_name is required, at most 50 characters, without &?#="})
		return
	}

	fg := h.settings.DefaultPrimary
	if v := c.Query("fg"); v != "" {
		parsed, err := hexcolor.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fg = parsed
	}

	qrc, err := qrcode.NewWith(upi.BuildPayload(upiID, shop),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
	)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to create QR code"})
		return
	}

	opts := []standard.ImageOption{
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(previewModuleWidth),
		standard.WithBorderWidth(previewBorder),
		standard.WithFgColor(fg.RGBA()),
		standard.WithBgColor(hexcolor.White.RGBA()),
	}
	switch c.DefaultQuery("shape", "circle") {
	case "liquid":
		opts = append(opts, standard.WithCustomShape(&customShape{drawFunc: shapes.LiquidBlock()}))
	case "chain":
		opts = append(opts, standard.WithCustomShape(&customShape{drawFunc: shapes.ChainBlock()}))
	case "rectangle":
	default:
		opts = append(opts, standard.WithCircleShape())
	}

	var buf bytes.Buffer
	if err := qrc.Save(standard.NewWithWriter(nopCloser{&buf}, opts...)); err != nil {
		h.logger.WithError(err).Error("preview QR rendering failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code image"})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// customShape implements the IShape interface by wrapping drawing functions from the shapes package
type customShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

func (cs *customShape) Draw(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

// DrawFinder uses the same drawing function for finder patterns
func (cs *customShape) DrawFinder(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }
