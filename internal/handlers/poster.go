package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrposter/internal/form"
	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
	"github.com/cristianadrielbraun/qrposter/internal/poster"
	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
	"github.com/cristianadrielbraun/qrposter/internal/styling"
)

// logo content types and the extension the upload is stored under
var logoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9]`)

// errBadRequest marks failures that are the client's fault.
type errBadRequest struct{ msg string }

func (e *errBadRequest) Error() string { return e.msg }

// CreatePoster handles POST /api/poster and streams the finished document
// back as an attachment.
func (h *Handler) CreatePoster(c *gin.Context) {
	start := time.Now()

	var body form.Poster
	if err := c.ShouldBindWith(&body, binding.FormMultipart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": form.Describe(err)})
		return
	}
	body.Trim()

	req, err := h.buildRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logoPath, err := h.saveLogo(c)
	if err != nil {
		var br *errBadRequest
		if errors.As(err, &br) {
			c.JSON(http.StatusBadRequest, gin.H{"error": br.msg})
			return
		}
		h.logger.WithError(err).Error("saving logo upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store logo"})
		return
	}
	req.LogoPath = logoPath

	ws, err := h.provider.Create()
	if err != nil {
		h.janitor.Schedule(0, nonEmpty(logoPath)...)
		h.logger.WithError(err).Error("creating workspace failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare workspace"})
		return
	}

	path, err := h.designer.Generate(ws, req)
	if err != nil {
		h.janitor.Schedule(0, nonEmpty(ws.Dir, logoPath)...)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	h.generated.Add(1)
	elapsed := time.Since(start)
	h.logger.WithFields(logrus.Fields{
		"client_ip": c.ClientIP(),
		"duration":  elapsed,
		"format":    req.Format,
	}).Info("poster delivered")

	c.Header("X-Generation-Time", fmt.Sprintf("%.2fs", elapsed.Seconds()))
	c.FileAttachment(path, attachmentName(req.ShopName, req.Format))
	h.janitor.Schedule(h.settings.CleanupGrace, nonEmpty(ws.Dir, logoPath)...)
}

func (h *Handler) buildRequest(f form.Poster) (poster.Request, error) {
	primary := h.settings.DefaultPrimary
	if f.PrimaryColor != "" {
		c, err := hexcolor.Parse(f.PrimaryColor)
		if err != nil {
			return poster.Request{}, err
		}
		primary = c
	}
	text := h.settings.DefaultText
	if f.TextColor != "" {
		c, err := hexcolor.Parse(f.TextColor)
		if err != nil {
			return poster.Request{}, err
		}
		text = c
	}

	format := poster.FormatPDF
	if f.Format == string(poster.FormatPNG) {
		format = poster.FormatPNG
	}

	return poster.Request{
		ShopName:  f.ShopName,
		PaymentID: f.UPIID,
		Tagline:   f.Tagline,
		Handle:    f.Instagram,
		Website:   f.Website,
		Primary:   primary,
		Text:      text,
		Format:    format,
	}, nil
}

// saveLogo stores the optional "logo" upload and returns its path, or ""
// when no logo was sent.
func (h *Handler) saveLogo(c *gin.Context) (string, error) {
	fh, err := c.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", &errBadRequest{msg: "Invalid logo upload"}
	}
	if fh.Size == 0 {
		return "", nil
	}
	if fh.Size > h.settings.MaxLogoBytes {
		return "", &errBadRequest{msg: fmt.Sprintf("Logo exceeds %d bytes", h.settings.MaxLogoBytes)}
	}
	ext, ok := logoTypes[contentType(fh)]
	if !ok {
		return "", &errBadRequest{msg: "Invalid logo format"}
	}

	dir := h.uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, strings.ReplaceAll(uuid.NewString(), "-", "")+ext)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (h *Handler) uploadDir() string {
	if h.settings.UploadDir != "" {
		return h.settings.UploadDir
	}
	return filepath.Join(os.TempDir(), "qrposter_uploads")
}

func contentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// statusFor maps pipeline failures to HTTP status codes.
func statusFor(err error) int {
	var decErr *styling.DecodeError
	if errors.As(err, &decErr) {
		return http.StatusBadRequest
	}
	var encErr *qrmatrix.EncodingError
	if errors.As(err, &encErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func attachmentName(shop string, format poster.Format) string {
	ext := ".pdf"
	if format == poster.FormatPNG {
		ext = ".png"
	}
	return unsafeFilename.ReplaceAllString(shop, "_") + "_QR" + ext
}

func nonEmpty(paths ...string) []string {
	out := paths[:0]
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
