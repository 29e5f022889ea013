package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
	"github.com/cristianadrielbraun/qrposter/internal/poster"
	"github.com/cristianadrielbraun/qrposter/internal/workspace"
	"github.com/cristianadrielbraun/qrposter/web/pages"
)

// Settings are the request-level limits and defaults.
type Settings struct {
	UploadDir      string
	MaxLogoBytes   int64
	CleanupGrace   time.Duration
	DefaultPrimary hexcolor.Color
	DefaultText    hexcolor.Color
	RateRequests   int
	RateWindow     time.Duration
}

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	designer *poster.Designer
	provider *workspace.Provider
	janitor  *workspace.Janitor
	logger   *logrus.Logger
	settings Settings
	limiter  *clientLimiter

	generated atomic.Int64
}

// New returns a Handler. The janitor must outlive the handler so scheduled
// cleanups still run.
func New(d *poster.Designer, p *workspace.Provider, j *workspace.Janitor, logger *logrus.Logger, s Settings) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		designer: d,
		provider: p,
		janitor:  j,
		logger:   logger,
		settings: s,
		limiter:  newClientLimiter(s.RateRequests, s.RateWindow),
	}
}

// Router wires middleware and routes onto a new gin engine.
func (h *Handler) Router() *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.logger))
	r.Use(cors())

	api := r.Group("/api")
	{
		api.POST("/poster", h.limiter.middleware(), h.CreatePoster)
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
	r.GET("/health", h.Health)

	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		props := pages.HomeProps{
			PrimaryColor: h.settings.DefaultPrimary.String(),
			TextColor:    h.settings.DefaultText.String(),
			MaxLogoBytes: h.settings.MaxLogoBytes,
		}
		if err := pages.HomePage(props).Render(c.Request.Context(), c.Writer); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
		}
	})
	return r
}

// Health reports liveness and the number of posters generated so far.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "count": h.generated.Load()})
}
