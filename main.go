package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mdp/qrterminal/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrposter/internal/config"
	"github.com/cristianadrielbraun/qrposter/internal/form"
	"github.com/cristianadrielbraun/qrposter/internal/handlers"
	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
	"github.com/cristianadrielbraun/qrposter/internal/layout"
	"github.com/cristianadrielbraun/qrposter/internal/poster"
	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
	"github.com/cristianadrielbraun/qrposter/internal/scan"
	"github.com/cristianadrielbraun/qrposter/internal/styling"
	"github.com/cristianadrielbraun/qrposter/internal/upi"
	"github.com/cristianadrielbraun/qrposter/internal/workspace"
)

var version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "qrposter",
		Short:         "Printable UPI payment posters with a branded QR code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")

	// --- serve -----------------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})

	// --- generate --------------------------------------------------------------
	var g generateFlags
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one poster to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(configPath, g)
		},
	}
	fl := generateCmd.Flags()
	fl.StringVar(&g.shop, "shop", "", "Shop name (required)")
	fl.StringVar(&g.upiID, "upi", "", "UPI ID, e.g. shop@upi (required)")
	fl.StringVar(&g.tagline, "tagline", "", "Tagline under the shop name")
	fl.StringVar(&g.primary, "primary", "", "Brand color #rrggbb (default from config)")
	fl.StringVar(&g.text, "text", "", "Text color #rrggbb (default from config)")
	fl.StringVar(&g.instagram, "instagram", "", "Instagram handle")
	fl.StringVar(&g.website, "website", "", "Website")
	fl.StringVar(&g.logo, "logo", "", "Logo image (png, jpeg, webp, svg)")
	fl.StringVarP(&g.out, "out", "o", "poster.pdf", "Output PDF path")
	fl.StringVar(&g.preview, "preview", "", "Also write a PNG preview to this path")
	fl.BoolVar(&g.terminal, "terminal", false, "Print the payment QR to the terminal")
	generateCmd.MarkFlagRequired("shop")
	generateCmd.MarkFlagRequired("upi")
	root.AddCommand(generateCmd)

	// --- scan ------------------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "scan [image]",
		Short: "Decode the QR code in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := scan.File(args[0])
			if err != nil {
				return err
			}
			fmt.Println(text)
			if p, err := upi.ParsePayload(text); err == nil {
				fmt.Printf("payee: %s\nname:  %s\n", p.PaymentID, p.PayeeName)
			}
			return nil
		},
	})

	// --- version ---------------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrposter %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func newDesigner(cfg *config.Config, logger *logrus.Logger) (*poster.Designer, error) {
	src, err := qrmatrix.NewSource(cfg.QR.Encoder)
	if err != nil {
		return nil, err
	}
	opts := styling.DefaultOptions()
	opts.Style = styling.Style{ModuleSize: cfg.QR.ModuleSize, Upscale: cfg.QR.Upscale}
	return poster.NewDesigner(
		poster.WithSource(src),
		poster.WithLevel(cfg.Level()),
		poster.WithStyling(opts),
		poster.WithVerify(cfg.QR.Verify),
		poster.WithLogger(logger),
	), nil
}

// runServe wires all components together and blocks until SIGINT/SIGTERM.
func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	designer, err := newDesigner(cfg, logger)
	if err != nil {
		return err
	}
	provider := workspace.NewProvider(cfg.WorkspaceDir)
	janitor := workspace.NewJanitor(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// leftovers from a previous run
	if _, err := janitor.Sweep(provider.Root(), cfg.WorkspaceTTL.Duration); err != nil {
		logger.WithError(err).Warn("initial workspace sweep failed")
	}
	janitorDone := make(chan struct{})
	go func() {
		janitor.Run(ctx, provider.Root(), cfg.WorkspaceTTL.Duration/2, cfg.WorkspaceTTL.Duration)
		close(janitorDone)
	}()

	gin.SetMode(gin.ReleaseMode)
	h := handlers.New(designer, provider, janitor, logger, handlers.Settings{
		UploadDir:      cfg.UploadDir,
		MaxLogoBytes:   cfg.MaxLogoBytes,
		CleanupGrace:   cfg.CleanupGrace.Duration,
		DefaultPrimary: hexcolor.MustParse(cfg.Defaults.PrimaryColor),
		DefaultText:    hexcolor.MustParse(cfg.Defaults.TextColor),
		RateRequests:   cfg.RateLimit.Requests,
		RateWindow:     cfg.RateLimit.Window.Duration,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"addr": srv.Addr, "version": version, "encoder": cfg.QR.Encoder}).Info("qrposter listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}

	cancel()
	<-janitorDone
	logger.Info("goodbye")
	return nil
}

type generateFlags struct {
	shop, upiID, tagline string
	primary, text        string
	instagram, website   string
	logo, out, preview   string
	terminal             bool
}

// runGenerate produces one poster. The command owns the workspace and
// removes it once the outputs are copied out.
func runGenerate(configPath string, g generateFlags) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	req, err := generateRequest(g, cfg.Defaults)
	if err != nil {
		return err
	}

	designer, err := newDesigner(cfg, logger)
	if err != nil {
		return err
	}
	ws, err := workspace.NewProvider(cfg.WorkspaceDir).Create()
	if err != nil {
		return err
	}
	defer ws.Remove()

	path, err := designer.Generate(ws, req)
	if err != nil {
		return err
	}
	if err := copyFile(path, g.out); err != nil {
		return err
	}
	fmt.Printf("poster written to %s\n", g.out)

	if g.preview != "" {
		req.Format = poster.FormatPNG
		png, err := designer.Generate(ws, req)
		if err != nil {
			return err
		}
		if err := copyFile(png, g.preview); err != nil {
			return err
		}
		fmt.Printf("preview written to %s (%.0f dpi)\n", g.preview, layout.PreviewScale*72)
	}

	if g.terminal {
		qrterminal.GenerateHalfBlock(upi.BuildPayload(req.PaymentID, req.ShopName), qrterminal.M, os.Stdout)
	}
	return nil
}

// generateRequest applies the same input rules as the HTTP form to the
// command's flags.
func generateRequest(g generateFlags, defaults config.Defaults) (poster.Request, error) {
	in := form.Poster{
		ShopName:     g.shop,
		UPIID:        g.upiID,
		Tagline:      g.tagline,
		PrimaryColor: orDefault(g.primary, defaults.PrimaryColor),
		TextColor:    orDefault(g.text, defaults.TextColor),
		Instagram:    g.instagram,
		Website:      g.website,
	}
	if err := form.Validate(&in); err != nil {
		return poster.Request{}, fmt.Errorf("invalid input: %w", err)
	}
	primary, err := hexcolor.Parse(in.PrimaryColor)
	if err != nil {
		return poster.Request{}, fmt.Errorf("--primary: %w", err)
	}
	text, err := hexcolor.Parse(in.TextColor)
	if err != nil {
		return poster.Request{}, fmt.Errorf("--text: %w", err)
	}
	return poster.Request{
		ShopName:  in.ShopName,
		PaymentID: in.UPIID,
		Tagline:   in.Tagline,
		Handle:    in.Instagram,
		Website:   in.Website,
		Primary:   primary,
		Text:      text,
		LogoPath:  g.logo,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func copyFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
