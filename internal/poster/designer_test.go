package poster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
	"github.com/cristianadrielbraun/qrposter/internal/scan"
	"github.com/cristianadrielbraun/qrposter/internal/styling"
	"github.com/cristianadrielbraun/qrposter/internal/workspace"
)

func testDesigner(opts ...Option) *Designer {
	l := logrus.New()
	l.SetOutput(io.Discard)
	base := []Option{
		WithLogger(l),
		WithStyling(styling.Options{
			Style:   styling.Style{ModuleSize: 3, Upscale: 2},
			Frame:   styling.Frame{Padding: 12, Radius: 6},
			Backing: color.White,
		}),
		WithPreviewScale(0.25),
		WithVerify(true),
	}
	return NewDesigner(append(base, opts...)...)
}

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.NewProvider(t.TempDir()).Create()
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func cafeLuna() Request {
	return Request{
		ShopName:  "Cafe Luna",
		PaymentID: "cafeluna@upi",
		Primary:   hexcolor.MustParse("#646cff"),
		Text:      hexcolor.Black,
	}
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGeneratePDF(t *testing.T) {
	ws := newWorkspace(t)
	path, err := testDesigner().Generate(ws, cafeLuna())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !ws.Contains(path) || filepath.Ext(path) != ".pdf" {
		t.Errorf("Generate() = %s, want a .pdf inside %s", path, ws.Dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}

	var raw, final int
	for _, name := range listFiles(t, ws.Dir) {
		switch {
		case strings.HasPrefix(name, "raw_"):
			raw++
		case strings.HasPrefix(name, "qr_final_"):
			final++
		}
	}
	if raw != 1 || final != 1 {
		t.Errorf("workspace has %d raw and %d finished rasters, want 1 each", raw, final)
	}
}

func TestGenerateRawRasterDecodes(t *testing.T) {
	ws := newWorkspace(t)
	if _, err := testDesigner().Generate(ws, cafeLuna()); err != nil {
		t.Fatal(err)
	}
	for _, name := range listFiles(t, ws.Dir) {
		if !strings.HasPrefix(name, "raw_") {
			continue
		}
		got, err := scan.File(filepath.Join(ws.Dir, name))
		if err != nil {
			t.Fatalf("raw raster does not decode: %v", err)
		}
		if want := "upi://pay?pa=cafeluna@upi&pn=Cafe%20Luna"; got != want {
			t.Errorf("raw raster = %q, want %q", got, want)
		}
	}
}

func TestGenerateFinishedQRDecodes(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	ws := newWorkspace(t)
	// production styling: dots, 100 px padding, 60 px corners
	if _, err := NewDesigner(WithLogger(l)).Generate(ws, cafeLuna()); err != nil {
		t.Fatal(err)
	}

	var final string
	for _, name := range listFiles(t, ws.Dir) {
		if strings.HasPrefix(name, "qr_final_") {
			final = filepath.Join(ws.Dir, name)
		}
	}
	if final == "" {
		t.Fatal("no finished QR artifact")
	}
	qr, err := imaging.Open(final)
	if err != nil {
		t.Fatal(err)
	}

	// as printed: on white paper with room around it
	const margin = 400
	b := qr.Bounds()
	page := imaging.New(b.Dx()+2*margin, b.Dy()+2*margin, color.White)
	page = imaging.Overlay(page, qr, image.Pt(margin, margin), 1.0)

	got, err := scan.Image(page)
	if err != nil {
		t.Fatalf("finished QR does not decode: %v", err)
	}
	if want := "upi://pay?pa=cafeluna@upi&pn=Cafe%20Luna"; got != want {
		t.Errorf("finished QR = %q, want %q", got, want)
	}
}

func TestGeneratePNGWithSocialAndLogo(t *testing.T) {
	ws := newWorkspace(t)
	logo := filepath.Join(t.TempDir(), "logo.png")
	if err := imaging.Save(imaging.New(40, 30, color.NRGBA{200, 30, 30, 255}), logo); err != nil {
		t.Fatal(err)
	}

	req := cafeLuna()
	req.Handle = "cafeluna"
	req.Website = "cafeluna.in"
	req.Tagline = "Fresh coffee"
	req.LogoPath = logo
	req.Format = FormatPNG

	path, err := testDesigner().Generate(ws, req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("Generate() = %s, want .png", path)
	}
	if _, err := imaging.Open(path); err != nil {
		t.Errorf("preview does not decode: %v", err)
	}
}

func TestGenerateBadLogo(t *testing.T) {
	ws := newWorkspace(t)
	logo := filepath.Join(t.TempDir(), "logo.png")
	os.WriteFile(logo, []byte("not an image"), 0o644)

	req := cafeLuna()
	req.LogoPath = logo
	_, err := testDesigner().Generate(ws, req)

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Stage != StageLogo {
		t.Fatalf("Generate() error = %v, want GenerationError at %s", err, StageLogo)
	}
	var decErr *styling.DecodeError
	if !errors.As(err, &decErr) {
		t.Errorf("cause %v is not a *styling.DecodeError", err)
	}
	for _, name := range listFiles(t, ws.Dir) {
		if strings.HasPrefix(name, "poster_") {
			t.Errorf("poster %s written despite failure", name)
		}
	}
}

func TestGenerateUnencodable(t *testing.T) {
	req := cafeLuna()
	req.PaymentID = strings.Repeat("x", 3000) + "@upi"
	_, err := testDesigner().Generate(newWorkspace(t), req)

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Stage != StageEncode {
		t.Fatalf("Generate() error = %v, want GenerationError at %s", err, StageEncode)
	}
	var encErr *qrmatrix.EncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("cause %v is not a *qrmatrix.EncodingError", err)
	}
}

// wrongSource encodes a fixed payload whatever it is asked for.
type wrongSource struct{}

func (wrongSource) Encode(_ string, level qrmatrix.Level) (*qrmatrix.Grid, error) {
	src, _ := qrmatrix.NewSource("")
	return src.Encode("upi://pay?pa=someone@else&pn=Other", level)
}

func TestGenerateVerifyMismatch(t *testing.T) {
	_, err := testDesigner(WithSource(wrongSource{})).Generate(newWorkspace(t), cafeLuna())

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Stage != StageVerify {
		t.Fatalf("Generate() error = %v, want GenerationError at %s", err, StageVerify)
	}
	var mismatch *scan.MismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("cause %v is not a *scan.MismatchError", err)
	}

	// without verification the same source goes through
	if _, err := testDesigner(WithSource(wrongSource{}), WithVerify(false)).Generate(newWorkspace(t), cafeLuna()); err != nil {
		t.Errorf("Generate(verify off) error = %v", err)
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	req := cafeLuna()
	req.Format = "docx"
	_, err := testDesigner().Generate(newWorkspace(t), req)

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Stage != StageLayout {
		t.Errorf("Generate() error = %v, want GenerationError at %s", err, StageLayout)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	d := testDesigner()
	provider := workspace.NewProvider(t.TempDir())

	const n = 4
	var wg sync.WaitGroup
	paths := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ws, err := provider.Create()
			if err != nil {
				errs[i] = err
				return
			}
			paths[i], errs[i] = d.Generate(ws, cafeLuna())
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("request %d: %v", i, errs[i])
		}
		dir := filepath.Dir(paths[i])
		if seen[dir] {
			t.Errorf("two requests shared workspace %s", dir)
		}
		seen[dir] = true
	}
}
