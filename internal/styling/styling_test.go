package styling

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
)

var (
	fill  = color.RGBA{0x64, 0x6c, 0xff, 0xff}
	small = Style{ModuleSize: 2, Upscale: 4}
)

func testGrid(t *testing.T) *qrmatrix.Grid {
	t.Helper()
	src, err := qrmatrix.NewSource("")
	if err != nil {
		t.Fatal(err)
	}
	g, err := src.Encode("upi://pay?pa=cafeluna@upi&pn=Cafe%20Luna", qrmatrix.LevelH)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestRenderModulesSize(t *testing.T) {
	g := testGrid(t)
	img := RenderModules(g, fill, small)
	want := g.Size() * 2 * 4
	if b := img.Bounds(); b.Dx() != want || b.Dy() != want {
		t.Errorf("RenderModules() size = %v, want %dx%d", b.Size(), want, want)
	}
}

func TestRenderModulesDeterministic(t *testing.T) {
	g := testGrid(t)
	a := RenderModules(g, fill, small)
	b := RenderModules(g, fill, small)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("RenderModules() produced different pixels for identical input")
	}
}

func TestRenderModulesOneDotPerDarkCell(t *testing.T) {
	g := testGrid(t)
	img := RenderModules(g, fill, small)
	cell := small.CellSize()

	dots := 0
	for y := 0; y < g.Size(); y++ {
		for x := 0; x < g.Size(); x++ {
			ox, oy := x*cell, y*cell
			if g.Dark(x, y) {
				if got := img.RGBAAt(ox+cell/2, oy+cell/2); got != fill {
					t.Fatalf("dark module (%d,%d) centre = %v, want %v", x, y, got, fill)
				}
				// the cell corner lies outside the inscribed circle
				if a := img.RGBAAt(ox, oy).A; a != 0 {
					t.Fatalf("dark module (%d,%d) corner alpha = %d, want 0", x, y, a)
				}
				dots++
				continue
			}
			for py := oy; py < oy+cell; py++ {
				for px := ox; px < ox+cell; px++ {
					if a := img.RGBAAt(px, py).A; a != 0 {
						t.Fatalf("light module (%d,%d) pixel (%d,%d) alpha = %d, want 0", x, y, px, py, a)
					}
				}
			}
		}
	}
	if dots != g.DarkCount() {
		t.Errorf("rendered %d dots, want %d", dots, g.DarkCount())
	}
}

func TestRenderModulesBorderCells(t *testing.T) {
	g, _ := qrmatrix.NewGrid([][]bool{
		{true, false, true},
		{false, false, false},
		{true, false, true},
	})
	img := RenderModules(g, fill, Style{ModuleSize: 4, Upscale: 2})
	for _, p := range []image.Point{{4, 4}, {20, 4}, {4, 20}, {20, 20}} {
		if got := img.RGBAAt(p.X, p.Y); got != fill {
			t.Errorf("corner module centre %v = %v, want %v", p, got, fill)
		}
	}
	if a := img.RGBAAt(12, 12).A; a != 0 {
		t.Errorf("centre light module alpha = %d, want 0", a)
	}
}

func TestOverlayLogo(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	bitmap := image.NewRGBA(image.Rect(0, 0, 100, 100))
	out := OverlayLogo(bitmap, solid(50, 50, red), color.White)

	if out.Bounds() != bitmap.Bounds() {
		t.Fatalf("OverlayLogo() bounds = %v, want %v", out.Bounds(), bitmap.Bounds())
	}
	tests := []struct {
		name string
		p    image.Point
		want color.RGBA
	}{
		{"logo centre", image.Pt(50, 50), color.RGBA{255, 0, 0, 255}},
		{"logo corner", image.Pt(40, 40), color.RGBA{255, 0, 0, 255}},
		{"backing ring", image.Pt(39, 50), color.RGBA{255, 255, 255, 255}},
		{"outside disc", image.Pt(10, 10), color.RGBA{}},
	}
	for _, tt := range tests {
		if got := out.RGBAAt(tt.p.X, tt.p.Y); got != tt.want {
			t.Errorf("%s %v = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestOverlayLogoTransparentShowsDisc(t *testing.T) {
	bitmap := image.NewRGBA(image.Rect(0, 0, 100, 100))
	out := OverlayLogo(bitmap, solid(30, 30, color.NRGBA{}), color.White)
	if got := out.RGBAAt(50, 50); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("centre under transparent logo = %v, want white", got)
	}
}

func TestFitSquareCropsCentre(t *testing.T) {
	green := color.NRGBA{0, 200, 0, 255}
	src := solid(400, 300, green)
	for y := 0; y < 300; y++ {
		for x := 0; x < 50; x++ {
			src.Set(x, y, color.NRGBA{255, 0, 0, 255})
			src.Set(399-x, y, color.NRGBA{0, 0, 255, 255})
		}
		// markers 10px inside each kept edge
		src.Set(60, y, color.NRGBA{0, 0, 0, 255})
		src.Set(339, y, color.NRGBA{0, 0, 0, 255})
	}

	out := FitSquare(src, 300)
	if b := out.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Fatalf("FitSquare() size = %v, want 300x300", b.Size())
	}

	for _, y := range []int{0, 150, 299} {
		for _, x := range []int{0, 299} {
			c := out.NRGBAAt(x, y)
			if c.R > 10 || c.B > 10 || c.G < 190 {
				t.Errorf("edge pixel (%d,%d) = %v, want green: side strips must be cropped", x, y, c)
			}
		}
		if c := out.NRGBAAt(10, y); c.G > 10 {
			t.Errorf("left marker at (10,%d) = %v, want black", y, c)
		}
		if c := out.NRGBAAt(289, y); c.G > 10 {
			t.Errorf("right marker at (289,%d) = %v, want black", y, c)
		}
	}
}

func TestFitSquareDownscale(t *testing.T) {
	green := color.NRGBA{0, 200, 0, 255}
	src := solid(800, 600, green)
	for y := 0; y < 600; y++ {
		for x := 0; x < 100; x++ {
			src.Set(x, y, color.NRGBA{255, 0, 0, 255})
			src.Set(799-x, y, color.NRGBA{0, 0, 255, 255})
		}
	}

	out := FitSquare(src, 150)
	if b := out.Bounds(); b.Dx() != 150 || b.Dy() != 150 {
		t.Fatalf("FitSquare() size = %v, want 150x150", b.Size())
	}
	for _, p := range []image.Point{{0, 0}, {149, 0}, {0, 75}, {149, 75}, {0, 149}, {149, 149}} {
		c := out.NRGBAAt(p.X, p.Y)
		if c.R > 20 || c.B > 20 {
			t.Errorf("pixel %v = %v: discarded strip leaked into the crop", p, c)
		}
	}
}

func TestFinish(t *testing.T) {
	bitmap := solid(40, 40, color.NRGBA{255, 0, 0, 255})
	out := Finish(bitmap, Frame{Padding: 10, Radius: 6})

	if b := out.Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Fatalf("Finish() size = %v, want 60x60", b.Size())
	}
	tests := []struct {
		name string
		p    image.Point
		want color.RGBA
	}{
		{"clipped corner", image.Pt(0, 0), color.RGBA{}},
		{"clipped corner", image.Pt(59, 59), color.RGBA{}},
		{"top padding", image.Pt(30, 0), color.RGBA{255, 255, 255, 255}},
		{"left padding", image.Pt(5, 30), color.RGBA{255, 255, 255, 255}},
		{"content", image.Pt(10, 10), color.RGBA{255, 0, 0, 255}},
		{"content", image.Pt(49, 49), color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := out.RGBAAt(tt.p.X, tt.p.Y); got != tt.want {
			t.Errorf("%s %v = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestFinishClipsBitmap(t *testing.T) {
	// radius larger than the padding: the rounded corner cuts into the bitmap
	bitmap := solid(60, 60, color.NRGBA{255, 0, 0, 255})
	out := Finish(bitmap, Frame{Padding: 2, Radius: 30})

	if got := out.RGBAAt(2, 2); got.A != 0 {
		t.Errorf("bitmap corner %v = %v, want clipped", image.Pt(2, 2), got)
	}
	if got := out.RGBAAt(61, 61); got.A != 0 {
		t.Errorf("bitmap corner %v = %v, want clipped", image.Pt(61, 61), got)
	}
	if got, want := out.RGBAAt(32, 32), (color.RGBA{255, 0, 0, 255}); got != want {
		t.Errorf("centre = %v, want %v", got, want)
	}
	if got, want := out.RGBAAt(32, 0), (color.RGBA{255, 255, 255, 255}); got != want {
		t.Errorf("top padding = %v, want %v", got, want)
	}
}

func TestFinishPaddingIsAbsolute(t *testing.T) {
	for _, side := range []int{8, 64, 300} {
		out := Finish(image.NewRGBA(image.Rect(0, 0, side, side)), DefaultFrame())
		want := side + 2*FramePadding
		if b := out.Bounds(); b.Dx() != want || b.Dy() != want {
			t.Errorf("Finish(%d) size = %v, want %dx%d", side, b.Size(), want, want)
		}
	}
}

func TestComposeLogoKeepsDimensions(t *testing.T) {
	g := testGrid(t)
	opts := Options{Style: small, Frame: DefaultFrame(), Backing: color.White}

	plain := Compose(g, fill, nil, opts)
	withLogo := Compose(g, fill, solid(64, 48, color.NRGBA{10, 20, 30, 255}), opts)
	if plain.Bounds() != withLogo.Bounds() {
		t.Errorf("logo changed finished size: %v vs %v", withLogo.Bounds(), plain.Bounds())
	}
}

func TestComposeWithoutLogo(t *testing.T) {
	g := testGrid(t)
	opts := Options{Style: small, Frame: DefaultFrame(), Backing: color.White}

	got := Compose(g, fill, nil, opts)
	want := Finish(RenderModules(g, fill, small), DefaultFrame())
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("Compose(nil logo) differs from Finish(RenderModules())")
	}
}

func TestLoadLogo(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "logo.png")
	if err := imaging.Save(solid(40, 30, color.NRGBA{1, 2, 3, 255}), pngPath); err != nil {
		t.Fatal(err)
	}
	img, err := LoadLogo(pngPath)
	if err != nil {
		t.Fatalf("LoadLogo(png) error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("LoadLogo(png) size = %v, want 40x30", b.Size())
	}

	svgPath := filepath.Join(dir, "logo.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect x="0" y="0" width="100" height="50" fill="#ff0000"/></svg>`
	if err := os.WriteFile(svgPath, []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err = LoadLogo(svgPath)
	if err != nil {
		t.Fatalf("LoadLogo(svg) error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != svgRasterEdge || b.Dy() != svgRasterEdge/2 {
		t.Errorf("LoadLogo(svg) size = %v, want %dx%d", b.Size(), svgRasterEdge, svgRasterEdge/2)
	}
	if r, _, _, a := img.At(512, 256).RGBA(); r>>8 != 0xff || a>>8 != 0xff {
		t.Errorf("LoadLogo(svg) centre = %v, want opaque red", img.At(512, 256))
	}
}

func TestLoadLogoDecodeError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(bad, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "missing.svg")} {
		_, err := LoadLogo(path)
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Errorf("LoadLogo(%s) error = %v, want *DecodeError", filepath.Base(path), err)
			continue
		}
		if decErr.Path != path {
			t.Errorf("DecodeError.Path = %q, want %q", decErr.Path, path)
		}
	}
}
