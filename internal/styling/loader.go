package styling

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

// svgRasterEdge is the longer side, in pixels, SVG logos are rasterized at.
const svgRasterEdge = 1024

// DecodeError reports a logo that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode logo %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// LoadLogo reads a PNG, JPEG, GIF, BMP, TIFF, WebP or SVG logo. Any failure is
// a *DecodeError; there is no fallback once a path is given.
func LoadLogo(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		img, err := loadSVG(path)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		return img, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("empty image")}
	}
	return img, nil
}

func loadSVG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("svg has no usable viewBox")
	}
	scale := svgRasterEdge / math.Max(vw, vh)
	w := int(math.Round(vw * scale))
	h := int(math.Round(vh * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}
