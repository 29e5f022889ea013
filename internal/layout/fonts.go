package layout

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	regularFamily = "go"
	boldFamily    = "go-bold"
)

func (f Font) family() string {
	if f.Bold {
		return boldFamily
	}
	return regularFamily
}

func (f Font) ttf() []byte {
	if f.Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

var (
	parseOnce sync.Once
	parsed    map[bool]*opentype.Font
	parseErr  error
)

func parsedFonts() (map[bool]*opentype.Font, error) {
	parseOnce.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			parseErr = fmt.Errorf("parse goregular: %w", err)
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			parseErr = fmt.Errorf("parse gobold: %w", err)
			return
		}
		parsed = map[bool]*opentype.Font{false: regular, true: bold}
	})
	return parsed, parseErr
}

// faceCache hands out font faces for one render. Faces keep glyph buffers
// and must not be shared between goroutines.
type faceCache map[Font]font.Face

func (c faceCache) face(f Font) (font.Face, error) {
	if face, ok := c[f]; ok {
		return face, nil
	}
	fonts, err := parsedFonts()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fonts[f.Bold], &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face (size=%.1f bold=%t): %w", f.Size, f.Bold, err)
	}
	c[f] = face
	return face, nil
}

func (c faceCache) Close() {
	for _, face := range c {
		face.Close()
	}
}
