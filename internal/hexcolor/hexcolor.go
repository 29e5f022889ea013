// Package hexcolor holds the validated "#rrggbb" colour type used for poster
// branding.
package hexcolor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a normalized "#rrggbb" value (lowercase, no alpha).
type Color string

const (
	White Color = "#ffffff"
	Black Color = "#000000"
)

// Parse validates s as '#' followed by exactly six hex digits and returns
// it lowercased.
func Parse(s string) (Color, error) {
	v := strings.TrimSpace(s)
	if len(v) != 7 || v[0] != '#' {
		return "", fmt.Errorf("invalid hex color %q: want #rrggbb", s)
	}
	for _, r := range v[1:] {
		if !isHex(r) {
			return "", fmt.Errorf("invalid hex color %q: %q is not a hex digit", s, r)
		}
	}
	return Color(strings.ToLower(v)), nil
}

// MustParse is Parse for package-level constants; it panics on bad input.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize is Parse returning a plain string. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) (string, error) {
	c, err := Parse(s)
	return string(c), err
}

// Valid reports whether s would be accepted by Parse.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// RGB returns the channel values. A Color that was not produced by Parse
// yields black.
func (c Color) RGB() (r, g, b uint8) {
	param := strings.TrimPrefix(string(c), "#")
	if len(param) != 6 {
		return 0, 0, 0
	}
	rv, err1 := strconv.ParseUint(param[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(param[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(param[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return uint8(rv), uint8(gv), uint8(bv)
}

// RGBA returns the opaque color.RGBA for c.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{r, g, b, 255}
}

func (c Color) String() string { return string(c) }

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
