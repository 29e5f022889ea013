package qrmatrix

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/boombuler/barcode/qr"
	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
)

// Source encodes a payload into a module grid.
type Source interface {
	Encode(payload string, level Level) (*Grid, error)
}

// EncodingError reports a payload that cannot be encoded at the requested
// level, typically because it exceeds the capacity.
type EncodingError struct {
	Level Level
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode payload at level %s: %v", e.Level, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

const DefaultSource = "yeqown"

var sources = map[string]Source{
	"yeqown":    yeqownSource{},
	"skip2":     skip2Source{},
	"boombuler": boombulerSource{},
}

// MustSource is NewSource for names known at compile time. It panics on an
// unknown name.
func MustSource(name string) Source {
	s, err := NewSource(name)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSource returns the encoder registered under name.
func NewSource(name string) (Source, error) {
	if name == "" {
		name = DefaultSource
	}
	s, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown QR encoder %q (available: %v)", name, SourceNames())
	}
	return s, nil
}

// SourceNames lists the registered encoders.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for n := range sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// yeqownSource uses github.com/yeqown/go-qrcode, capturing the matrix through
// a qrcode.Writer instead of rasterizing it.
type yeqownSource struct{}

func (yeqownSource) Encode(payload string, level Level) (*Grid, error) {
	ecl := map[Level]qrcode.EncodeOption{
		LevelL: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow),
		LevelM: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		LevelQ: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart),
		LevelH: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
	}[level]
	if ecl == nil {
		return nil, &EncodingError{Level: level, Err: fmt.Errorf("unsupported level")}
	}

	qrc, err := qrcode.NewWith(payload, qrcode.WithEncodingMode(qrcode.EncModeByte), ecl)
	if err != nil {
		return nil, &EncodingError{Level: level, Err: err}
	}

	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, &EncodingError{Level: level, Err: err}
	}
	return w.grid, nil
}

type matrixWriter struct {
	grid *Grid
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	rows := make([][]bool, mat.Height())
	for y := range rows {
		rows[y] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		rows[y][x] = v.IsSet()
	})
	g, err := NewGrid(rows)
	if err != nil {
		return err
	}
	w.grid = g
	return nil
}

func (w *matrixWriter) Close() error { return nil }

type skip2Source struct{}

func (skip2Source) Encode(payload string, level Level) (*Grid, error) {
	rl := map[Level]skip2.RecoveryLevel{
		LevelL: skip2.Low,
		LevelM: skip2.Medium,
		LevelQ: skip2.High,
		LevelH: skip2.Highest,
	}[level]

	q, err := skip2.New(payload, rl)
	if err != nil {
		return nil, &EncodingError{Level: level, Err: err}
	}
	q.DisableBorder = true

	return NewGrid(q.Bitmap())
}

type boombulerSource struct{}

func (boombulerSource) Encode(payload string, level Level) (*Grid, error) {
	ecl := map[Level]qr.ErrorCorrectionLevel{
		LevelL: qr.L,
		LevelM: qr.M,
		LevelQ: qr.Q,
		LevelH: qr.H,
	}[level]

	code, err := qr.Encode(payload, ecl, qr.Auto)
	if err != nil {
		return nil, &EncodingError{Level: level, Err: err}
	}

	b := code.Bounds()
	rows := make([][]bool, b.Dy())
	for y := range rows {
		rows[y] = make([]bool, b.Dx())
		for x := range rows[y] {
			gray := color.GrayModel.Convert(code.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			rows[y][x] = gray.Y < 128
		}
	}
	return NewGrid(rows)
}
