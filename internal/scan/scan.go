// Package scan decodes QR codes from rasters. It backs the encoder
// self-check and the scan command.
package scan

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	_ "golang.org/x/image/webp"
)

// MismatchError reports a raster that decoded to something other than the
// expected payload.
type MismatchError struct {
	Want, Got string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("decoded %q, want %q", e.Got, e.Want)
}

// File opens an image file and decodes a QR code from it.
func File(path string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("opening image file: %w", err)
	}
	return Image(img)
}

// Image decodes the QR code in img.
func Image(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("no QR code found in image: %w", err)
	}
	return result.GetText(), nil
}

// Verify decodes img and checks it carries want.
func Verify(img image.Image, want string) error {
	got, err := Image(img)
	if err != nil {
		return err
	}
	if got != want {
		return &MismatchError{Want: want, Got: got}
	}
	return nil
}
