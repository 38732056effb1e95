package scan

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// Decoder extracts QR code contents from uploaded images.
type Decoder struct {
	reader gozxing.Reader
}

// NewDecoder builds a QR image decoder.
func NewDecoder() *Decoder {
	return &Decoder{reader: qrcode.NewQRCodeReader()}
}

// Decode reads the image from r and returns the text of the QR code it
// contains. Unreadable images and images without a QR code map to
// httpx.ErrDecodeFailure.
func (d *Decoder) Decode(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %v: %w", err, httpx.ErrDecodeFailure)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarize image: %v: %w", err, httpx.ErrDecodeFailure)
	}
	result, err := d.reader.Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no readable code in image: %w", httpx.ErrDecodeFailure)
	}
	return result.GetText(), nil
}
