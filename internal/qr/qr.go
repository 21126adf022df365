// Package qr renders a URL as a scannable QR code data URI.
package qr

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/genkan/internal/encoder"
	qrcode "github.com/skip2/go-qrcode"
)

// Size is the fixed width and height of the rendered code in pixels.
// The largest QR version (177 modules plus quiet zone) still fits, so the
// encoder never has to grow the image.
const Size = 200

var (
	ErrEmptyURL = errors.New("qr: empty url")
	ErrEncode   = errors.New("qr: encode failed")
)

// Generate returns a base64 PNG data URI of a Size x Size code for url.
// Payloads beyond QR capacity fail with ErrEncode.
func Generate(url string) (string, error) {
	if url == "" {
		return "", ErrEmptyURL
	}

	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}

	data, err := encoder.Canonical.Encode(code.Image(Size))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return encoder.DataURI(encoder.Canonical.MIME(), data), nil
}
