package encoder

import (
	"image"
)

// Encoder encodes an image to a specific raster format.
type Encoder interface {
	// Format returns the output format name (e.g. "png").
	Format() string

	// MIME returns the media type written into data URIs.
	MIME() string

	// Encode converts the image to bytes.
	Encode(img image.Image) ([]byte, error)
}

// Canonical is the encoder used for every re-encoded raster (resized
// icons, QR codes). A lossless format avoids generational loss.
var Canonical Encoder = &PNGEncoder{}
