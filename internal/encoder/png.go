package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes images to PNG using Go's standard library.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string { return "png" }
func (e *PNGEncoder) MIME() string   { return "image/png" }

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(64 * 1024) // icons and avatars are small

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
