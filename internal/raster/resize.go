// Package raster downscales raster images to a maximum dimension.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/AnyUserName/genkan/internal/encoder"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrDecode = errors.New("decode image")
	ErrEncode = errors.New("encode image")
)

// Result describes the outcome of Fit.
type Result struct {
	Data          []byte
	Resized       bool
	Width, Height int // output dimensions
}

// Fit scales data so neither side exceeds target, preserving aspect ratio.
// Images already within bounds come back byte-identical with Resized false.
// Resized output is always encoded with encoder.Canonical.
func Fit(data []byte, target int) (Result, error) {
	if target <= 0 {
		return Result{}, fmt.Errorf("invalid target size %d", target)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= target && cfg.Height <= target {
		return Result{Data: data, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	w, h := Dimensions(cfg.Width, cfg.Height, target)
	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	out, err := encoder.Canonical.Encode(resized)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return Result{Data: out, Resized: true, Width: w, Height: h}, nil
}

// Dimensions returns the target size for a w x h image whose long edge
// becomes target. The short edge is rounded down, never below 1.
func Dimensions(w, h, target int) (int, int) {
	if w >= h {
		nh := h * target / w
		if nh < 1 {
			nh = 1
		}
		return target, nh
	}
	nw := w * target / h
	if nw < 1 {
		nw = 1
	}
	return nw, target
}
