package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestFitDownscales(t *testing.T) {
	tests := []struct {
		name         string
		w, h, target int
		wantW, wantH int
	}{
		{"landscape", 1000, 500, 200, 200, 100},
		{"portrait", 500, 1000, 200, 100, 200},
		{"square", 300, 300, 128, 128, 128},
		{"one side over", 100, 300, 150, 50, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Fit(encodePNG(t, gradient(tt.w, tt.h)), tt.target)
			if err != nil {
				t.Fatalf("fit: %v", err)
			}
			if !res.Resized {
				t.Fatal("expected resize")
			}
			cfg, err := png.DecodeConfig(bytes.NewReader(res.Data))
			if err != nil {
				t.Fatalf("output is not png: %v", err)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
			if res.Width != tt.wantW || res.Height != tt.wantH {
				t.Errorf("reported dimensions: got %dx%d", res.Width, res.Height)
			}
		})
	}
}

func TestFitWithinBoundsIsIdentity(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gradient(120, 80), &jpeg.Options{Quality: 85}); err != nil {
		t.Fatal(err)
	}
	in := buf.Bytes()

	for _, target := range []int{120, 128, 512} {
		res, err := Fit(in, target)
		if err != nil {
			t.Fatalf("fit(%d): %v", target, err)
		}
		if res.Resized {
			t.Errorf("fit(%d): unexpected resize", target)
		}
		if !bytes.Equal(res.Data, in) {
			t.Errorf("fit(%d): bytes changed", target)
		}
	}
}

func TestFitDecodeError(t *testing.T) {
	_, err := Fit([]byte("definitely not an image"), 64)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("error: got %v, want ErrDecode", err)
	}
}

func TestDimensionsNeverZero(t *testing.T) {
	w, h := Dimensions(4000, 3, 100)
	if w != 100 || h != 1 {
		t.Errorf("got %dx%d, want 100x1", w, h)
	}
}
