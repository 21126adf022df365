//go:build ignore

// gen_fixtures writes a small local-only site for the E2E smoke test:
// a config referencing a JPEG avatar, a PNG dark avatar, an SVG icon and
// a favicon, all next to the config.
// Usage: go run gen_fixtures.go <output_dir> && genkan build -c <output_dir>/config.toml
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

const config = `[profile]
name = "Fixture"
bio = "Generated by **gen_fixtures**."

[profile.light]
avatar = "avatar.jpg"

[profile.dark]
avatar = "avatar-dark.png"

[[profile.social_links]]
icon = "icons/star.svg"
url = "https://example.com/star"
title = "Star"

[meta]
title = "Fixture"
page_url = "https://example.com/fixture"
favicon = "favicon.png"

[[links]]
title = "Oversized icon"
url = "https://example.com/big"
icon = "cards/card-1.png"

[[links]]
link_type = "space"
height = "12px"

[[links]]
title = "Emoji"
url = "https://example.com/emoji"
icon = "🌐"

[dark_mode]
mode = "auto"
`

const starSVG = `<?xml version="1.0" encoding="UTF-8"?>
<!-- star
     icon -->
<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48" viewBox="0 0 24 24">
  <path fill="#f5c518" stroke="none" style="stroke: #000; fill: #f5c518" d="M12 2l3 7h7l-5.5 4.5L18.5 21 12 16.5 5.5 21l2-7.5L2 9h7z"/>
</svg>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "cards"), 0o755)
	os.MkdirAll(filepath.Join(dir, "icons"), 0o755)

	// Avatar (JPEG, 1200x800) exceeds the 512px preset.
	writeJPEG(filepath.Join(dir, "avatar.jpg"), gradient(1200, 800))
	writeImage(filepath.Join(dir, "avatar-dark.png"), alphaGradient(300, 300))

	// Link icon (PNG, 600x450) exceeds the 128px preset.
	writeImage(filepath.Join(dir, "cards", "card-1.png"), solidWithBorder(600, 450, 60))

	// Favicon already within 64px, embedded unchanged.
	writeImage(filepath.Join(dir, "favicon.png"), solidWithBorder(32, 32, 120))

	writeFile(filepath.Join(dir, "icons", "star.svg"), starSVG)
	writeFile(filepath.Join(dir, "config.toml"), config)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created site fixture in %s\n", dir)
}

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

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		panic(err)
	}
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
