package asset

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/genkan/internal/fetch"
	"github.com/AnyUserName/genkan/internal/svg"
)

type failingFetcher struct{ calls int }

func (f *failingFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.calls++
	return nil, fetch.ErrFetchFailed
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) (string, []byte) {
	t.Helper()
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		t.Fatalf("not a data URI: %.40q", uri)
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		t.Fatalf("not base64: %.40q", uri)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	return mime, data
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "me.png", []byte("x"))

	tests := []struct {
		ref  string
		want Kind
	}{
		{"data:image/png;base64,AAAA", Embedded},
		{"https://example.com/a.png", Remote},
		{"http://example.com/a.png", Remote},
		{"//cdn.example.com/a.png", Remote},
		{"me.png", Local},
		{filepath.Join(dir, "me.png"), Local},
		{"missing.png", Literal},
		{"🌐", Literal},
		{".", Literal},
	}
	for _, tt := range tests {
		if got := Classify(tt.ref, dir); got.Kind != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.ref, got.Kind, tt.want)
		}
	}
}

func TestResolvePassthrough(t *testing.T) {
	f := &failingFetcher{}
	r := NewResolver(f, t.TempDir())

	for _, ref := range []string{"data:image/gif;base64,R0lGOD", "🌐", "just text"} {
		res := r.Resolve(context.Background(), Request{Subject: "s", Ref: ref, Target: 64})
		if res.Value != ref || res.Outcome != Passthrough {
			t.Errorf("Resolve(%q) = %q (%s), want identity", ref, res.Value, res.Outcome)
		}
		if len(res.Diagnostics) != 0 {
			t.Errorf("Resolve(%q): unexpected diagnostics %v", ref, res.Diagnostics)
		}
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times", f.calls)
	}

	if res := r.Resolve(context.Background(), Request{Ref: ""}); !res.Omit() || res.Outcome != Skipped {
		t.Errorf("empty ref: got %s", res.Outcome)
	}
}

func TestResolveRemoteFailureKeepsURL(t *testing.T) {
	r := NewResolver(&failingFetcher{}, "")
	url := "https://cdn.example.com/icon.png"

	res := r.Resolve(context.Background(), Request{Subject: `links["GitHub"].icon`, Ref: url, Target: 128})
	if res.Value != url || res.Outcome != Fallback {
		t.Fatalf("got %q (%s), want original URL", res.Value, res.Outcome)
	}
	w := res.Diagnostics.Warnings()
	if len(w) != 1 || w[0].Subject != `links["GitHub"].icon` || !errors.Is(w[0].Cause, fetch.ErrFetchFailed) {
		t.Errorf("diagnostics: %v", res.Diagnostics)
	}
}

func TestResolveRemoteRasterAndSVG(t *testing.T) {
	big := pngBytes(t, 400, 200)
	svgDoc := []byte(`<?xml version="1.0"?><svg width="24" height="24"><path fill="#000"/></svg>`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/big.jpg":
			w.Write(big) // extension lies; resized output is png anyway
		case "/github":
			w.Write(svgDoc)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := NewResolver(fetch.New(srv.Client()), "")

	res := r.Resolve(context.Background(), Request{Subject: "avatar", Ref: srv.URL + "/big.jpg", Target: 100})
	if res.Outcome != DataURI || !res.Resized {
		t.Fatalf("outcome: %s resized=%v diags=%v", res.Outcome, res.Resized, res.Diagnostics)
	}
	mime, data := decodeDataURI(t, res.Value)
	if mime != "image/png" {
		t.Errorf("mime: got %q, want image/png", mime)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("resized: %v %dx%d", err, cfg.Width, cfg.Height)
	}

	res = r.Resolve(context.Background(), Request{Subject: "icon", Ref: srv.URL + "/github", Target: 128})
	if res.Outcome != Inline || !svg.IsInline(res.Value) {
		t.Fatalf("svg outcome: %s %q", res.Outcome, res.Value)
	}
	if !strings.Contains(res.Value, `fill="currentColor"`) || strings.Contains(res.Value, "<?xml") {
		t.Errorf("svg not rewritten: %q", res.Value)
	}
}

func TestResolveLocal(t *testing.T) {
	dir := t.TempDir()
	small := pngBytes(t, 32, 32)
	writeFile(t, dir, "small.jpg", small)
	writeFile(t, dir, "big.png", pngBytes(t, 300, 600))
	writeFile(t, dir, "broken.gif", []byte("GIF89a-but-not-really"))
	writeFile(t, dir, "logo.svg", []byte(`<svg stroke="red"/>`))
	writeFile(t, dir, "bad.svg", []byte{'<', 's', 'v', 'g', 0xff})

	r := NewResolver(&failingFetcher{}, dir)
	ctx := context.Background()

	// Within bounds: byte-identical payload, MIME from extension.
	res := r.Resolve(ctx, Request{Ref: "small.jpg", Target: 64})
	mime, data := decodeDataURI(t, res.Value)
	if mime != "image/jpeg" || !bytes.Equal(data, small) || res.Resized {
		t.Errorf("small: mime=%q identical=%v resized=%v", mime, bytes.Equal(data, small), res.Resized)
	}

	res = r.Resolve(ctx, Request{Ref: "big.png", Target: 128})
	mime, data = decodeDataURI(t, res.Value)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if mime != "image/png" || err != nil || cfg.Width != 64 || cfg.Height != 128 {
		t.Errorf("big: mime=%q err=%v %dx%d", mime, err, cfg.Width, cfg.Height)
	}

	// Undecodable raster: warning, original bytes kept.
	res = r.Resolve(ctx, Request{Subject: "links[index 2].icon", Ref: "broken.gif", Target: 64})
	mime, data = decodeDataURI(t, res.Value)
	if mime != "image/gif" || string(data) != "GIF89a-but-not-really" {
		t.Errorf("broken: mime=%q data=%q", mime, data)
	}
	if len(res.Diagnostics.Warnings()) != 1 {
		t.Errorf("broken: diagnostics %v", res.Diagnostics)
	}

	res = r.Resolve(ctx, Request{Ref: "logo.svg", Target: 64})
	if res.Outcome != Inline || svg.Markup(res.Value) != `<svg stroke="currentColor"/>` {
		t.Errorf("svg: %s %q", res.Outcome, res.Value)
	}

	res = r.Resolve(ctx, Request{Subject: "profile.social_links[0].icon", Ref: "bad.svg"})
	if !res.Omit() || res.Outcome != Dropped || res.Value != "" {
		t.Errorf("bad svg: %s %q", res.Outcome, res.Value)
	}
}

func TestResolveFavicon(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "favicon.ico", []byte{0, 0, 1, 0, 1, 0})
	writeFile(t, dir, "favicon.svg", []byte(`<svg fill="red"/>`))
	writeFile(t, dir, "favicon.png", pngBytes(t, 256, 256))
	writeFile(t, dir, "favicon.dat", pngBytes(t, 16, 16))

	r := NewResolver(&failingFetcher{}, dir)
	ctx := context.Background()
	fav := func(ref string) Result {
		return r.Resolve(ctx, Request{Subject: "meta.favicon", Ref: ref, Target: 64, Mode: Favicon})
	}

	res := fav("favicon.ico")
	if mime, data := decodeDataURI(t, res.Value); mime != "image/x-icon" || len(data) != 6 {
		t.Errorf("ico: %q %d", mime, len(data))
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("ico should not be resized: %v", res.Diagnostics)
	}

	res = fav("favicon.svg")
	if mime, data := decodeDataURI(t, res.Value); mime != "image/svg+xml" || string(data) != `<svg fill="red"/>` {
		t.Errorf("svg favicon: %q %q", mime, data)
	}

	res = fav("favicon.png")
	mime, data := decodeDataURI(t, res.Value)
	cfg, _ := png.DecodeConfig(bytes.NewReader(data))
	if mime != "image/png" || cfg.Width != 64 {
		t.Errorf("png favicon: %q width %d", mime, cfg.Width)
	}

	res = fav("favicon.dat")
	if mime, _ := decodeDataURI(t, res.Value); mime != "image/x-icon" {
		t.Errorf("unknown ext: got %q", mime)
	}
	if len(res.Diagnostics.Warnings()) != 1 {
		t.Errorf("unknown ext: want one warning, got %v", res.Diagnostics)
	}

	res = fav("nope.ico")
	if !res.Omit() || len(res.Diagnostics.Warnings()) != 1 {
		t.Errorf("missing favicon: %s %v", res.Outcome, res.Diagnostics)
	}
}
