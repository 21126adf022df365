package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/genkan/internal/asset"
	"github.com/AnyUserName/genkan/internal/config"
	"github.com/AnyUserName/genkan/internal/diag"
	"github.com/AnyUserName/genkan/internal/fetch"
	"github.com/AnyUserName/genkan/internal/render"
	"github.com/AnyUserName/genkan/internal/svg"
	"github.com/AnyUserName/genkan/internal/theme"
)

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, fetch.ErrFetchFailed
}

type memSink map[string][]byte

func (m memSink) Write(name string, data []byte) error {
	m[name] = data
	return nil
}

func strp(s string) *string { return &s }

func siteConfig() *config.Config {
	cfg := config.Default()
	cfg.Profile.Name = "Jane"
	cfg.Links = []config.Link{{
		Title:    strp("My Website"),
		URL:      strp("https://example.com"),
		LinkType: config.LinkBlock,
	}}
	return cfg
}

func builtinTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := theme.LoadBuiltin()
	if err != nil {
		t.Fatalf("builtin theme: %v", err)
	}
	return th
}

func run(t *testing.T, cfg Config) *Result {
	t.Helper()
	if cfg.Theme == nil {
		cfg.Theme = builtinTheme(t)
	}
	if cfg.Fetcher == nil {
		cfg.Fetcher = failingFetcher{}
	}
	res, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestRunSingleLink(t *testing.T) {
	sink := memSink{}
	res := run(t, Config{Site: siteConfig(), Sink: sink})

	links, ok := res.Context[KeyLinks].([]LinkView)
	if !ok || len(links) != 1 {
		t.Fatalf("links: %#v", res.Context[KeyLinks])
	}
	if links[0].Title != "My Website" || links[0].URL != "https://example.com" || links[0].Icon != "" {
		t.Errorf("link view: %+v", links[0])
	}
	if len(res.Assets) != 0 {
		t.Errorf("no assets expected, got %d", len(res.Assets))
	}
	if _, ok := res.Context[KeyQRCode]; ok {
		t.Error("qr_code_data should be absent without page_url")
	}

	page := string(sink[OutputFile])
	if page == "" || page != res.HTML {
		t.Fatal("page not written to sink")
	}
	for _, want := range []string{"My Website", `href="https://example.com"`, "--header-size: 2rem", `data-mode="disable"`} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRunTypographyContext(t *testing.T) {
	cfg := siteConfig()
	cfg.Theme.Light.HeaderColor = "#abc"
	res := run(t, Config{Site: cfg})

	for _, role := range config.Roles {
		if _, ok := res.Context[render.TypographyKey(role)].(config.ResolvedTypography); !ok {
			t.Errorf("missing typography for %s", role)
		}
	}
	h := res.Context[render.TypographyKey(config.RoleHeader)].(config.ResolvedTypography)
	if h.Color != "#abc" {
		t.Errorf("header color: %q", h.Color)
	}
}

func TestRunQRCode(t *testing.T) {
	cfg := siteConfig()
	cfg.Meta.PageURL = strp("https://example.com/jane")
	res := run(t, Config{Site: cfg})

	data, ok := res.Context[KeyQRCode].(string)
	if !ok || !strings.HasPrefix(data, "data:image/png;base64,") {
		t.Fatalf("qr_code_data: %.40v", res.Context[KeyQRCode])
	}
	if res.Report.QR == nil {
		t.Error("report missing qr entry")
	}

	cfg.Meta.PageURL = strp("https://example.com/" + strings.Repeat("x", 5000))
	res = run(t, Config{Site: cfg})
	if _, ok := res.Context[KeyQRCode]; ok {
		t.Error("oversized page_url should omit qr_code_data")
	}
	if w := res.Diagnostics.Warnings(); len(w) != 1 || w[0].Subject != "meta.page_url" {
		t.Errorf("warnings: %v", w)
	}
}

func TestRunAssets(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	img := image.NewNRGBA(image.Rect(0, 0, 600, 300))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	write("avatar.png", buf.Bytes())
	write("gh.svg", []byte(`<?xml version="1.0"?><svg width="24" height="24"><path fill="#333"/></svg>`))

	cfg := siteConfig()
	cfg.Profile.Light.Avatar = "avatar.png"
	cfg.Profile.SocialLinks = []config.SocialLink{
		{Icon: "gh.svg", URL: "https://github.com/jane"},
		{Icon: "https://cdn.example.com/x.png", URL: "https://x.com/jane"},
	}
	cfg.Links = append(cfg.Links,
		config.Link{Title: strp("Blog"), URL: strp("https://blog.example.com"), Icon: strp("🌐"), LinkType: config.LinkBlock},
		config.Link{LinkType: config.LinkSpace, Icon: strp("data:image/png;base64,AAAA")},
	)
	cfg.Meta.Favicon = strp("missing.ico")

	res := run(t, Config{Site: cfg, BaseDir: dir, Workers: 2})

	prof := res.Context[KeyProfile].(ProfileView)
	if !strings.HasPrefix(prof.Avatar, "data:image/png;base64,") {
		t.Errorf("avatar: %.40q", prof.Avatar)
	}
	if !svg.IsInline(prof.SocialLinks[0].Icon) || !strings.Contains(prof.SocialLinks[0].Icon, `fill="currentColor"`) {
		t.Errorf("svg icon: %q", prof.SocialLinks[0].Icon)
	}
	if prof.SocialLinks[1].Icon != "https://cdn.example.com/x.png" {
		t.Errorf("fallback icon: %q", prof.SocialLinks[1].Icon)
	}

	links := res.Context[KeyLinks].([]LinkView)
	if links[1].Icon != "🌐" || links[2].Icon != "data:image/png;base64,AAAA" {
		t.Errorf("passthrough icons: %q %q", links[1].Icon, links[2].Icon)
	}
	if meta := res.Context[KeyMeta].(MetaView); meta.Favicon != "" {
		t.Errorf("missing favicon should be dropped, got %q", meta.Favicon)
	}

	var subjects []string
	for _, d := range res.Diagnostics.Warnings() {
		subjects = append(subjects, d.Subject)
	}
	want := []string{"profile.social_links[1].icon", "meta.favicon"}
	if strings.Join(subjects, ",") != strings.Join(want, ",") {
		t.Errorf("warning subjects: got %v, want %v", subjects, want)
	}

	var resized bool
	for _, d := range res.Diagnostics {
		if d.Severity == diag.Info && d.Subject == "profile.light.avatar" {
			resized = true
		}
	}
	if !resized {
		t.Error("expected resize info for avatar")
	}
	if res.Assets[0].Outcome != asset.DataURI || !res.Assets[0].Resized {
		t.Errorf("avatar result: %+v", res.Assets[0].Outcome)
	}
	if s := res.Report.Stats; s.Embedded != 2 || s.Fallbacks != 1 || s.Dropped != 1 {
		t.Errorf("report stats: %+v", s)
	}
}

func TestRunStructuralErrors(t *testing.T) {
	if _, err := New(Config{}).Run(context.Background()); !errors.Is(err, ErrMissingInput) {
		t.Errorf("missing input: got %v", err)
	}

	broken := &theme.Theme{Name: "broken", HTML: "{{if}", CSS: "body{}"}
	_, err := New(Config{Site: siteConfig(), Theme: broken}).Run(context.Background())
	if !errors.Is(err, render.ErrTemplateParse) {
		t.Errorf("template error: got %v", err)
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := (DirSink{Dir: dir}).Write(OutputFile, []byte("<html>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, OutputFile))
	if err != nil || string(data) != "<html>" {
		t.Errorf("read back: %q, %v", data, err)
	}
}
