// Package pipeline turns a validated configuration and a theme into a
// rendered page: it embeds every asset, resolves typography, generates the
// QR code and runs both template passes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AnyUserName/genkan/internal/asset"
	"github.com/AnyUserName/genkan/internal/config"
	"github.com/AnyUserName/genkan/internal/diag"
	"github.com/AnyUserName/genkan/internal/fetch"
	"github.com/AnyUserName/genkan/internal/render"
	"github.com/AnyUserName/genkan/internal/report"
	"github.com/AnyUserName/genkan/internal/theme"
)

var ErrMissingInput = errors.New("pipeline: config and theme are required")

// Config holds all parameters for a build pipeline run.
type Config struct {
	Site     *config.Config
	Theme    *theme.Theme
	BaseDir  string        // relative asset paths resolve here
	Workers  int           // concurrent asset resolutions, 0 = GOMAXPROCS
	Fetcher  fetch.Fetcher // nil uses the default HTTP fetcher
	Renderer *render.Renderer
	Sink     Sink // nil skips writing
	Verbose  bool

	// ConfigPath and Output only label the report.
	ConfigPath string
	Output     string
}

// Result is the outcome of one run.
type Result struct {
	HTML        string
	CSS         string
	Context     render.Context
	Assets      []asset.Result
	Diagnostics diag.List
	Report      *report.Report
}

// Pipeline orchestrates page generation.
type Pipeline struct {
	cfg      Config
	resolver *asset.Resolver
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New()
	}
	return &Pipeline{
		cfg:      cfg,
		resolver: asset.NewResolver(cfg.Fetcher, cfg.BaseDir),
	}
}

// Run executes one generation. Only structural failures (templates, output)
// return an error; asset and QR problems end up in Result.Diagnostics.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	site, th := p.cfg.Site, p.cfg.Theme
	if site == nil || th == nil {
		return nil, ErrMissingInput
	}

	// Step 1: Embed assets.
	v := newViews(site)
	slots := scanAssets(site, site.Image.Targets(), v)
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[genkan] found %d asset references, %d workers\n", len(slots), p.cfg.Workers)
	}

	results := p.resolveAll(ctx, slots)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Assets: results}
	rep := report.New(p.cfg.ConfigPath, th.Name, p.cfg.Output)
	rep.BuildInfo = &report.BuildInfo{Workers: p.cfg.Workers}
	for i, r := range results {
		if !r.Omit() {
			slots[i].set(r.Value)
		}
		res.Diagnostics = append(res.Diagnostics, r.Diagnostics...)
		rep.Add(r)
	}

	// Step 2: Typography.
	typo := make(map[config.Role]config.ResolvedTypography, len(config.Roles))
	for _, role := range config.Roles {
		typo[role] = site.Theme.ResolveRole(role)
	}

	// Step 3: QR code.
	qrData := generateQR(site.Meta.PageURL, &res.Diagnostics)
	if qrData != "" {
		rep.QR = &report.Asset{
			Subject:    "meta.page_url",
			Kind:       "generated",
			Outcome:    asset.DataURI.String(),
			OutputSize: int64(len(qrData)),
			Hash:       report.ContentHash(qrData, report.HashLen),
		}
	}

	// Step 4: Render.
	cssCtx := cssContext(v, site.Theme, typo)
	css, err := p.cfg.Renderer.RenderCSS(theme.CSSFile, th.CSS, cssCtx)
	if err != nil {
		return nil, err
	}

	bio, err := p.cfg.Renderer.Bio(site.Profile.Bio)
	if err != nil {
		res.Diagnostics.Warn("profile.bio", "markdown failed, bio omitted", err)
	}

	htmlCtx := render.Context{}
	for k, val := range cssCtx {
		htmlCtx[k] = val
	}
	htmlCtx[KeyMeta] = v.meta
	htmlCtx[KeyLinks] = v.links
	htmlCtx[KeyDarkMode] = site.DarkMode.Mode
	htmlCtx[KeyBioHTML] = bio
	htmlCtx[KeyCSS] = css
	htmlCtx[KeyJS] = th.JS
	if qrData != "" {
		htmlCtx[KeyQRCode] = qrData
	}

	page, err := p.cfg.Renderer.RenderHTML(theme.HTMLFile, th.HTML, htmlCtx)
	if err != nil {
		return nil, err
	}

	// Step 5: Write.
	if p.cfg.Sink != nil {
		if err := p.cfg.Sink.Write(OutputFile, []byte(page)); err != nil {
			return nil, err
		}
	}

	for _, d := range res.Diagnostics.Warnings() {
		rep.Warnings = append(rep.Warnings, d.String())
	}
	rep.Stats.PageBytes = int64(len(page))
	rep.BuildInfo.Duration = time.Since(start).Milliseconds()
	rep.ComputeStats()

	res.HTML, res.CSS, res.Context, res.Report = page, css, htmlCtx, rep
	return res, nil
}
