package asset

import (
	"context"
	"os"

	"github.com/AnyUserName/genkan/internal/diag"
	"github.com/AnyUserName/genkan/internal/encoder"
	"github.com/AnyUserName/genkan/internal/fetch"
	"github.com/AnyUserName/genkan/internal/raster"
	"github.com/AnyUserName/genkan/internal/svg"
)

// Mode selects embedding rules for the slot an asset fills.
type Mode int

const (
	// Icon slots accept inline SVG markup.
	Icon Mode = iota
	// Favicon slots need a URL: SVG becomes a data URI, ICO is never
	// resized, and a missing local file drops the favicon.
	Favicon
)

// Outcome summarizes what Resolve did with a reference.
type Outcome int

const (
	Skipped     Outcome = iota // empty reference
	Passthrough                // data URI or literal, unchanged
	DataURI                    // raster or favicon embedded as base64
	Inline                     // recolored SVG markup
	Fallback                   // failure; original reference kept
	Dropped                    // failure; asset omitted
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Passthrough:
		return "passthrough"
	case DataURI:
		return "data-uri"
	case Inline:
		return "inline-svg"
	case Fallback:
		return "fallback"
	default:
		return "dropped"
	}
}

// Request describes one asset slot.
type Request struct {
	Subject string // human-facing field name used in diagnostics
	Ref     string
	Target  int // max pixel dimension, 0 = do not resize
	Mode    Mode
}

// Result is the resolution of one Request. Value is empty when Outcome is
// Skipped or Dropped, in which case the caller must omit the asset.
type Result struct {
	Subject     string
	Value       string
	Source      Source
	Outcome     Outcome
	InputSize   int
	OutputSize  int
	Resized     bool
	Diagnostics diag.List
}

// Omit reports whether the slot should be left out of the rendering context.
func (r Result) Omit() bool {
	return r.Outcome == Skipped || r.Outcome == Dropped
}

// Resolver turns references into embeddable strings. It holds no mutable
// state, so one Resolver may serve concurrent calls.
type Resolver struct {
	fetcher fetch.Fetcher
	baseDir string
}

// NewResolver creates a Resolver. Relative local paths resolve under baseDir.
func NewResolver(f fetch.Fetcher, baseDir string) *Resolver {
	if f == nil {
		f = fetch.New(nil)
	}
	return &Resolver{fetcher: f, baseDir: baseDir}
}

// Resolve never fails: every problem becomes a diagnostic and the result
// degrades to the original reference or to an omitted asset.
func (r *Resolver) Resolve(ctx context.Context, req Request) Result {
	res := Result{Subject: req.Subject}
	if req.Ref == "" {
		res.Outcome = Skipped
		return res
	}

	src := Classify(req.Ref, r.baseDir)
	res.Source = src

	switch src.Kind {
	case Embedded:
		res.Outcome, res.Value = Passthrough, src.Ref
		return res

	case Remote:
		data, err := r.fetcher.Fetch(ctx, src.Ref)
		if err != nil {
			res.Diagnostics.Warn(req.Subject, "download failed, keeping original URL", err)
			res.Outcome, res.Value = Fallback, src.Ref
			return res
		}
		isSVG := encoder.IsSVGRef(src.Ref) || encoder.IsSVGData(data)
		r.embed(&res, req, data, src.Ref, isSVG)
		if res.Outcome != Dropped {
			res.Diagnostics.Infof(req.Subject, "embedded remote asset %s", src.Ref)
		}
		return res

	case Local:
		data, err := os.ReadFile(src.Path) // #nosec G304 -- path comes from the user's own config
		if err != nil {
			res.Diagnostics.Warn(req.Subject, "read failed, keeping original reference", err)
			res.Outcome, res.Value = Fallback, src.Ref
			return res
		}
		r.embed(&res, req, data, src.Path, encoder.IsSVGRef(src.Path))
		return res

	default:
		if req.Mode == Favicon {
			res.Diagnostics.Warn(req.Subject, "favicon file not found: "+src.Ref, nil)
			res.Outcome = Dropped
			return res
		}
		res.Outcome, res.Value = Passthrough, src.Ref
		return res
	}
}

func (r *Resolver) embed(res *Result, req Request, data []byte, ref string, isSVG bool) {
	res.InputSize = len(data)

	if isSVG {
		if req.Mode == Favicon {
			r.dataURI(res, encoder.MIMESVG, data)
			return
		}
		markup, err := svg.Recolor(data)
		if err != nil {
			res.Diagnostics.Warn(req.Subject, "svg could not be processed, omitting", err)
			res.Outcome = Dropped
			return
		}
		res.Outcome, res.Value, res.OutputSize = Inline, markup, len(markup)
		return
	}

	ext := encoder.Ext(ref)
	target := req.Target
	if req.Mode == Favicon && ext == ".ico" {
		target = 0
	}

	payload, resized := data, false
	if target > 0 {
		fit, err := raster.Fit(data, target)
		switch {
		case err != nil:
			res.Diagnostics.Warn(req.Subject, "resize failed, embedding original", err)
		case fit.Resized:
			payload, resized = fit.Data, true
			res.Diagnostics.Infof(req.Subject, "compressed from %d to %d bytes (target size: %dpx)",
				len(data), len(fit.Data), target)
		}
	}
	res.Resized = resized

	var mime string
	switch {
	case resized:
		mime = encoder.Canonical.MIME()
	case req.Mode == Favicon:
		m, ok := encoder.MIMEFromExt(ext)
		if !ok {
			res.Diagnostics.Warn(req.Subject, "unknown favicon file type, defaulting to "+encoder.MIMEICO, nil)
			m = encoder.MIMEICO
		}
		mime = m
	default:
		mime = encoder.MIMEFromRef(ref)
	}
	r.dataURI(res, mime, payload)
}

func (r *Resolver) dataURI(res *Result, mime string, data []byte) {
	res.Value = encoder.DataURI(mime, data)
	res.Outcome = DataURI
	res.OutputSize = len(data)
}
