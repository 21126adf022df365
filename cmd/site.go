package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/genkan/internal/asset"
	"github.com/AnyUserName/genkan/internal/config"
	"github.com/AnyUserName/genkan/internal/diag"
	"github.com/AnyUserName/genkan/internal/pipeline"
	"github.com/AnyUserName/genkan/internal/theme"
	"github.com/spf13/cobra"
)

// siteFlags are shared by build, validate and serve.
type siteFlags struct {
	config  string
	output  string
	themes  string
	workers int
}

func (f *siteFlags) register(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "config.toml", "config file (.toml, .yaml)")
	cmd.Flags().StringVar(&f.themes, "themes", "", "extra themes directory, searched first")
	if withOutput {
		cmd.Flags().StringVarP(&f.output, "output", "o", "output", "output directory")
		cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "parallel asset workers (0 = GOMAXPROCS)")
	}
}

// site is a loaded and validated configuration with its theme.
type site struct {
	path  string // absolute config path
	dir   string // config directory, base for relative assets
	cfg   *config.Config
	theme *theme.Theme
	warns diag.List
}

func loadSite(f *siteFlags) (*site, error) {
	absCfg, err := filepath.Abs(f.config)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(absCfg)
	if err != nil {
		return nil, err
	}
	warns, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(absCfg)
	th, err := theme.Find(cfg.Theme.Name, theme.Options{ThemesDir: f.themes, ConfigDir: dir})
	if err != nil {
		return nil, err
	}

	logVerbose("config:  %s", absCfg)
	if th.Embedded() {
		logVerbose("theme:   %s (built-in)", th.Name)
	} else {
		logVerbose("theme:   %s (%s)", th.Name, th.Dir)
	}
	return &site{path: absCfg, dir: dir, cfg: cfg, theme: th, warns: warns}, nil
}

// buildSite loads, renders and writes the page once. The site is returned
// whenever loading succeeded, even if rendering failed.
func buildSite(ctx context.Context, f *siteFlags) (*site, *pipeline.Result, error) {
	s, err := loadSite(f)
	if err != nil {
		return nil, nil, err
	}
	absOutput, err := filepath.Abs(f.output)
	if err != nil {
		return s, nil, fmt.Errorf("resolve output path: %w", err)
	}
	logVerbose("output:  %s", absOutput)

	p := pipeline.New(pipeline.Config{
		Site:       s.cfg,
		Theme:      s.theme,
		BaseDir:    s.dir,
		Workers:    f.workers,
		Sink:       pipeline.DirSink{Dir: absOutput},
		Verbose:    verbose,
		ConfigPath: s.path,
		Output:     absOutput,
	})
	res, err := p.Run(ctx)
	if err != nil {
		return s, nil, fmt.Errorf("pipeline: %w", err)
	}
	res.Diagnostics = append(s.warns, res.Diagnostics...)
	printDiagnostics(res.Diagnostics)
	return s, res, nil
}

// printDiagnostics writes warnings always and info entries under --verbose.
func printDiagnostics(list diag.List) {
	for _, d := range list {
		switch d.Severity {
		case diag.Warning:
			logWarn("%s", d)
		default:
			logVerbose("%s", d)
		}
	}
}

// watchDirs lists the directories whose changes trigger a rebuild: the
// config directory, the theme directory and every directory holding a local
// asset of the last build. res may be nil.
func watchDirs(s *site, res *pipeline.Result) []string {
	dirs := []string{s.dir}
	if !s.theme.Embedded() {
		dirs = append(dirs, s.theme.Dir)
	}
	if res == nil {
		return dirs
	}
	seen := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		seen[d] = true
	}
	for _, a := range res.Assets {
		if a.Source.Kind != asset.Local {
			continue
		}
		d := filepath.Dir(a.Source.Path)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}
