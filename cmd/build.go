package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/AnyUserName/genkan/internal/pipeline"
	"github.com/AnyUserName/genkan/internal/report"
	"github.com/AnyUserName/genkan/internal/watch"
	"github.com/spf13/cobra"
)

var (
	buildFlags  siteFlags
	buildReport string
	buildWatch  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate index.html from a config and theme",
	Long: `Loads and validates the config, finds the theme, embeds every avatar,
icon and favicon, resolves typography, renders the QR code when
meta.page_url is set, and writes <output>/index.html.

Asset problems never fail the build: they are reported as warnings and
the original reference is kept or the asset is left out.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildFlags.register(buildCmd, true)
	buildCmd.Flags().StringVar(&buildReport, "report", "", "write a JSON build report to this file")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild when the config, theme or assets change")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, res, err := buildAndReport(ctx)
	if !buildWatch || s == nil {
		return err
	}
	if err != nil {
		logWarn("%v", err)
	}
	return watchAndRebuild(ctx, s, res, &buildFlags, func() (*site, *pipeline.Result) {
		s, res, err := buildAndReport(ctx)
		if err != nil {
			logWarn("rebuild failed: %v", err)
		}
		return s, res
	})
}

func buildAndReport(ctx context.Context) (*site, *pipeline.Result, error) {
	start := time.Now()
	s, res, err := buildSite(ctx, &buildFlags)
	if err != nil {
		return s, nil, err
	}
	if buildReport != "" {
		if err := report.WriteJSON(res.Report, buildReport); err != nil {
			return s, res, fmt.Errorf("write report: %w", err)
		}
	}
	printBuildReport(res.Report, time.Since(start))
	return s, res, nil
}

// rebuildFunc runs one rebuild. Either return value may be nil when the
// rebuild failed.
type rebuildFunc func() (*site, *pipeline.Result)

// watchAndRebuild blocks until ctx is done, calling rebuild after each
// batch of changes. Directories of newly referenced local assets are added
// to the watch after every rebuild.
func watchAndRebuild(ctx context.Context, s *site, res *pipeline.Result, f *siteFlags, rebuild rebuildFunc) error {
	absOutput, err := filepath.Abs(f.output)
	if err != nil {
		return err
	}
	w, err := watch.New(watchDirs(s, res), watch.Options{
		Ignore:  []string{absOutput},
		OnError: func(err error) { logWarn("watch: %v", err) },
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, d := range w.Dirs() {
		logVerbose("watching: %s", d)
	}
	fmt.Fprintln(os.Stderr, "[genkan] watching for changes, press Ctrl+C to stop")

	err = w.Run(ctx, func(changed []string) {
		logVerbose("changed: %v", changed)
		ns, nres := rebuild()
		if ns == nil {
			return
		}
		if err := w.Add(watchDirs(ns, nres)...); err != nil {
			logWarn("watch: %v", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func printBuildReport(r *report.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              genkan build complete               ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Theme:       %s\n", r.Theme)
	fmt.Printf("  Assets:      %d  (%d embedded, %d fallback, %d dropped)\n",
		s.TotalAssets, s.Embedded, s.Fallbacks, s.Dropped)
	if s.Resized > 0 {
		fmt.Printf("  Resized:     %d\n", s.Resized)
	}
	if s.Duplicates > 0 {
		fmt.Printf("  Duplicates:  %d  (same payload embedded more than once)\n", s.Duplicates)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Embedded:    %s\n", formatBytes(s.TotalOutputBytes))
	if r.QR != nil {
		fmt.Printf("  QR code:     %s\n", formatBytes(r.QR.OutputSize))
	}
	fmt.Printf("  Page size:   %s\n", formatBytes(s.PageBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", r.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest assets.
	var items []report.Asset
	for _, a := range r.Assets {
		if a.InputSize > 0 {
			items = append(items, a)
		}
	}
	if len(items) > 0 {
		sort.Slice(items, func(i, j int) bool {
			return items[i].InputSize > items[j].InputSize
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d heaviest (source → embedded):\n", n)
		for _, it := range items[:n] {
			saved := float64(0)
			if it.InputSize > 0 {
				saved = (1 - float64(it.OutputSize)/float64(it.InputSize)) * 100
			}
			fmt.Printf("    %-40s %8s → %8s  (−%.0f%%)\n",
				truncKey(it.Subject, 40),
				formatBytes(it.InputSize),
				formatBytes(it.OutputSize),
				saved,
			)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("  Warnings:    %d\n", len(r.Warnings))
		fmt.Println()
	}
	fmt.Printf("  Output:      %s\n", filepath.Join(r.Output, pipeline.OutputFile))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit+3:]
}
