package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/AnyUserName/genkan/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <report.json>",
	Short: "Display statistics from a build report written with --report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}
	if r.Version != report.SupportedVersion {
		return fmt.Errorf("unsupported report version: %d", r.Version)
	}

	printStats(&r)
	return nil
}

func printStats(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Config:           %s\n", r.Config)
	fmt.Printf("  Theme:            %s\n", r.Theme)
	if r.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", r.BuildInfo.Workers)
		fmt.Printf("  Duration:         %d ms\n", r.BuildInfo.Duration)
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Embedded size:    %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Page size:        %s\n", formatBytes(s.PageBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Per-outcome breakdown.
	outcomes := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range r.Assets {
		o := outcomes[a.Outcome]
		o.count++
		o.bytes += a.OutputSize
		outcomes[a.Outcome] = o
	}
	names := make([]string, 0, len(outcomes))
	for name := range outcomes {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("  Outcome breakdown:")
	for _, name := range names {
		o := outcomes[name]
		fmt.Printf("    %-12s  %4d assets  %s\n", name, o.count, formatBytes(o.bytes))
	}
	fmt.Println()

	// Per-source breakdown.
	kinds := map[string]int{}
	for _, a := range r.Assets {
		kinds[a.Kind]++
	}
	fmt.Println("  Source breakdown:")
	for _, k := range []string{"remote", "local", "embedded", "literal"} {
		if n, ok := kinds[k]; ok {
			fmt.Printf("    %-8s  %4d\n", k, n)
		}
	}
	fmt.Println()

	if s.Duplicates > 0 {
		fmt.Printf("  Duplicate payloads: %d (consider reusing one icon)\n", s.Duplicates)
	}
	if len(r.Warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("    • %s\n", w)
		}
		fmt.Println()
	}
}
