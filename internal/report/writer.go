package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/AnyUserName/genkan/internal/asset"
)

// Outcomes that count as embedded in Stats.
var embeddedOutcomes = map[string]bool{"data-uri": true, "inline-svg": true}

// New creates an empty report.
func New(configPath, themeName, output string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Config:      configPath,
		Theme:       themeName,
		Output:      output,
	}
}

// ComputeStats recalculates aggregate statistics from assets. PageBytes is
// left as set by the caller.
func (r *Report) ComputeStats() {
	s := Stats{PageBytes: r.Stats.PageBytes, TotalAssets: len(r.Assets)}
	seen := make(map[string]bool)
	for _, a := range r.Assets {
		switch {
		case embeddedOutcomes[a.Outcome]:
			s.Embedded++
		case a.Outcome == "fallback":
			s.Fallbacks++
		case a.Outcome == "dropped":
			s.Dropped++
		}
		if a.Resized {
			s.Resized++
		}
		s.TotalInputBytes += a.InputSize
		s.TotalOutputBytes += a.OutputSize
		if a.Hash != "" && embeddedOutcomes[a.Outcome] {
			if seen[a.Hash] {
				s.Duplicates++
			}
			seen[a.Hash] = true
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Add records a resolved asset. Empty references are not recorded.
func (r *Report) Add(res asset.Result) {
	if res.Outcome == asset.Skipped {
		return
	}
	r.Assets = append(r.Assets, FromResult(res))
}

// FromResult converts a resolver result to a report entry.
func FromResult(res asset.Result) Asset {
	a := Asset{
		Subject:    res.Subject,
		Kind:       res.Source.Kind.String(),
		Outcome:    res.Outcome.String(),
		InputSize:  int64(res.InputSize),
		OutputSize: int64(res.OutputSize),
		Resized:    res.Resized,
	}
	if res.Value != "" {
		a.Hash = ContentHash(res.Value, HashLen)
	}
	return a
}
