package report

// Report is the summary of one genkan build.
type Report struct {
	Version     int        `json:"version"`
	GeneratedAt string     `json:"generated_at"`
	Config      string     `json:"config"`
	Theme       string     `json:"theme"`
	Output      string     `json:"output"`
	BuildInfo   *BuildInfo `json:"build_info,omitempty"`
	Assets      []Asset    `json:"assets"`
	QR          *Asset     `json:"qr,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
	Stats       Stats      `json:"stats"`
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers  int   `json:"workers"`
	Duration int64 `json:"duration_ms"`
}

// Asset describes how one configured reference was embedded.
type Asset struct {
	Subject    string `json:"subject"`
	Kind       string `json:"kind"`    // "embedded", "remote", "local", "literal"
	Outcome    string `json:"outcome"` // "data-uri", "inline-svg", "fallback", ...
	InputSize  int64  `json:"input_size"`
	OutputSize int64  `json:"output_size"`
	Resized    bool   `json:"resized,omitempty"`
	Hash       string `json:"hash,omitempty"` // first 16 hex chars of xxhash64 of the embedded value
}

// Stats aggregates build metrics.
type Stats struct {
	TotalAssets      int   `json:"total_assets"`
	Embedded         int   `json:"embedded"`
	Fallbacks        int   `json:"fallbacks"`
	Dropped          int   `json:"dropped"`
	Resized          int   `json:"resized"`
	Duplicates       int   `json:"duplicates,omitempty"` // assets whose payload repeats an earlier one
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	PageBytes        int64 `json:"page_bytes"`
}

// SupportedVersion is the current report schema version.
const SupportedVersion = 1
