package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputFile is the name of the generated page.
const OutputFile = "index.html"

// Sink receives rendered output files.
type Sink interface {
	Write(name string, data []byte) error
}

// DirSink writes files under Dir, creating it when missing.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
