// Package scaffold creates a starter genkan project.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains the starter files. They use Go text/template syntax
// and carry a .tmpl suffix.
//
//go:embed templates
var Templates embed.FS

// ConfigFile is the name of the generated config.
const ConfigFile = "config.toml"

var ErrExists = errors.New("already exists")

type data struct {
	Name string
	Slug string
}

// Init writes a starter config into dir and creates themes/ and output/
// beside it. An existing config is never overwritten. It returns the paths
// it created.
func Init(dir, name string) ([]string, error) {
	if name == "" {
		name = "Your Name"
	}
	cfgPath := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(cfgPath); err == nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, ErrExists)
	}

	tmpl, err := template.ParseFS(Templates, "templates/"+ConfigFile+".tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse starter config: %w", err)
	}

	var created []string
	for _, sub := range []string{"themes", "output"} {
		p := filepath.Join(dir, sub)
		if err := os.MkdirAll(p, 0o755); err != nil {
			return created, err
		}
		created = append(created, p)
	}

	f, err := os.OpenFile(cfgPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return created, fmt.Errorf("create %s: %w", cfgPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data{Name: name, Slug: slug(name)}); err != nil {
		return created, fmt.Errorf("write %s: %w", cfgPath, err)
	}
	return append(created, cfgPath), nil
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
