// Package theme locates and loads page themes. A theme is a directory
// holding template.html, style.css and an optional script.js.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Theme file names.
const (
	HTMLFile   = "template.html"
	CSSFile    = "style.css"
	ScriptFile = "script.js"
)

// Builtin is the theme shipped inside the binary.
const Builtin = "simple"

var (
	ErrThemeNotFound   = errors.New("theme not found")
	ErrIncompleteTheme = errors.New("theme missing required file")
	ErrInvalidName     = errors.New("invalid theme name")
)

//go:embed builtin/*
var builtin embed.FS

// Theme holds the raw template sources of one theme.
type Theme struct {
	Name string
	Dir  string // empty for the embedded theme
	HTML string
	CSS  string
	JS   string
}

// Embedded reports whether t was loaded from the binary.
func (t *Theme) Embedded() bool { return t.Dir == "" }

// Options controls where Find looks.
type Options struct {
	ThemesDir string // explicit --themes directory, searched first
	ConfigDir string // directory of the config file
	WorkDir   string // defaults to the process working directory
}

// Candidates returns the directories searched for name, in order.
func Candidates(name string, opts Options) []string {
	var dirs []string
	if opts.ThemesDir != "" {
		dirs = append(dirs, filepath.Join(opts.ThemesDir, name))
	}
	rel := []string{"themes", "./themes", "../themes"}
	bases := []string{opts.WorkDir}
	if opts.ConfigDir != "" {
		bases = append(bases, opts.ConfigDir)
	}
	seen := make(map[string]bool)
	for _, base := range bases {
		for _, r := range rel {
			d := filepath.Join(base, r, name)
			if !seen[d] {
				seen[d] = true
				dirs = append(dirs, d)
			}
		}
	}
	return dirs
}

// Find loads the first theme directory named name. When none exists and
// name is the built-in theme, the embedded copy is returned.
func Find(name string, opts Options) (*Theme, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	for _, dir := range Candidates(name, opts) {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		t, err := Load(os.DirFS(dir), name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
		t.Dir = dir
		return t, nil
	}

	if name == Builtin {
		return LoadBuiltin()
	}
	return nil, fmt.Errorf("%w: %q (searched %s)", ErrThemeNotFound, name,
		strings.Join(Candidates(name, opts), ", "))
}

// LoadBuiltin returns the embedded theme.
func LoadBuiltin() (*Theme, error) {
	sub, err := fs.Sub(builtin, "builtin/"+Builtin)
	if err != nil {
		return nil, err
	}
	return Load(sub, Builtin)
}

// Load reads a theme from the root of fsys.
func Load(fsys fs.FS, name string) (*Theme, error) {
	t := &Theme{Name: name}

	html, err := fs.ReadFile(fsys, HTMLFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIncompleteTheme, HTMLFile, err)
	}
	css, err := fs.ReadFile(fsys, CSSFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIncompleteTheme, CSSFile, err)
	}
	t.HTML, t.CSS = string(html), string(css)

	js, err := fs.ReadFile(fsys, ScriptFile)
	switch {
	case err == nil:
		t.JS = string(js)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", ScriptFile, err)
	}
	return t, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
