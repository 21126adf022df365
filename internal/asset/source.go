// Package asset classifies configured asset references and resolves them
// into a form that can be embedded in a single HTML document.
package asset

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind tags the variant of a Source.
type Kind int

const (
	// Embedded is a data URI, passed through untouched.
	Embedded Kind = iota
	// Remote is an http://, https:// or protocol-relative // URL.
	Remote
	// Local is a path that exists on disk.
	Local
	// Literal is anything else, typically an emoji or plain text.
	Literal
)

func (k Kind) String() string {
	switch k {
	case Embedded:
		return "embedded"
	case Remote:
		return "remote"
	case Local:
		return "local"
	default:
		return "literal"
	}
}

// Source is a classified asset reference.
type Source struct {
	Kind Kind
	Ref  string // as configured
	Path string // resolved filesystem path, Local only
}

var remotePrefixes = []string{"http://", "https://", "//"}

// Classify tags ref. Relative paths are looked up under baseDir. Only the
// Local check touches the filesystem, and only with a stat.
func Classify(ref, baseDir string) Source {
	if strings.HasPrefix(ref, "data:") {
		return Source{Kind: Embedded, Ref: ref}
	}
	for _, p := range remotePrefixes {
		if strings.HasPrefix(ref, p) {
			return Source{Kind: Remote, Ref: ref}
		}
	}
	if ref != "" {
		path := ref
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return Source{Kind: Local, Ref: ref, Path: path}
		}
	}
	return Source{Kind: Literal, Ref: ref}
}
