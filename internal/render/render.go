// Package render evaluates theme templates against a rendering context.
// Stylesheets go through text/template, documents through html/template.
package render

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

var (
	ErrTemplateParse = errors.New("template parse error")
	ErrTemplateExec  = errors.New("template render error")
)

// Context maps template keys to values.
type Context map[string]any

// Renderer renders theme sources. Templates are parsed on every call since
// each build may see edited theme files.
type Renderer struct {
	markdown *Markdown
}

func New() *Renderer {
	return &Renderer{markdown: NewMarkdown()}
}

// Bio renders profile markdown for the bio_html key.
func (r *Renderer) Bio(src string) (htmltemplate.HTML, error) {
	return r.markdown.Render(src)
}

// RenderCSS evaluates a stylesheet template without escaping.
func (r *Renderer) RenderCSS(name, src string, ctx Context) (string, error) {
	t, err := texttemplate.New(name).Funcs(textFuncs()).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateExec, name, err)
	}
	return buf.String(), nil
}

// RenderHTML evaluates a document template with contextual escaping.
func (r *Renderer) RenderHTML(name, src string, ctx Context) (string, error) {
	t, err := htmltemplate.New(name).Funcs(htmlFuncs()).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateExec, name, err)
	}
	return buf.String(), nil
}
