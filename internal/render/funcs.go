package render

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/AnyUserName/genkan/internal/config"
	"github.com/AnyUserName/genkan/internal/svg"
)

// TypographyKey is the context key holding the resolved style of role.
func TypographyKey(role config.Role) string {
	return "typography_" + string(role)
}

func baseFuncs() map[string]any {
	return map[string]any{
		"isInlineSVG": svg.IsInline,
		"isImage":     isImage,
		"deref":       deref,
		"roles":       roles,
	}
}

func textFuncs() texttemplate.FuncMap {
	return texttemplate.FuncMap(baseFuncs())
}

func htmlFuncs() htmltemplate.FuncMap {
	m := baseFuncs()
	m["asset"] = func(s string) htmltemplate.URL { return htmltemplate.URL(s) }
	m["inlineSVG"] = func(s string) htmltemplate.HTML { return htmltemplate.HTML(svg.Markup(s)) }
	m["safeCSS"] = func(s string) htmltemplate.CSS { return htmltemplate.CSS(s) }
	m["safeJS"] = func(s string) htmltemplate.JS { return htmltemplate.JS(s) }
	m["safeHTML"] = func(s string) htmltemplate.HTML { return htmltemplate.HTML(s) }
	return htmltemplate.FuncMap(m)
}

// isImage reports whether an embedded value should go into an <img> source
// rather than be printed as text.
func isImage(s string) bool {
	for _, p := range []string{"data:", "http://", "https://", "//"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// roles collects the resolved typography of ctx keyed by role name.
func roles(ctx Context) map[string]config.ResolvedTypography {
	out := make(map[string]config.ResolvedTypography, len(config.Roles))
	for _, role := range config.Roles {
		if t, ok := ctx[TypographyKey(role)].(config.ResolvedTypography); ok {
			out[string(role)] = t
		}
	}
	return out
}
