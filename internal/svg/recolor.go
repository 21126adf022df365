// Package svg rewrites SVG documents for inline embedding so that icons
// inherit the surrounding text color.
//
// The document is split into tokens with the x/net/html tokenizer. Text,
// doctype and end tags are copied byte-for-byte; comments (including the
// XML declaration, which the tokenizer reports as a bogus comment) are
// dropped; start tags are rewritten attribute by attribute:
//
//   - width and height are removed from the root <svg> element
//   - fill and stroke values become currentColor unless they are "none"
//   - fill and stroke declarations inside style="" get the same treatment
package svg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// InlineMarker prefixes recolored markup so the renderer emits it
// verbatim instead of using it as an image source.
const InlineMarker = "__INLINE_SVG__"

const currentColor = "currentColor"

var (
	ErrInvalidUTF8 = errors.New("svg is not valid UTF-8")
	ErrMalformed   = errors.New("malformed svg")
)

// IsInline reports whether s carries the inline marker.
func IsInline(s string) bool {
	return strings.HasPrefix(s, InlineMarker)
}

// Markup strips the inline marker.
func Markup(s string) string {
	return strings.TrimPrefix(s, InlineMarker)
}

// Recolor rewrites data and returns it prefixed with InlineMarker.
func Recolor(data []byte) (string, error) {
	out, err := Rewrite(data)
	if err != nil {
		return "", err
	}
	return InlineMarker + out, nil
}

// Rewrite returns the color-neutral markup without the marker.
func Rewrite(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	z := html.NewTokenizer(bytes.NewReader(data))
	z.AllowCDATA(true)

	var b strings.Builder
	b.Grow(len(data))
	seenRoot := false

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return strings.TrimSpace(b.String()), nil

		case html.CommentToken:
			// dropped

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			name, _ := z.TagName()
			root := false
			if !seenRoot && string(name) == "svg" {
				root, seenRoot = true, true
			}
			b.WriteString(rewriteTag(raw, root))

		default:
			b.Write(z.Raw())
		}
	}
}

// rewriteTag rewrites the attributes of one raw start tag. Bytes it does
// not need to touch are copied unchanged.
func rewriteTag(raw string, root bool) string {
	var b strings.Builder
	b.Grow(len(raw))

	i := 1 // past '<'
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	b.WriteString(raw[:i])

	for i < len(raw) {
		wsStart := i
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		ws := raw[wsStart:i]
		if i >= len(raw) || raw[i] == '>' || raw[i] == '/' {
			b.WriteString(ws)
			if i < len(raw) {
				b.WriteString(raw[i : i+1])
				i++
			}
			continue
		}

		a := scanAttr(raw, i)
		i = a.end

		switch {
		case root && (a.name == "width" || a.name == "height"):
			// fixed size dropped with its leading whitespace
		case (a.name == "fill" || a.name == "stroke") && a.hasValue && a.value != "none":
			b.WriteString(ws)
			b.WriteString(a.name)
			b.WriteString(`="` + currentColor + `"`)
		case a.name == "style" && a.hasValue:
			b.WriteString(ws)
			q := ""
			if a.quote != 0 {
				q = string(a.quote)
			}
			b.WriteString(a.name + "=" + q + RewriteStyle(a.value) + q)
		default:
			b.WriteString(ws)
			b.WriteString(raw[a.start:a.end])
		}
	}
	return b.String()
}

type attr struct {
	name       string
	value      string
	hasValue   bool
	quote      byte
	start, end int
}

// scanAttr reads one attribute starting at raw[i].
func scanAttr(raw string, i int) attr {
	a := attr{start: i}
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
		i++
	}
	if i == a.start {
		// stray byte such as a lone '=': consume it verbatim
		i++
	}
	a.name = raw[a.start:i]

	j := i
	for j < len(raw) && isSpace(raw[j]) {
		j++
	}
	if j >= len(raw) || raw[j] != '=' {
		a.end = i
		return a
	}
	j++
	for j < len(raw) && isSpace(raw[j]) {
		j++
	}
	a.hasValue = true

	if j < len(raw) && (raw[j] == '"' || raw[j] == '\'') {
		a.quote = raw[j]
		k := strings.IndexByte(raw[j+1:], a.quote)
		if k < 0 {
			a.value = raw[j+1:]
			a.end = len(raw)
			return a
		}
		a.value = raw[j+1 : j+1+k]
		a.end = j + 2 + k
		return a
	}

	k := j
	for k < len(raw) && !isSpace(raw[k]) && raw[k] != '>' {
		if raw[k] == '/' && k+1 < len(raw) && raw[k+1] == '>' {
			break
		}
		k++
	}
	a.value = raw[j:k]
	a.end = k
	return a
}

// RewriteStyle replaces the color token of fill and stroke declarations in
// an inline style with currentColor. Declarations whose value is "none"
// and every other declaration are kept as written.
func RewriteStyle(style string) string {
	decls := strings.Split(style, ";")
	for n, d := range decls {
		colon := strings.IndexByte(d, ':')
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(d[:colon]))
		if prop != "fill" && prop != "stroke" {
			continue
		}
		val := d[colon+1:]
		token := strings.TrimSpace(val)
		important := ""
		if k := strings.Index(token, "!"); k >= 0 {
			important = " " + strings.TrimSpace(token[k:])
			token = strings.TrimSpace(token[:k])
		}
		if token == "none" {
			continue
		}
		lead := val[:len(val)-len(strings.TrimLeft(val, " \t\r\n"))]
		trail := val[len(strings.TrimRight(val, " \t\r\n")):]
		decls[n] = d[:colon+1] + lead + currentColor + important + trail
	}
	return strings.Join(decls, ";")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
