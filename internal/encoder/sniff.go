package encoder

import (
	"bytes"
	"encoding/base64"
	"path"
	"strings"
)

// Media types produced by the sniffer.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEGIF  = "image/gif"
	MIMEWebP = "image/webp"
	MIMEICO  = "image/x-icon"
	MIMESVG  = "image/svg+xml"
)

// sniffWindow bounds how far into a buffer we look for an <svg tag.
const sniffWindow = 512

// mimeByExt maps lowercase extensions to media types.
var mimeByExt = map[string]string{
	".png":  MIMEPNG,
	".jpg":  MIMEJPEG,
	".jpeg": MIMEJPEG,
	".gif":  MIMEGIF,
	".webp": MIMEWebP,
	".ico":  MIMEICO,
	".svg":  MIMESVG,
}

// Ext returns the lowercase extension of a reference, ignoring any query
// string or fragment ("https://x/a.svg?v=2" -> ".svg").
func Ext(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return strings.ToLower(path.Ext(ref))
}

// MIMEFromExt returns the media type for a known image extension.
func MIMEFromExt(ext string) (string, bool) {
	m, ok := mimeByExt[strings.ToLower(ext)]
	return m, ok
}

// MIMEFromRef infers the media type of a non-resized raster from its
// reference. Unknown extensions default to PNG.
func MIMEFromRef(ref string) string {
	if m, ok := mimeByExt[Ext(ref)]; ok && m != MIMESVG {
		return m
	}
	return MIMEPNG
}

// IsSVGRef reports whether the reference names an SVG by extension.
func IsSVGRef(ref string) bool {
	return Ext(ref) == ".svg"
}

// IsSVGData reports whether the buffer looks like an SVG document: an XML
// declaration or an <svg tag near the start.
func IsSVGData(data []byte) bool {
	head := data
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	if bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	return bytes.Contains(head, []byte("<svg"))
}

// DataURI builds data:<mime>;base64,<payload> with standard padded base64.
func DataURI(mime string, data []byte) string {
	var b strings.Builder
	n := base64.StdEncoding.EncodedLen(len(data))
	b.Grow(len("data:;base64,") + len(mime) + n)
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
