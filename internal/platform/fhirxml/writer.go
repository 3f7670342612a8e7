package fhirxml

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

const (
	xmlProlog  = `<?xml version="1.0" encoding="UTF-8"?>`
	fhirNS     = "http://hl7.org/fhir"
	indentUnit = "  "
)

// writer is a line-oriented XML emitter. Every element sits on its own line,
// indented two spaces per nesting level.
type writer struct {
	buf   *bytebufferpool.ByteBuffer
	depth int
}

func newWriter(buf *bytebufferpool.ByteBuffer, depth int) *writer {
	return &writer{buf: buf, depth: depth}
}

func (w *writer) line(s string) {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString(indentUnit)
	}
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *writer) prolog() {
	w.line(xmlProlog)
}

// openRoot opens a resource element carrying the FHIR namespace.
func (w *writer) openRoot(tag string) {
	w.line("<" + tag + ` xmlns="` + fhirNS + `">`)
	w.depth++
}

func (w *writer) open(tag string) {
	w.line("<" + tag + ">")
	w.depth++
}

func (w *writer) openExtension(url string) {
	w.line(`<extension url="` + EscapeXML(url) + `">`)
	w.depth++
}

func (w *writer) close(tag string) {
	w.depth--
	w.line("</" + tag + ">")
}

// value writes <tag value="v"/>.
func (w *writer) value(tag, v string) {
	w.line("<" + tag + ` value="` + EscapeXML(v) + `"/>`)
}

// optional writes <tag value="v"/> unless v is empty.
func (w *writer) optional(tag, v string) {
	if v != "" {
		w.value(tag, v)
	}
}

func (w *writer) comment(text string) {
	text = EscapeXML(text)
	for strings.Contains(text, "--") {
		text = strings.ReplaceAll(text, "--", "- -")
	}
	w.line("<!-- " + text + " -->")
}

// render runs fn against a pooled buffer and returns the text without the
// trailing newline.
func render(depth int, fn func(w *writer)) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fn(newWriter(buf, depth))
	return strings.TrimSuffix(buf.String(), "\n")
}
