package fhirxml

import "strings"

// xmlEscaper replaces in a single pass, so entities it produces are never
// escaped again.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeXML escapes &, <, >, " and ' for use in text and attribute values.
// The empty string yields the empty string.
func EscapeXML(s string) string {
	if s == "" {
		return ""
	}
	return xmlEscaper.Replace(s)
}
