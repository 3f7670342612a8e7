package fhir

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Format is a negotiated FHIR wire format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

const (
	// FHIRContentType is the FHIR JSON content type with charset.
	FHIRContentType = "application/fhir+json; charset=utf-8"
	// FHIRXMLContentType is the FHIR XML content type with charset.
	FHIRXMLContentType = "application/fhir+xml; charset=utf-8"
)

// ContentType returns the response media type for f.
func (f Format) ContentType() string {
	if f == FormatXML {
		return FHIRXMLContentType
	}
	return FHIRContentType
}

// NegotiateFormat picks the response format for a request. The _format query
// parameter takes priority over the Accept header; with neither present JSON
// is used. ok is false when the client only accepts something unsupported.
func NegotiateFormat(c echo.Context) (f Format, ok bool) {
	if format := c.QueryParam("_format"); format != "" {
		return ParseFormat(format)
	}

	accept := c.Request().Header.Get("Accept")
	if accept == "" {
		return FormatJSON, true
	}
	return negotiateAccept(accept)
}

// ParseFormat maps a _format value or media type to a Format.
func ParseFormat(raw string) (Format, bool) {
	switch normalizeFormat(raw) {
	case "json", "application/json", "application/fhir+json":
		return FormatJSON, true
	case "xml", "application/xml", "application/fhir+xml", "text/xml":
		return FormatXML, true
	}
	return "", false
}

// normalizeFormat normalises a format string by lowercasing, trimming
// whitespace, and restoring the "+" that HTTP query-string decoding may have
// converted to a space (e.g. "application/fhir json" -> "application/fhir+json").
func normalizeFormat(raw string) string {
	f := strings.TrimSpace(strings.ToLower(raw))
	f = strings.ReplaceAll(f, "fhir json", "fhir+json")
	f = strings.ReplaceAll(f, "fhir xml", "fhir+xml")
	return f
}

// negotiateAccept walks the Accept header in order and returns the first
// supported media type. Wildcards resolve to JSON.
func negotiateAccept(accept string) (Format, bool) {
	for _, part := range strings.Split(accept, ",") {
		// Strip quality parameters (e.g., ";q=0.9").
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if mediaType == "*/*" || strings.EqualFold(mediaType, "application/*") {
			return FormatJSON, true
		}
		if f, ok := ParseFormat(mediaType); ok {
			return f, true
		}
	}
	return "", false
}
