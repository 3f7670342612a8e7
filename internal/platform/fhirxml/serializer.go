// Package fhirxml renders Questionnaire and QuestionnaireResponse resources
// as FHIR XML text. It is a flat, best-effort emitter: element order follows
// the exporter's value objects and no schema validation takes place.
package fhirxml

import (
	"strconv"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

// DefaultMetadataExtensionURL identifies the questionnaire-metadata extension
// injected by the enhanced response output. It is not a registered FHIR
// extension.
const DefaultMetadataExtensionURL = "http://example.org/questionnaire-metadata"

// Serializer renders FHIR resources as XML. The zero value is not usable;
// create one with New.
type Serializer struct {
	metadataURL string
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithMetadataExtensionURL overrides the extension URL used by the enhanced
// response output. Empty values are ignored.
func WithMetadataExtensionURL(url string) Option {
	return func(s *Serializer) {
		if url != "" {
			s.metadataURL = url
		}
	}
}

// New creates a Serializer.
func New(opts ...Option) *Serializer {
	s := &Serializer{metadataURL: DefaultMetadataExtensionURL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MetadataExtensionURL returns the URL used for injected item metadata.
func (s *Serializer) MetadataExtensionURL() string {
	return s.metadataURL
}

var defaultSerializer = New()

// QuestionnaireToXML renders q with the default serializer.
func QuestionnaireToXML(q *fhir.Questionnaire) string {
	return defaultSerializer.QuestionnaireToXML(q)
}

// QuestionnaireResponseToXML renders r with the default serializer.
func QuestionnaireResponseToXML(r *fhir.QuestionnaireResponse, q *fhir.Questionnaire) string {
	return defaultSerializer.QuestionnaireResponseToXML(r, q)
}

// EnhancedQuestionnaireResponseToXML renders r with item metadata taken from
// q, using the default serializer.
func EnhancedQuestionnaireResponseToXML(r *fhir.QuestionnaireResponse, q *fhir.Questionnaire) string {
	return defaultSerializer.EnhancedQuestionnaireResponseToXML(r, q)
}

// CombinedQuestionnaireResponseToXML renders q and r as a collection Bundle
// with the default serializer.
func CombinedQuestionnaireResponseToXML(q *fhir.Questionnaire, r *fhir.QuestionnaireResponse) string {
	return defaultSerializer.CombinedQuestionnaireResponseToXML(q, r)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
