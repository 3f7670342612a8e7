package formbuilder

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ehr/formbuilder/internal/platform/fhir"
	"github.com/ehr/formbuilder/internal/platform/fhirxml"
	"github.com/ehr/formbuilder/internal/platform/gdt"
)

// ExportKind selects which resource an export produces.
type ExportKind string

const (
	KindQuestionnaire ExportKind = "questionnaire"
	KindResponse      ExportKind = "response"
	KindBundle        ExportKind = "bundle"
)

// ParseExportKind accepts the names used by the CLI and the HTTP routes.
func ParseExportKind(s string) (ExportKind, error) {
	switch s {
	case "questionnaire":
		return KindQuestionnaire, nil
	case "response", "questionnaire-response":
		return KindResponse, nil
	case "bundle":
		return KindBundle, nil
	}
	return "", fmt.Errorf("unknown export kind %q", s)
}

// Service ties the exporters and the XML serializer together for a whole
// form document.
type Service struct {
	cfg            exportConfig
	questionnaires *QuestionnaireExporter
	responses      *ResponseExporter
	xml            *fhirxml.Serializer
	logger         zerolog.Logger
}

func NewService(logger zerolog.Logger, xml *fhirxml.Serializer, opts ...ExportOption) *Service {
	if xml == nil {
		xml = fhirxml.New()
	}
	opts = append([]ExportOption{WithLogger(logger)}, opts...)
	return &Service{
		cfg:            newExportConfig(opts),
		questionnaires: NewQuestionnaireExporter(opts...),
		responses:      NewResponseExporter(opts...),
		xml:            xml,
		logger:         logger,
	}
}

func (s *Service) loggerFor(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return s.logger
}

// pinned returns a copy of meta whose id is set, so that a questionnaire and
// a response built from it reference each other.
func (s *Service) pinned(meta FormMetadata) FormMetadata {
	if meta.ID == "" {
		meta.ID = s.cfg.newID()
	}
	return meta
}

func (s *Service) Questionnaire(ctx context.Context, doc *FormDocument) *fhir.Questionnaire {
	q := s.questionnaires.ToQuestionnaire(doc.Elements, doc.Metadata)
	logger := s.loggerFor(ctx)
	logger.Debug().
		Str("questionnaire_id", q.ID).
		Int("items", q.CountItems()).
		Msg("exported questionnaire")
	return q
}

func (s *Service) QuestionnaireResponse(ctx context.Context, doc *FormDocument) *fhir.QuestionnaireResponse {
	logger := s.loggerFor(ctx)
	r := s.responses.toResponse(logger, doc.Answers, doc.Elements, doc.Metadata)
	logger.Debug().
		Str("response_id", r.ID).
		Str("questionnaire", r.Questionnaire).
		Int("answers", r.CountAnswers()).
		Msg("exported questionnaire response")
	return r
}

// pair builds a questionnaire and a response that reference each other.
func (s *Service) pair(ctx context.Context, doc *FormDocument) (*fhir.Questionnaire, *fhir.QuestionnaireResponse) {
	pinned := *doc
	pinned.Metadata = s.pinned(doc.Metadata)
	return s.Questionnaire(ctx, &pinned), s.QuestionnaireResponse(ctx, &pinned)
}

// ExportBundle returns a collection Bundle holding the questionnaire and the
// response, in that order.
func (s *Service) ExportBundle(ctx context.Context, doc *FormDocument) (*fhir.Bundle, error) {
	q, r := s.pair(ctx, doc)
	return fhir.NewCollectionBundle(s.cfg.newID(), s.cfg.now(), q, r)
}

func (s *Service) QuestionnaireXML(ctx context.Context, doc *FormDocument) string {
	return s.xml.QuestionnaireToXML(s.Questionnaire(ctx, doc))
}

// QuestionnaireResponseXML renders the response. The enhanced variant embeds
// item metadata from the questionnaire built for the same document.
func (s *Service) QuestionnaireResponseXML(ctx context.Context, doc *FormDocument, enhanced bool) string {
	if !enhanced {
		return s.xml.QuestionnaireResponseToXML(s.QuestionnaireResponse(ctx, doc), nil)
	}
	q, r := s.pair(ctx, doc)
	return s.xml.EnhancedQuestionnaireResponseToXML(r, q)
}

func (s *Service) BundleXML(ctx context.Context, doc *FormDocument) string {
	q, r := s.pair(ctx, doc)
	return s.xml.CombinedQuestionnaireResponseToXML(q, r)
}

// Render exports doc as kind in the given wire format. JSON output is
// indented.
func (s *Service) Render(ctx context.Context, kind ExportKind, doc *FormDocument, format fhir.Format, enhanced bool) ([]byte, error) {
	if format == fhir.FormatXML {
		switch kind {
		case KindQuestionnaire:
			return []byte(s.QuestionnaireXML(ctx, doc)), nil
		case KindResponse:
			return []byte(s.QuestionnaireResponseXML(ctx, doc, enhanced)), nil
		case KindBundle:
			return []byte(s.BundleXML(ctx, doc)), nil
		}
		return nil, fmt.Errorf("unknown export kind %q", kind)
	}

	var v interface{}
	switch kind {
	case KindQuestionnaire:
		v = s.Questionnaire(ctx, doc)
	case KindResponse:
		v = s.QuestionnaireResponse(ctx, doc)
	case KindBundle:
		b, err := s.ExportBundle(ctx, doc)
		if err != nil {
			return nil, err
		}
		v = b
	default:
		return nil, fmt.Errorf("unknown export kind %q", kind)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return out, nil
}

// GDTReference is one GDT placeholder found in a form.
type GDTReference struct {
	ElementID   string `json:"elementId"`
	Field       string `json:"field"`
	Variable    string `json:"variable"`
	Code        string `json:"code"`
	Bezeichnung string `json:"bezeichnung,omitempty"`
	Known       bool   `json:"known"`
	// Canonical is false when the name part differs from the one derived
	// from the registry.
	Canonical bool `json:"canonical"`
}

// GDTVariables lists the placeholders used in element labels, descriptions
// and option labels, depth-first in tree order.
func (s *Service) GDTVariables(doc *FormDocument) []GDTReference {
	out := []GDTReference{}
	var walk func(elements []FormElement)
	walk = func(elements []FormElement) {
		for i := range elements {
			el := &elements[i]
			out = appendRefs(out, el.ID, "label", el.Label)
			out = appendRefs(out, el.ID, "description", el.Description)
			for j, opt := range el.Options {
				out = appendRefs(out, el.ID, fmt.Sprintf("options[%d].label", j), opt.Label)
			}
			walk(el.Elements)
		}
	}
	walk(doc.Elements)
	return out
}

func appendRefs(out []GDTReference, elementID, field, text string) []GDTReference {
	for _, v := range gdt.FindVariables(text) {
		code, _ := gdt.ParseVariable(v)
		ref := GDTReference{ElementID: elementID, Field: field, Variable: v, Code: code}
		if m, ok := gdt.GetMapping(code); ok {
			ref.Known = true
			ref.Bezeichnung = m.Bezeichnung
			canonical, _ := gdt.CodeToVariable(code)
			ref.Canonical = canonical == v
		}
		out = append(out, ref)
	}
	return out
}
