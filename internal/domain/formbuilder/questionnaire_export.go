package formbuilder

import (
	"github.com/ehr/formbuilder/internal/platform/fhir"
	"github.com/ehr/formbuilder/pkg/fhirmodels"
)

// DefaultTitle is used when the form metadata has no title.
const DefaultTitle = "Untitled Form"

// QuestionnaireExporter builds FHIR Questionnaire resources from an element
// tree. It never mutates its input.
type QuestionnaireExporter struct {
	cfg exportConfig
}

func NewQuestionnaireExporter(opts ...ExportOption) *QuestionnaireExporter {
	return &QuestionnaireExporter{cfg: newExportConfig(opts)}
}

// AnswerCodeSystem returns the system URI used for answer option codings.
func (x *QuestionnaireExporter) AnswerCodeSystem() string {
	return x.cfg.answerSystem
}

// ToQuestionnaire converts elements and meta into a Questionnaire. Missing
// metadata is defaulted: a new id, a urn:uuid url derived from it, the
// default title, draft status and today's date.
func (x *QuestionnaireExporter) ToQuestionnaire(elements []FormElement, meta FormMetadata) *fhir.Questionnaire {
	id := meta.ID
	if id == "" {
		id = x.cfg.newID()
	}
	url := meta.URL
	if url == "" {
		url = "urn:uuid:" + id
	}
	title := meta.Title
	if title == "" {
		title = DefaultTitle
	}
	status := meta.Status
	if status == "" {
		status = fhirmodels.PublicationStatusDraft
	}
	date := meta.Date
	if date == "" {
		date = x.cfg.now().Format("2006-01-02")
	}

	return &fhir.Questionnaire{
		ResourceType: "Questionnaire",
		ID:           id,
		URL:          url,
		Status:       status,
		Title:        title,
		Version:      meta.Version,
		Publisher:    meta.Publisher,
		Description:  meta.Description,
		Date:         date,
		Item:         x.items(elements),
	}
}

// items maps elements in order, dropping images.
func (x *QuestionnaireExporter) items(elements []FormElement) []fhir.QuestionnaireItem {
	var out []fhir.QuestionnaireItem
	for i := range elements {
		if elements[i].Type == ElementImage {
			continue
		}
		out = append(out, x.item(&elements[i]))
	}
	return out
}

func (x *QuestionnaireExporter) item(el *FormElement) fhir.QuestionnaireItem {
	itemType := el.FHIRType
	if itemType == "" {
		itemType = ElementTypeToFHIRType(el.Type)
	}

	item := fhir.QuestionnaireItem{
		LinkID:   el.EffectiveLinkID(),
		Text:     el.Label,
		Type:     itemType,
		Required: fhir.Bool(el.Required),
	}

	// The description stays out of text, which is reserved for the label.
	if el.Description != "" {
		item.Extension = append(item.Extension, fhir.Extension{
			URL:         renderingXHTMLURL,
			ValueString: el.Description,
		})
	}

	if el.MinLength != nil {
		item.MinLength = fhir.Int(*el.MinLength)
	}
	if el.MaxLength != nil {
		item.MaxLength = fhir.Int(*el.MaxLength)
	}

	switch el.Type {
	case ElementSelect, ElementRadio, ElementCheckbox:
		for _, opt := range el.Options {
			item.AnswerOption = append(item.AnswerOption, fhir.AnswerOption{
				ValueCoding: &fhir.Coding{
					System:  x.cfg.answerSystem,
					Code:    opt.Value,
					Display: opt.Label,
				},
			})
		}
	case ElementGroup:
		item.Item = x.items(el.Elements)
	}

	if len(el.Code) > 0 {
		item.Code = append([]fhir.Coding(nil), el.Code...)
	}
	if el.Prefix != "" {
		item.Prefix = el.Prefix
	}
	if el.ReadOnly {
		item.ReadOnly = fhir.Bool(true)
	}
	if hasEnableWhen(el) {
		item.EnableWhen = el.EnableWhen
	}
	if el.AnswerValueSet != "" {
		item.AnswerValueSet = el.AnswerValueSet
	}
	if el.Repeats {
		item.Repeats = fhir.Bool(true)
	}
	if el.MaxOccurs != nil && *el.MaxOccurs != 0 {
		item.MaxOccurs = fhir.Int(*el.MaxOccurs)
	}

	return item
}

func hasEnableWhen(el *FormElement) bool {
	switch string(el.EnableWhen) {
	case "", "null":
		return false
	}
	return true
}
