package fhirxml

import (
	"strconv"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

// QuestionnaireResponseToXML renders r as a standalone XML document. q is
// accepted for symmetry with the enhanced variant and is not consulted.
func (s *Serializer) QuestionnaireResponseToXML(r *fhir.QuestionnaireResponse, q *fhir.Questionnaire) string {
	return render(0, func(w *writer) {
		w.prolog()
		s.writeResponse(w, r, nil)
	})
}

// EnhancedQuestionnaireResponseToXML renders r and, for every response item
// whose linkId resolves in q, injects the questionnaire item's type,
// required, repeats, readOnly and maxLength as comments and as a nested
// metadata extension.
func (s *Serializer) EnhancedQuestionnaireResponseToXML(r *fhir.QuestionnaireResponse, q *fhir.Questionnaire) string {
	return render(0, func(w *writer) {
		w.prolog()
		s.writeResponse(w, r, q)
	})
}

// writeResponse writes the resource body. A nil q disables metadata
// injection.
func (s *Serializer) writeResponse(w *writer, r *fhir.QuestionnaireResponse, q *fhir.Questionnaire) {
	if r == nil {
		r = &fhir.QuestionnaireResponse{}
	}

	w.openRoot("QuestionnaireResponse")
	w.optional("id", r.ID)
	w.optional("questionnaire", r.Questionnaire)
	w.optional("status", r.Status)
	w.optional("authored", r.Authored)
	for i := range r.Item {
		s.writeResponseItem(w, &r.Item[i], q)
	}
	w.close("QuestionnaireResponse")
}

func (s *Serializer) writeResponseItem(w *writer, item *fhir.QuestionnaireResponseItem, q *fhir.Questionnaire) {
	w.open("item")
	if q != nil {
		if def, ok := q.FindItem(item.LinkID); ok {
			s.writeItemMetadata(w, def)
		}
	}
	w.value("linkId", item.LinkID)
	w.optional("text", item.Text)
	for i := range item.Answer {
		writeAnswer(w, &item.Answer[i])
	}
	for i := range item.Item {
		s.writeResponseItem(w, &item.Item[i], q)
	}
	w.close("item")
}

// writeItemMetadata emits the definition fields of def twice: as readable
// comments and as sub-extensions of the metadata extension.
func (s *Serializer) writeItemMetadata(w *writer, def *fhir.QuestionnaireItem) {
	w.comment("type: " + def.Type)
	if def.Required != nil {
		w.comment("required: " + formatBool(*def.Required))
	}
	if def.Repeats != nil {
		w.comment("repeats: " + formatBool(*def.Repeats))
	}
	if def.ReadOnly != nil {
		w.comment("readOnly: " + formatBool(*def.ReadOnly))
	}
	if def.MaxLength != nil {
		w.comment("maxLength: " + strconv.Itoa(*def.MaxLength))
	}

	w.openExtension(s.metadataURL)
	subExtension(w, "type", "valueString", def.Type)
	if def.Required != nil {
		subExtension(w, "required", "valueBoolean", formatBool(*def.Required))
	}
	if def.Repeats != nil {
		subExtension(w, "repeats", "valueBoolean", formatBool(*def.Repeats))
	}
	if def.ReadOnly != nil {
		subExtension(w, "readOnly", "valueBoolean", formatBool(*def.ReadOnly))
	}
	if def.MaxLength != nil {
		subExtension(w, "maxLength", "valueInteger", strconv.Itoa(*def.MaxLength))
	}
	w.close("extension")
}

func subExtension(w *writer, url, valueTag, value string) {
	w.openExtension(url)
	w.value(valueTag, value)
	w.close("extension")
}

// writeAnswer emits the first populated value field, probing in a fixed
// order: string, boolean, decimal, integer, date, dateTime, time, coding.
func writeAnswer(w *writer, a *fhir.QuestionnaireResponseAnswer) {
	w.open("answer")
	switch {
	case a.ValueString != nil:
		w.value("valueString", *a.ValueString)
	case a.ValueBoolean != nil:
		w.value("valueBoolean", formatBool(*a.ValueBoolean))
	case a.ValueDecimal != nil:
		w.value("valueDecimal", formatDecimal(*a.ValueDecimal))
	case a.ValueInteger != nil:
		w.value("valueInteger", strconv.Itoa(*a.ValueInteger))
	case a.ValueDate != nil:
		w.value("valueDate", *a.ValueDate)
	case a.ValueDateTime != nil:
		w.value("valueDateTime", *a.ValueDateTime)
	case a.ValueTime != nil:
		w.value("valueTime", *a.ValueTime)
	case a.ValueCoding != nil:
		writeCoding(w, a.ValueCoding)
	}
	w.close("answer")
}
