package fhirxml

import (
	"strconv"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

// QuestionnaireToXML renders q as a standalone XML document.
func (s *Serializer) QuestionnaireToXML(q *fhir.Questionnaire) string {
	return render(0, func(w *writer) {
		w.prolog()
		writeQuestionnaire(w, q)
	})
}

func writeQuestionnaire(w *writer, q *fhir.Questionnaire) {
	if q == nil {
		q = &fhir.Questionnaire{}
	}

	w.openRoot("Questionnaire")
	w.optional("id", q.ID)
	w.optional("url", q.URL)
	w.optional("version", q.Version)
	w.optional("title", q.Title)
	w.optional("status", q.Status)
	w.optional("date", q.Date)
	w.optional("publisher", q.Publisher)
	w.optional("description", q.Description)
	for i := range q.Item {
		writeQuestionnaireItem(w, &q.Item[i])
	}
	w.close("Questionnaire")
}

func writeQuestionnaireItem(w *writer, item *fhir.QuestionnaireItem) {
	w.open("item")
	w.value("linkId", item.LinkID)
	w.optional("text", item.Text)
	w.value("type", item.Type)
	if item.Required != nil {
		w.value("required", formatBool(*item.Required))
	}
	if item.Repeats != nil {
		w.value("repeats", formatBool(*item.Repeats))
	}
	if item.ReadOnly != nil {
		w.value("readOnly", formatBool(*item.ReadOnly))
	}
	if item.MaxLength != nil {
		w.value("maxLength", strconv.Itoa(*item.MaxLength))
	}
	if item.MinLength != nil {
		w.value("minLength", strconv.Itoa(*item.MinLength))
	}
	for _, opt := range item.AnswerOption {
		if opt.ValueCoding == nil {
			continue
		}
		w.open("answerOption")
		writeCoding(w, opt.ValueCoding)
		w.close("answerOption")
	}
	for i := range item.Item {
		writeQuestionnaireItem(w, &item.Item[i])
	}
	w.close("item")
}

func writeCoding(w *writer, c *fhir.Coding) {
	w.open("valueCoding")
	w.optional("system", c.System)
	w.optional("code", c.Code)
	w.optional("display", c.Display)
	w.close("valueCoding")
}
