package fhirxml

import (
	"github.com/ehr/formbuilder/internal/platform/fhir"
	"github.com/ehr/formbuilder/pkg/fhirmodels"
)

// resourceDepth is the nesting level of a resource inside
// Bundle > entry > resource.
const resourceDepth = 3

// CombinedQuestionnaireResponseToXML renders a collection Bundle holding q
// followed by the enhanced rendering of r. The nested resources carry no
// prolog of their own.
func (s *Serializer) CombinedQuestionnaireResponseToXML(q *fhir.Questionnaire, r *fhir.QuestionnaireResponse) string {
	return render(0, func(w *writer) {
		w.prolog()
		w.openRoot("Bundle")
		w.value("type", fhirmodels.BundleTypeCollection)

		w.open("entry")
		w.open("resource")
		writeQuestionnaire(newWriter(w.buf, resourceDepth), q)
		w.close("resource")
		w.close("entry")

		w.open("entry")
		w.open("resource")
		s.writeResponse(newWriter(w.buf, resourceDepth), r, q)
		w.close("resource")
		w.close("entry")

		w.close("Bundle")
	})
}
