package fhirxml

import (
	"strings"
	"testing"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

func sampleQuestionnaire() *fhir.Questionnaire {
	return &fhir.Questionnaire{
		ResourceType: "Questionnaire",
		ID:           "form-1",
		URL:          "urn:uuid:form-1",
		Status:       "draft",
		Title:        "Anamnese",
		Date:         "2024-03-01",
		Item: []fhir.QuestionnaireItem{
			{
				LinkID:    "q1",
				Text:      "Name",
				Type:      "string",
				Required:  fhir.Bool(true),
				MaxLength: fhir.Int(50),
			},
			{
				LinkID:   "q2",
				Text:     "Colour",
				Type:     "choice",
				Required: fhir.Bool(false),
				AnswerOption: []fhir.AnswerOption{
					{ValueCoding: &fhir.Coding{System: "http://example.org/answer-codes", Code: "r", Display: "Red"}},
				},
			},
			{
				LinkID:   "g1",
				Text:     "Group",
				Type:     "group",
				Required: fhir.Bool(false),
				Item: []fhir.QuestionnaireItem{
					{LinkID: "q3", Text: "Age", Type: "decimal", Required: fhir.Bool(false)},
				},
			},
		},
	}
}

func TestQuestionnaireToXML_FullDocument(t *testing.T) {
	want := strings.Join([]string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<Questionnaire xmlns="http://hl7.org/fhir">`,
		`  <id value="form-1"/>`,
		`  <url value="urn:uuid:form-1"/>`,
		`  <title value="Anamnese"/>`,
		`  <status value="draft"/>`,
		`  <date value="2024-03-01"/>`,
		`  <item>`,
		`    <linkId value="q1"/>`,
		`    <text value="Name"/>`,
		`    <type value="string"/>`,
		`    <required value="true"/>`,
		`    <maxLength value="50"/>`,
		`  </item>`,
		`  <item>`,
		`    <linkId value="q2"/>`,
		`    <text value="Colour"/>`,
		`    <type value="choice"/>`,
		`    <required value="false"/>`,
		`    <answerOption>`,
		`      <valueCoding>`,
		`        <system value="http://example.org/answer-codes"/>`,
		`        <code value="r"/>`,
		`        <display value="Red"/>`,
		`      </valueCoding>`,
		`    </answerOption>`,
		`  </item>`,
		`  <item>`,
		`    <linkId value="g1"/>`,
		`    <text value="Group"/>`,
		`    <type value="group"/>`,
		`    <required value="false"/>`,
		`    <item>`,
		`      <linkId value="q3"/>`,
		`      <text value="Age"/>`,
		`      <type value="decimal"/>`,
		`      <required value="false"/>`,
		`    </item>`,
		`  </item>`,
		`</Questionnaire>`,
	}, "\n")

	got := QuestionnaireToXML(sampleQuestionnaire())
	if got != want {
		t.Errorf("unexpected XML:\n%s\nwant:\n%s", got, want)
	}
}

func TestQuestionnaireToXML_Deterministic(t *testing.T) {
	q := sampleQuestionnaire()
	if QuestionnaireToXML(q) != QuestionnaireToXML(q) {
		t.Error("expected repeated serialization to be byte-identical")
	}
}

func TestQuestionnaireToXML_EscapesText(t *testing.T) {
	q := &fhir.Questionnaire{
		Status: "draft",
		Title:  `Fish & "Chips"`,
		Item:   []fhir.QuestionnaireItem{{LinkID: "a<b", Text: "x > y", Type: "string"}},
	}
	got := QuestionnaireToXML(q)
	for _, want := range []string{
		`<title value="Fish &amp; &quot;Chips&quot;"/>`,
		`<linkId value="a&lt;b"/>`,
		`<text value="x &gt; y"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestQuestionnaireToXML_OmitsAbsentFields(t *testing.T) {
	got := QuestionnaireToXML(&fhir.Questionnaire{
		Item: []fhir.QuestionnaireItem{{LinkID: "d", Type: "display"}},
	})
	for _, unwanted := range []string{"<id ", "<url ", "<title ", "<text ", "<required ", "<minLength "} {
		if strings.Contains(got, unwanted) {
			t.Errorf("expected no %q in output:\n%s", unwanted, got)
		}
	}
}

func TestQuestionnaireToXML_ZeroMinLength(t *testing.T) {
	got := QuestionnaireToXML(&fhir.Questionnaire{
		Item: []fhir.QuestionnaireItem{{LinkID: "q", Type: "string", MinLength: fhir.Int(0)}},
	})
	if !strings.Contains(got, `<minLength value="0"/>`) {
		t.Errorf("expected minLength 0 to be emitted:\n%s", got)
	}
}

func TestQuestionnaireToXML_Nil(t *testing.T) {
	got := QuestionnaireToXML(nil)
	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<Questionnaire xmlns="http://hl7.org/fhir">` + "\n" +
		`</Questionnaire>`
	if got != want {
		t.Errorf("unexpected XML for nil questionnaire:\n%s", got)
	}
}
