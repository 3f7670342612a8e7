package formbuilder

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func fixedIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func newTestQuestionnaireExporter() *QuestionnaireExporter {
	return NewQuestionnaireExporter(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(fixedIDs("gen-1", "gen-2", "gen-3")),
	)
}

func intPtr(n int) *int { return &n }

func TestToQuestionnaire_Defaults(t *testing.T) {
	q := newTestQuestionnaireExporter().ToQuestionnaire(nil, FormMetadata{})

	if q.ResourceType != "Questionnaire" {
		t.Errorf("unexpected resourceType %q", q.ResourceType)
	}
	if q.ID != "gen-1" || q.URL != "urn:uuid:gen-1" {
		t.Errorf("expected generated id and url, got %q %q", q.ID, q.URL)
	}
	if q.Title != "Untitled Form" || q.Status != "draft" || q.Date != "2024-03-15" {
		t.Errorf("unexpected defaults title=%q status=%q date=%q", q.Title, q.Status, q.Date)
	}
	if len(q.Item) != 0 {
		t.Errorf("expected no items, got %d", len(q.Item))
	}
}

func TestToQuestionnaire_MetadataWins(t *testing.T) {
	meta := FormMetadata{
		ID: "q-1", URL: "http://forms.example.com/q-1", Status: "active", Title: "Anamnese",
		Version: "2", Publisher: "Praxis", Description: "Erstaufnahme", Date: "2024-01-01",
	}
	q := newTestQuestionnaireExporter().ToQuestionnaire(nil, meta)

	if q.ID != "q-1" || q.URL != meta.URL || q.Status != "active" || q.Title != "Anamnese" {
		t.Errorf("metadata not applied: %+v", q)
	}
	if q.Version != "2" || q.Publisher != "Praxis" || q.Description != "Erstaufnahme" || q.Date != "2024-01-01" {
		t.Errorf("metadata not applied: %+v", q)
	}
}

func TestToQuestionnaire_URLFromSuppliedID(t *testing.T) {
	q := newTestQuestionnaireExporter().ToQuestionnaire(nil, FormMetadata{ID: "abc"})
	if q.URL != "urn:uuid:abc" {
		t.Errorf("expected urn:uuid:abc, got %q", q.URL)
	}
}

func TestToQuestionnaire_ItemMapping(t *testing.T) {
	elements := []FormElement{
		{ID: "e1", LinkID: "name", Type: ElementText, Label: "Name", Required: true, Description: "Nachname", MaxLength: intPtr(28)},
		{ID: "e2", Type: ElementNumber, Label: "Alter", MinLength: intPtr(0)},
		{ID: "e3", Type: ElementText, FHIRType: "url", Label: "Homepage"},
	}
	q := newTestQuestionnaireExporter().ToQuestionnaire(elements, FormMetadata{})

	if len(q.Item) != 3 {
		t.Fatalf("expected 3 items, got %d", len(q.Item))
	}

	name := q.Item[0]
	if name.LinkID != "name" || name.Text != "Name" || name.Type != "string" {
		t.Errorf("unexpected item %+v", name)
	}
	if name.Required == nil || !*name.Required {
		t.Error("expected required=true")
	}
	if name.MaxLength == nil || *name.MaxLength != 28 {
		t.Error("expected maxLength 28")
	}
	if len(name.Extension) != 1 || name.Extension[0].URL != "http://hl7.org/fhir/StructureDefinition/rendering-xhtml" ||
		name.Extension[0].ValueString != "Nachname" {
		t.Errorf("expected description extension, got %+v", name.Extension)
	}

	age := q.Item[1]
	if age.LinkID != "e2" || age.Type != "decimal" {
		t.Errorf("unexpected item %+v", age)
	}
	if age.Required == nil || *age.Required {
		t.Error("expected required to default to false")
	}
	if age.MinLength == nil || *age.MinLength != 0 {
		t.Error("minLength 0 must be preserved")
	}
	if age.MaxLength != nil {
		t.Error("absent maxLength must stay absent")
	}

	if q.Item[2].Type != "url" {
		t.Errorf("expected fhirType override, got %q", q.Item[2].Type)
	}
}

func TestToQuestionnaire_AnswerOptions(t *testing.T) {
	elements := []FormElement{
		{ID: "c", Type: ElementCheckbox, Options: []Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}},
		{ID: "t", Type: ElementText, Options: []Option{{Value: "ignored", Label: "Ignored"}}},
	}
	q := newTestQuestionnaireExporter().ToQuestionnaire(elements, FormMetadata{})

	opts := q.Item[0].AnswerOption
	if len(opts) != 2 {
		t.Fatalf("expected 2 answer options, got %d", len(opts))
	}
	c := opts[1].ValueCoding
	if c.System != "http://example.org/answer-codes" || c.Code != "b" || c.Display != "B" {
		t.Errorf("unexpected coding %+v", c)
	}
	if len(q.Item[1].AnswerOption) != 0 {
		t.Error("text elements must not get answer options")
	}
}

func TestToQuestionnaire_CustomAnswerSystem(t *testing.T) {
	x := NewQuestionnaireExporter(WithAnswerCodeSystem("urn:example:answers"), WithAnswerCodeSystem(""))
	q := x.ToQuestionnaire([]FormElement{{ID: "r", Type: ElementRadio, Options: []Option{{Value: "y", Label: "Yes"}}}}, FormMetadata{})
	if got := q.Item[0].AnswerOption[0].ValueCoding.System; got != "urn:example:answers" {
		t.Errorf("unexpected system %q", got)
	}
}

func TestToQuestionnaire_ImageExcludedGroupKept(t *testing.T) {
	elements := []FormElement{
		{ID: "img", Type: ElementImage, Label: "Logo"},
		{ID: "g", Type: ElementGroup, Label: "Adresse", Elements: []FormElement{
			{ID: "street", Type: ElementText, Label: "Straße"},
			{ID: "img2", Type: ElementImage},
			{ID: "inner", Type: ElementGroup, Elements: []FormElement{{ID: "zip", Type: ElementText}}},
		}},
		{ID: "h", Type: ElementHeader, Label: "Hinweis"},
	}
	q := newTestQuestionnaireExporter().ToQuestionnaire(elements, FormMetadata{})

	if len(q.Item) != 2 {
		t.Fatalf("expected group and header, got %d items", len(q.Item))
	}
	g := q.Item[0]
	if g.Type != "group" || g.LinkID != "g" {
		t.Errorf("unexpected group item %+v", g)
	}
	if len(g.Item) != 2 || g.Item[0].LinkID != "street" || g.Item[1].Item[0].LinkID != "zip" {
		t.Errorf("unexpected nested items %+v", g.Item)
	}
	if q.Item[1].Type != "display" {
		t.Errorf("expected header as display, got %q", q.Item[1].Type)
	}
	if _, ok := q.FindItem("img2"); ok {
		t.Error("nested image must be excluded")
	}
}

func TestToQuestionnaire_Passthrough(t *testing.T) {
	enableWhen := json.RawMessage(`[{"question":"smoker","operator":"=","answerBoolean":true}]`)
	elements := []FormElement{
		{
			ID: "p", Type: ElementText, Prefix: "1.", ReadOnly: true, Repeats: true,
			MaxOccurs: intPtr(3), AnswerValueSet: "http://loinc.org/vs/LL1",
			EnableWhen: enableWhen,
		},
		{ID: "q", Type: ElementText, MaxOccurs: intPtr(0), EnableWhen: json.RawMessage(`null`)},
		{ID: "r", Type: ElementText, EnableWhen: json.RawMessage(`[]`)},
	}
	q := newTestQuestionnaireExporter().ToQuestionnaire(elements, FormMetadata{})

	p := q.Item[0]
	if p.Prefix != "1." || p.ReadOnly == nil || !*p.ReadOnly || p.Repeats == nil || !*p.Repeats {
		t.Errorf("passthrough fields missing: %+v", p)
	}
	if p.MaxOccurs == nil || *p.MaxOccurs != 3 || p.AnswerValueSet != "http://loinc.org/vs/LL1" {
		t.Errorf("passthrough fields missing: %+v", p)
	}
	if string(p.EnableWhen) != string(enableWhen) {
		t.Errorf("enableWhen not carried: %s", p.EnableWhen)
	}

	falsy := q.Item[1]
	if falsy.ReadOnly != nil || falsy.Repeats != nil || falsy.MaxOccurs != nil || falsy.EnableWhen != nil {
		t.Errorf("falsy passthrough values must be omitted: %+v", falsy)
	}
	if empty := q.Item[2]; string(empty.EnableWhen) != "[]" {
		t.Errorf("empty enableWhen list must be carried, got %q", empty.EnableWhen)
	}
}

func TestToQuestionnaire_DoesNotMutateInput(t *testing.T) {
	elements := []FormElement{{ID: "x", Type: ElementText}}
	meta := FormMetadata{}
	newTestQuestionnaireExporter().ToQuestionnaire(elements, meta)

	if elements[0].LinkID != "" || meta.ID != "" {
		t.Error("exporter mutated its input")
	}
}

func TestToQuestionnaire_Deterministic(t *testing.T) {
	elements := []FormElement{
		{ID: "a", Type: ElementSelect, Options: []Option{{Value: "1", Label: "Eins"}}},
		{ID: "g", Type: ElementGroup, Elements: []FormElement{{ID: "b", Type: ElementDate}}},
	}
	meta := FormMetadata{ID: "fixed"}
	first, _ := json.Marshal(newTestQuestionnaireExporter().ToQuestionnaire(elements, meta))
	second, _ := json.Marshal(newTestQuestionnaireExporter().ToQuestionnaire(elements, meta))
	if string(first) != string(second) {
		t.Errorf("exports differ:\n%s\n%s", first, second)
	}
}

func TestToQuestionnaire_JSONShape(t *testing.T) {
	elements := []FormElement{{ID: "a", Type: ElementYesNo, Label: "Raucher"}}
	q := newTestQuestionnaireExporter().ToQuestionnaire(elements, FormMetadata{ID: "q"})
	raw, err := json.Marshal(q.Item[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"linkId":"a","text":"Raucher","type":"boolean","required":false}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}
