package formbuilder

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

const handlerTestForm = `{
  "metadata": {"id": "vorsorge", "title": "Vorsorge"},
  "elements": [
    {"id": "q1", "type": "text", "label": "Name #GDT_3101_NAME_DES_PATIENTEN#", "required": true, "maxLength": 50},
    {"id": "w", "type": "number", "label": "Gewicht"}
  ],
  "answers": {"q1": "hi", "w": 72}
}`

func newHandlerServer() *echo.Echo {
	e := echo.New()
	NewHandler(newTestService()).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func post(e *echo.Echo, target, body, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if accept != "" {
		req.Header.Set(echo.HeaderAccept, accept)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ExportQuestionnaireJSON(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/questionnaire", handlerTestForm, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != fhir.FHIRContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	var q fhir.Questionnaire
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.ID != "vorsorge" || len(q.Item) != 2 || q.Item[1].Type != "decimal" {
		t.Errorf("unexpected questionnaire %+v", q)
	}
}

func TestHandler_ExportQuestionnaireXMLByAccept(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/questionnaire", handlerTestForm, "application/fhir+xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != fhir.FHIRXMLContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `<Questionnaire xmlns="http://hl7.org/fhir">`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_ExportEnhancedResponse(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/questionnaire-response?enhanced=true&_format=xml", handlerTestForm, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!-- type: string -->") || !strings.Contains(body, `<valueDecimal value="72"/>`) {
		t.Errorf("unexpected body %s", body)
	}
}

func TestHandler_ExportBundleJSON(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/bundle", handlerTestForm, "application/fhir+json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var b fhir.Bundle
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.ResourceType != "Bundle" || len(b.Entry) != 2 {
		t.Errorf("unexpected bundle %+v", b)
	}
}

func TestHandler_NotAcceptable(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/questionnaire", handlerTestForm, "text/html")
	if rec.Code != http.StatusNotAcceptable {
		t.Fatalf("expected 406, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not-supported") {
		t.Errorf("expected not-supported outcome, got %s", rec.Body.String())
	}
}

func TestHandler_InvalidDocument(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/questionnaire", `{"elements":[{"type":"text"}]}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var oo fhir.OperationOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &oo); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(oo.Issue) != 1 || oo.Issue[0].Expression[0] != "elements[0].id" {
		t.Errorf("unexpected outcome %+v", oo)
	}
}

func TestHandler_MalformedJSON(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/bundle", `{"elements":`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_ListGDTVariables(t *testing.T) {
	rec := post(newHandlerServer(), "/api/v1/forms/gdt-variables", handlerTestForm, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var refs []GDTReference
	if err := json.Unmarshal(rec.Body.Bytes(), &refs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(refs) != 1 || refs[0].Code != "3101" || refs[0].ElementID != "q1" {
		t.Errorf("unexpected references %+v", refs)
	}
}
