package formbuilder

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	forms := api.Group("/forms")
	forms.POST("/questionnaire", h.ExportQuestionnaire)
	forms.POST("/questionnaire-response", h.ExportQuestionnaireResponse)
	forms.POST("/bundle", h.ExportBundle)
	forms.POST("/gdt-variables", h.ListGDTVariables)
}

func (h *Handler) ExportQuestionnaire(c echo.Context) error {
	return h.export(c, KindQuestionnaire, false)
}

func (h *Handler) ExportQuestionnaireResponse(c echo.Context) error {
	enhanced, _ := strconv.ParseBool(c.QueryParam("enhanced"))
	return h.export(c, KindResponse, enhanced)
}

func (h *Handler) ExportBundle(c echo.Context) error {
	return h.export(c, KindBundle, false)
}

func (h *Handler) ListGDTVariables(c echo.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return outcomeError(c, err)
	}
	return c.JSON(http.StatusOK, h.svc.GDTVariables(doc))
}

func (h *Handler) export(c echo.Context, kind ExportKind, enhanced bool) error {
	format, ok := fhir.NegotiateFormat(c)
	if !ok {
		return writeOutcome(c, http.StatusNotAcceptable,
			fhir.NotSupportedOutcome("supported formats are application/fhir+json and application/fhir+xml"))
	}
	doc, err := readDocument(c)
	if err != nil {
		return outcomeError(c, err)
	}
	body, err := h.svc.Render(c.Request().Context(), kind, doc, format, enhanced)
	if err != nil {
		return outcomeError(c, err)
	}
	return c.Blob(http.StatusOK, format.ContentType(), body)
}

func readDocument(c echo.Context) (*FormDocument, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var herr *echo.HTTPError
		if errors.As(err, &herr) {
			return nil, herr
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}
	return DecodeDocument(body)
}

// outcomeError maps export errors to OperationOutcome responses. Echo errors
// such as an exceeded body limit keep their own status.
func outcomeError(c echo.Context, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return writeOutcome(c, http.StatusBadRequest, verr.Outcome())
	}
	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		return herr
	}
	return writeOutcome(c, http.StatusInternalServerError, fhir.InternalErrorOutcome(err.Error()))
}

func writeOutcome(c echo.Context, status int, oo *fhir.OperationOutcome) error {
	c.Response().Header().Set(echo.HeaderContentType, fhir.FHIRContentType)
	return c.JSON(status, oo)
}
