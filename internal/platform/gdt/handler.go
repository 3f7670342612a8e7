package gdt

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/formbuilder/internal/platform/fhir"
	"github.com/ehr/formbuilder/pkg/pagination"
)

// Handler exposes the registry read-only over HTTP.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/gdt")
	g.GET("", h.ListMappings)
	g.GET("/:code", h.GetMapping)
	g.GET("/:code/variable", h.GetVariable)
	g.POST("/:code/validate", h.Validate)
}

// VariableResponse is the placeholder derived for a code.
type VariableResponse struct {
	Code     string `json:"code"`
	Variable string `json:"variable"`
}

type validateRequest struct {
	Value string `json:"value"`
}

// ValidateResponse reports whether a value fits a field.
type ValidateResponse struct {
	Code   string `json:"code"`
	Value  string `json:"value"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ListMappings returns mappings whose name contains ?name=, paginated.
func (h *Handler) ListMappings(c echo.Context) error {
	pg := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.Page(SearchByName(c.QueryParam("name")), pg))
}

func (h *Handler) GetMapping(c echo.Context) error {
	code := c.Param("code")
	m, ok := GetMapping(code)
	if !ok {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("GDT code", code))
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) GetVariable(c echo.Context) error {
	code := c.Param("code")
	v, ok := CodeToVariable(code)
	if !ok {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("GDT code", code))
	}
	return c.JSON(http.StatusOK, VariableResponse{Code: code, Variable: v})
}

func (h *Handler) Validate(c echo.Context) error {
	code := c.Param("code")
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := ValidateValue(code, req.Value)
	if errors.Is(err, ErrUnknownCode) {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("GDT code", code))
	}

	resp := ValidateResponse{Code: code, Value: req.Value, Valid: err == nil}
	var fe *FieldError
	if errors.As(err, &fe) {
		resp.Reason = fe.Reason
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
