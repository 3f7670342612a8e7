// Package jsoncodec plugs goccy/go-json into echo for request binding and
// response encoding.
package jsoncodec

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// Serializer implements echo.JSONSerializer.
type Serializer struct{}

func (Serializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (Serializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v",
				typeErr.Type, typeErr.Value, typeErr.Field, typeErr.Offset)).SetInternal(err)
	case errors.As(err, &syntaxErr):
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Syntax error: offset=%v, error=%v", syntaxErr.Offset, syntaxErr.Error())).SetInternal(err)
	}
	return err
}
