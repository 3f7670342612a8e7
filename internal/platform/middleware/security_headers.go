package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders sets response headers suited to an API that returns
// clinical documents and never serves HTML.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("Referrer-Policy", "no-referrer")
			// Exports may contain patient answers.
			h.Set("Cache-Control", "no-store")
			return next(c)
		}
	}
}
