package middleware

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

// BodyLimit rejects request bodies larger than limit bytes with 413 and an
// OperationOutcome. Bodies without a trustworthy Content-Length are cut off
// while being read.
func BodyLimit(limit int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}
			if req.ContentLength > limit {
				return payloadTooLarge(c, limit)
			}
			req.Body = &limitedReadCloser{ReadCloser: req.Body, remaining: limit}
			return next(c)
		}
	}
}

type limitedReadCloser struct {
	io.ReadCloser
	remaining int64
	exceeded  bool
}

func (r *limitedReadCloser) Read(p []byte) (int, error) {
	if r.exceeded {
		return 0, echo.ErrStatusRequestEntityTooLarge
	}

	// Read one byte past the limit to detect overflow.
	if int64(len(p)) > r.remaining+1 {
		p = p[:r.remaining+1]
	}
	n, err := r.ReadCloser.Read(p)
	r.remaining -= int64(n)
	if r.remaining < 0 {
		r.exceeded = true
		return 0, echo.ErrStatusRequestEntityTooLarge
	}
	return n, err
}

func payloadTooLarge(c echo.Context, limit int64) error {
	oo := fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeTooLong,
		fmt.Sprintf("request body exceeds maximum allowed size of %d bytes", limit))
	c.Response().Header().Set(echo.HeaderContentType, fhir.FHIRContentType)
	return c.JSON(http.StatusRequestEntityTooLarge, oo)
}

// ParseLimit parses a size such as "512K", "2M" or "1G". A bare number is a
// byte count.
func ParseLimit(s string) (int64, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty size")
	}
	v = strings.TrimSuffix(v, "B")

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(v, "G"):
		multiplier = 1 << 30
	case strings.HasSuffix(v, "M"):
		multiplier = 1 << 20
	case strings.HasSuffix(v, "K"):
		multiplier = 1 << 10
	}
	if multiplier > 1 {
		v = v[:len(v)-1]
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * multiplier, nil
}
