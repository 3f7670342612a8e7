package gdt

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/expr-lang/expr"
)

// ErrUnknownCode is returned when a value is validated against a code that
// is not in the registry.
var ErrUnknownCode = errors.New("gdt: unknown code")

// FieldError reports a value that does not satisfy its field definition.
type FieldError struct {
	Code   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("gdt field %s: %s", e.Code, e.Reason)
}

// ValidateValue checks value against the length, type and rule of code.
func ValidateValue(code, value string) error {
	m, ok := byCode[code]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}

	if n := utf8.RuneCountInString(value); n > m.Length {
		return &FieldError{Code: code, Reason: fmt.Sprintf("length %d exceeds %d", n, m.Length)}
	}

	switch m.Type {
	case TypeNum:
		if !isDigits(value) {
			return &FieldError{Code: code, Reason: "must contain digits only"}
		}
	case TypeDate:
		if len(value) != 8 || !isDigits(value) {
			return &FieldError{Code: code, Reason: "must be a date in TTMMJJJJ format"}
		}
		if _, err := time.Parse("02012006", value); err != nil {
			return &FieldError{Code: code, Reason: "not a calendar date"}
		}
	}

	program, ok := rules[code]
	if !ok {
		return nil
	}
	out, err := expr.Run(program, ruleEnv{Value: value})
	if err != nil {
		return &FieldError{Code: code, Reason: fmt.Sprintf("rule %q: %v", m.Rule, err)}
	}
	if passed, _ := out.(bool); !passed {
		return &FieldError{Code: code, Reason: fmt.Sprintf("violates rule %q", m.Rule)}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
