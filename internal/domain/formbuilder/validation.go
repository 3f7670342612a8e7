package formbuilder

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError reports every problem found in a submitted form document.
type ValidationError struct {
	Issues []fhir.OperationOutcomeIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.Diagnostics)
	}
	return "invalid form document: " + strings.Join(msgs, "; ")
}

// Outcome renders the error as an OperationOutcome.
func (e *ValidationError) Outcome() *fhir.OperationOutcome {
	return fhir.MultipleIssuesOutcome(e.Issues)
}

func (e *ValidationError) add(code, path, msg string) {
	e.Issues = append(e.Issues, fhir.OperationOutcomeIssue{
		Severity:    fhir.IssueSeverityError,
		Code:        code,
		Diagnostics: fmt.Sprintf("%s: %s", path, msg),
		Expression:  []string{path},
	})
}

// DecodeDocument parses a JSON form document and validates it. Numbers in
// the answer map are kept as json.Number so that integral values keep their
// textual form.
func DecodeDocument(data []byte) (*FormDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc FormDocument
	if err := dec.Decode(&doc); err != nil {
		verr := &ValidationError{}
		verr.add(fhir.IssueTypeStructure, "document", err.Error())
		return nil, verr
	}
	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ValidateDocument checks struct constraints, the group-only children rule
// and id uniqueness across the whole tree.
func ValidateDocument(doc *FormDocument) error {
	verr := &ValidationError{}

	if err := validate.Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.add(issueCode(fe.Tag()), fieldPath(fe.Namespace()), describe(fe))
		}
	}

	seen := make(map[string]string)
	checkTree(doc.Elements, "elements", seen, verr)

	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

func checkTree(elements []FormElement, path string, seen map[string]string, verr *ValidationError) {
	for i := range elements {
		el := &elements[i]
		p := fmt.Sprintf("%s[%d]", path, i)
		if el.ID != "" {
			if first, dup := seen[el.ID]; dup {
				verr.add(fhir.IssueTypeInvalid, p+".id", fmt.Sprintf("duplicate id %q (first used at %s)", el.ID, first))
			} else {
				seen[el.ID] = p
			}
		}
		if len(el.Elements) > 0 && el.Type != ElementGroup {
			verr.add(fhir.IssueTypeStructure, p+".elements", fmt.Sprintf("only group elements may have children, got type %q", el.Type))
		}
		if el.MinLength != nil && el.MaxLength != nil && *el.MinLength > *el.MaxLength {
			verr.add(fhir.IssueTypeValue, p+".minLength", "must not exceed maxLength")
		}
		checkTree(el.Elements, p+".elements", seen, verr)
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func issueCode(tag string) string {
	if tag == "required" {
		return fhir.IssueTypeRequired
	}
	return fhir.IssueTypeValue
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
