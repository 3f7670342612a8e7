package fhir

import "fmt"

// OperationOutcome severity levels per FHIR R4.
const (
	IssueSeverityFatal       = "fatal"
	IssueSeverityError       = "error"
	IssueSeverityWarning     = "warning"
	IssueSeverityInformation = "information"
)

// OperationOutcome issue type codes per FHIR R4.
const (
	IssueTypeInvalid      = "invalid"
	IssueTypeStructure    = "structure"
	IssueTypeRequired     = "required"
	IssueTypeValue        = "value"
	IssueTypeNotFound     = "not-found"
	IssueTypeProcessing   = "processing"
	IssueTypeNotSupported = "not-supported"
	IssueTypeException    = "exception"
	IssueTypeTooLong      = "too-long"
	IssueTypeCodeInvalid  = "code-invalid"
)

// HasErrors returns true if the outcome contains any error or fatal issues.
func (o *OperationOutcome) HasErrors() bool {
	for _, issue := range o.Issue {
		if issue.Severity == IssueSeverityError || issue.Severity == IssueSeverityFatal {
			return true
		}
	}
	return false
}

// ValidationOutcome creates an OperationOutcome for a single invalid field.
func ValidationOutcome(field, message string) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue: []OperationOutcomeIssue{
			{
				Severity:    IssueSeverityError,
				Code:        IssueTypeInvalid,
				Diagnostics: fmt.Sprintf("%s: %s", field, message),
				Expression:  []string{field},
			},
		},
	}
}

// MultipleIssuesOutcome wraps already-built issues in an OperationOutcome.
func MultipleIssuesOutcome(issues []OperationOutcomeIssue) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue:        issues,
	}
}

// NotSupportedOutcome creates an OperationOutcome for unsupported requests.
func NotSupportedOutcome(diagnostics string) *OperationOutcome {
	return NewOperationOutcome(IssueSeverityError, IssueTypeNotSupported, diagnostics)
}

// InternalErrorOutcome creates an OperationOutcome for internal server errors.
func InternalErrorOutcome(diagnostics string) *OperationOutcome {
	return NewOperationOutcome(IssueSeverityFatal, IssueTypeException, diagnostics)
}
