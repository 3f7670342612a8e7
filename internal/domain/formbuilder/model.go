package formbuilder

import (
	"github.com/goccy/go-json"

	"github.com/ehr/formbuilder/internal/platform/fhir"
)

// ElementType tags the kind of a FormElement.
type ElementType string

const (
	ElementText       ElementType = "text"
	ElementTextarea   ElementType = "textarea"
	ElementNumber     ElementType = "number"
	ElementEmail      ElementType = "email"
	ElementSelect     ElementType = "select"
	ElementCheckbox   ElementType = "checkbox"
	ElementRadio      ElementType = "radio"
	ElementDate       ElementType = "date"
	ElementDateTime   ElementType = "dateTime"
	ElementTime       ElementType = "time"
	ElementGroup      ElementType = "group"
	ElementHeader     ElementType = "header"
	ElementImage      ElementType = "image"
	ElementYesNo      ElementType = "yesNo"
	ElementAttachment ElementType = "attachment"
	ElementReference  ElementType = "reference"
	ElementQuantity   ElementType = "quantity"
)

// Option is one selectable value of a choice-like element.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormElement is a node of the designer's element tree. Only group elements
// carry children.
type FormElement struct {
	ID          string        `json:"id" validate:"required"`
	LinkID      string        `json:"linkId,omitempty"`
	Type        ElementType   `json:"type" validate:"required"`
	Label       string        `json:"label"`
	Description string        `json:"description,omitempty"`
	Required    bool          `json:"required,omitempty"`
	Options     []Option      `json:"options,omitempty"`
	Elements    []FormElement `json:"elements,omitempty" validate:"dive"`

	MinLength *int     `json:"minLength,omitempty" validate:"omitempty,min=0"`
	MaxLength *int     `json:"maxLength,omitempty" validate:"omitempty,min=0"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`

	Code           []fhir.Coding   `json:"code,omitempty"`
	Prefix         string          `json:"prefix,omitempty"`
	ReadOnly       bool            `json:"readOnly,omitempty"`
	Repeats        bool            `json:"repeats,omitempty"`
	MaxOccurs      *int            `json:"maxOccurs,omitempty"`
	AnswerValueSet string          `json:"answerValueSet,omitempty"`
	FHIRType       string          `json:"fhirType,omitempty"`
	EnableWhen     json.RawMessage `json:"enableWhen,omitempty"`
}

// EffectiveLinkID is the identifier the element is exported under.
func (e *FormElement) EffectiveLinkID() string {
	if e.LinkID != "" {
		return e.LinkID
	}
	return e.ID
}

// FormMetadata holds the questionnaire-level descriptive fields. All fields
// are optional; exporters substitute defaults.
type FormMetadata struct {
	ID          string `json:"id,omitempty"`
	URL         string `json:"url,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=draft active retired unknown"`
	Title       string `json:"title,omitempty"`
	Version     string `json:"version,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// AnswerMap maps element ids to entered values: string, number, bool, or a
// list of strings for multi-select elements.
type AnswerMap map[string]interface{}

// FormDocument is the unit the designer hands over for export.
type FormDocument struct {
	Metadata FormMetadata  `json:"metadata"`
	Elements []FormElement `json:"elements" validate:"dive"`
	Answers  AnswerMap     `json:"answers,omitempty"`
}
