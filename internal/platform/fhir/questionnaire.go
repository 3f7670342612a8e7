package fhir

import (
	"github.com/goccy/go-json"
)

// Questionnaire is the subset of the FHIR R4 Questionnaire resource produced
// by the form exporter.
type Questionnaire struct {
	ResourceType string              `json:"resourceType"`
	ID           string              `json:"id"`
	URL          string              `json:"url,omitempty"`
	Status       string              `json:"status"`
	Title        string              `json:"title,omitempty"`
	Version      string              `json:"version,omitempty"`
	Publisher    string              `json:"publisher,omitempty"`
	Description  string              `json:"description,omitempty"`
	Date         string              `json:"date,omitempty"`
	Item         []QuestionnaireItem `json:"item,omitempty"`
}

// QuestionnaireItem is one question, display block or group. MinLength and
// MaxOccurs are not part of core FHIR but are carried for form round-trips.
type QuestionnaireItem struct {
	LinkID         string              `json:"linkId"`
	Prefix         string              `json:"prefix,omitempty"`
	Text           string              `json:"text,omitempty"`
	Type           string              `json:"type"`
	Code           []Coding            `json:"code,omitempty"`
	EnableWhen     json.RawMessage     `json:"enableWhen,omitempty"`
	Required       *bool               `json:"required,omitempty"`
	Repeats        *bool               `json:"repeats,omitempty"`
	ReadOnly       *bool               `json:"readOnly,omitempty"`
	MaxLength      *int                `json:"maxLength,omitempty"`
	MinLength      *int                `json:"minLength,omitempty"`
	MaxOccurs      *int                `json:"maxOccurs,omitempty"`
	AnswerValueSet string              `json:"answerValueSet,omitempty"`
	AnswerOption   []AnswerOption      `json:"answerOption,omitempty"`
	Extension      []Extension         `json:"extension,omitempty"`
	Item           []QuestionnaireItem `json:"item,omitempty"`
}

// AnswerOption is a permitted answer for a choice item.
type AnswerOption struct {
	ValueCoding *Coding `json:"valueCoding,omitempty"`
}

// FindItem searches the item tree depth-first for linkID.
func (q *Questionnaire) FindItem(linkID string) (*QuestionnaireItem, bool) {
	if q == nil {
		return nil, false
	}
	return findItem(q.Item, linkID)
}

func findItem(items []QuestionnaireItem, linkID string) (*QuestionnaireItem, bool) {
	for i := range items {
		if items[i].LinkID == linkID {
			return &items[i], true
		}
		if found, ok := findItem(items[i].Item, linkID); ok {
			return found, true
		}
	}
	return nil, false
}

// CountItems returns the number of items in the tree, nested ones included.
func (q *Questionnaire) CountItems() int {
	return countItems(q.Item)
}

func countItems(items []QuestionnaireItem) int {
	n := len(items)
	for _, it := range items {
		n += countItems(it.Item)
	}
	return n
}

// QuestionnaireResponse is the subset of the FHIR R4 QuestionnaireResponse
// resource produced by the form exporter.
type QuestionnaireResponse struct {
	ResourceType  string                      `json:"resourceType"`
	ID            string                      `json:"id"`
	Questionnaire string                      `json:"questionnaire,omitempty"`
	Status        string                      `json:"status"`
	Authored      string                      `json:"authored,omitempty"`
	Item          []QuestionnaireResponseItem `json:"item,omitempty"`
}

// QuestionnaireResponseItem holds the answers for one questionnaire item.
// A nil Answer means the question was not answered.
type QuestionnaireResponseItem struct {
	LinkID string                        `json:"linkId"`
	Text   string                        `json:"text,omitempty"`
	Answer []QuestionnaireResponseAnswer `json:"answer,omitempty"`
	Item   []QuestionnaireResponseItem   `json:"item,omitempty"`
}

// QuestionnaireResponseAnswer carries exactly one populated value field.
type QuestionnaireResponseAnswer struct {
	ValueString   *string  `json:"valueString,omitempty"`
	ValueBoolean  *bool    `json:"valueBoolean,omitempty"`
	ValueDecimal  *float64 `json:"valueDecimal,omitempty"`
	ValueInteger  *int     `json:"valueInteger,omitempty"`
	ValueDate     *string  `json:"valueDate,omitempty"`
	ValueDateTime *string  `json:"valueDateTime,omitempty"`
	ValueTime     *string  `json:"valueTime,omitempty"`
	ValueCoding   *Coding  `json:"valueCoding,omitempty"`
}

// CountItems returns the number of items in the tree, nested ones included.
func (r *QuestionnaireResponse) CountItems() int {
	return countResponseItems(r.Item)
}

// CountAnswers returns the number of answers across the whole item tree.
func (r *QuestionnaireResponse) CountAnswers() int {
	return countResponseAnswers(r.Item)
}

func countResponseItems(items []QuestionnaireResponseItem) int {
	n := len(items)
	for _, it := range items {
		n += countResponseItems(it.Item)
	}
	return n
}

func countResponseAnswers(items []QuestionnaireResponseItem) int {
	n := 0
	for _, it := range items {
		n += len(it.Answer) + countResponseAnswers(it.Item)
	}
	return n
}
