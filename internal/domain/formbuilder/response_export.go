package formbuilder

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ehr/formbuilder/internal/platform/fhir"
	"github.com/ehr/formbuilder/pkg/fhirmodels"
)

// decimalPrefix matches the leading decimal literal of a string, so
// "12 kg" reads as 12.
var decimalPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// authoredLayout renders millisecond ISO-8601 timestamps in UTC.
const authoredLayout = "2006-01-02T15:04:05.000Z07:00"

// ResponseExporter builds FHIR QuestionnaireResponse resources from an
// element tree and the answers entered for it.
type ResponseExporter struct {
	cfg exportConfig
}

func NewResponseExporter(opts ...ExportOption) *ResponseExporter {
	return &ResponseExporter{cfg: newExportConfig(opts)}
}

// ToQuestionnaireResponse converts answers into a completed response. The
// questionnaire reference is meta.URL, or a urn:uuid built from meta.ID (or
// a fresh id when meta has neither).
func (x *ResponseExporter) ToQuestionnaireResponse(answers AnswerMap, elements []FormElement, meta FormMetadata) *fhir.QuestionnaireResponse {
	return x.toResponse(x.cfg.logger, answers, elements, meta)
}

func (x *ResponseExporter) toResponse(logger zerolog.Logger, answers AnswerMap, elements []FormElement, meta FormMetadata) *fhir.QuestionnaireResponse {
	ref := meta.URL
	if ref == "" {
		qid := meta.ID
		if qid == "" {
			qid = x.cfg.newID()
		}
		ref = "urn:uuid:" + qid
	}

	w := responseWalker{answers: answers, logger: logger, answerSystem: x.cfg.answerSystem}
	return &fhir.QuestionnaireResponse{
		ResourceType:  "QuestionnaireResponse",
		ID:            x.cfg.newID(),
		Questionnaire: ref,
		Status:        fhirmodels.ResponseStatusCompleted,
		Authored:      x.cfg.now().UTC().Format(authoredLayout),
		Item:          w.items(elements),
	}
}

type responseWalker struct {
	answers      AnswerMap
	logger       zerolog.Logger
	answerSystem string
}

func (w *responseWalker) items(elements []FormElement) []fhir.QuestionnaireResponseItem {
	var out []fhir.QuestionnaireResponseItem
	for i := range elements {
		el := &elements[i]
		switch el.Type {
		case ElementHeader, ElementImage:
			continue
		case ElementGroup:
			out = append(out, fhir.QuestionnaireResponseItem{
				LinkID: el.EffectiveLinkID(),
				Text:   el.Label,
				Item:   w.items(el.Elements),
			})
		default:
			out = append(out, fhir.QuestionnaireResponseItem{
				LinkID: el.EffectiveLinkID(),
				Text:   el.Label,
				Answer: w.answer(el),
			})
		}
	}
	return out
}

// answer returns nil when the element has no usable value.
func (w *responseWalker) answer(el *FormElement) []fhir.QuestionnaireResponseAnswer {
	value, ok := w.answers[el.ID]
	if !ok || isEmptyAnswer(value) {
		return nil
	}

	switch el.Type {
	case ElementText, ElementTextarea, ElementEmail:
		return []fhir.QuestionnaireResponseAnswer{{ValueString: fhir.String(stringify(value))}}

	case ElementNumber:
		f, err := parseDecimal(value)
		if err != nil {
			w.logger.Warn().Str("element_id", el.ID).Interface("value", value).Msg("dropping unparsable number answer")
			return nil
		}
		return []fhir.QuestionnaireResponseAnswer{{ValueDecimal: &f}}

	case ElementDate:
		return []fhir.QuestionnaireResponseAnswer{{ValueDate: fhir.String(stringify(value))}}
	case ElementDateTime:
		return []fhir.QuestionnaireResponseAnswer{{ValueDateTime: fhir.String(stringify(value))}}
	case ElementTime:
		return []fhir.QuestionnaireResponseAnswer{{ValueTime: fhir.String(stringify(value))}}

	case ElementSelect, ElementRadio:
		return []fhir.QuestionnaireResponseAnswer{{ValueCoding: w.coding(el, stringify(value))}}

	case ElementCheckbox:
		if selected, isList := asList(value); isList {
			var out []fhir.QuestionnaireResponseAnswer
			for _, v := range selected {
				out = append(out, fhir.QuestionnaireResponseAnswer{ValueCoding: w.coding(el, stringify(v))})
			}
			return out
		}
		return []fhir.QuestionnaireResponseAnswer{{ValueBoolean: fhir.Bool(isTrue(value))}}

	case ElementYesNo:
		return []fhir.QuestionnaireResponseAnswer{{ValueBoolean: fhir.Bool(isTrue(value))}}

	default:
		return []fhir.QuestionnaireResponseAnswer{{ValueString: fhir.String(stringify(value))}}
	}
}

// coding resolves value against the element options. An unmatched value is
// its own display.
func (w *responseWalker) coding(el *FormElement, value string) *fhir.Coding {
	display := value
	for _, opt := range el.Options {
		if opt.Value == value {
			display = opt.Label
			break
		}
	}
	return &fhir.Coding{System: w.answerSystem, Code: value, Display: display}
}

func isEmptyAnswer(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

func isTrue(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

// asList reports whether v is a sequence of selected values.
func asList(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

type decimalError struct{ value interface{} }

func (e *decimalError) Error() string {
	return "not a finite decimal: " + stringify(e.value)
}

// parseDecimal accepts numbers and numeric strings. NaN and infinities are
// rejected since FHIR decimals cannot carry them.
func parseDecimal(v interface{}) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, &decimalError{value: v}
		}
		f = parsed
	case string:
		lit := decimalPrefix.FindString(strings.TrimSpace(t))
		if lit == "" {
			return 0, &decimalError{value: v}
		}
		parsed, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return 0, &decimalError{value: v}
		}
		f = parsed
	default:
		return 0, &decimalError{value: v}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &decimalError{value: v}
	}
	return f, nil
}

// stringify renders an answer value the way a browser would coerce it to a
// string: integral numbers without a fraction, lists comma-joined.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case []string:
		return strings.Join(t, ",")
	case []interface{}:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = stringify(p)
		}
		return strings.Join(parts, ",")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
