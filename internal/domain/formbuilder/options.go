package formbuilder

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultAnswerCodeSystem is the local code system used for answer option
// codings. It is a placeholder, not a published terminology.
const DefaultAnswerCodeSystem = "http://example.org/answer-codes"

// renderingXHTMLURL carries an element description on its questionnaire item.
const renderingXHTMLURL = "http://hl7.org/fhir/StructureDefinition/rendering-xhtml"

// exportConfig is shared by both exporters.
type exportConfig struct {
	answerSystem string
	now          func() time.Time
	newID        func() string
	logger       zerolog.Logger
}

func defaultExportConfig() exportConfig {
	return exportConfig{
		answerSystem: DefaultAnswerCodeSystem,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
		logger:       zerolog.Nop(),
	}
}

// ExportOption configures an exporter.
type ExportOption func(*exportConfig)

// WithAnswerCodeSystem sets the system URI of answer option codings. Empty
// values are ignored.
func WithAnswerCodeSystem(system string) ExportOption {
	return func(c *exportConfig) {
		if system != "" {
			c.answerSystem = system
		}
	}
}

// WithClock sets the time source used for default dates and timestamps.
func WithClock(now func() time.Time) ExportOption {
	return func(c *exportConfig) { c.now = now }
}

// WithIDGenerator sets the generator for resource ids that are not supplied
// by the form metadata.
func WithIDGenerator(newID func() string) ExportOption {
	return func(c *exportConfig) { c.newID = newID }
}

// WithLogger sets the logger used to report answers that cannot be encoded.
func WithLogger(logger zerolog.Logger) ExportOption {
	return func(c *exportConfig) { c.logger = logger }
}

func newExportConfig(opts []ExportOption) exportConfig {
	cfg := defaultExportConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
