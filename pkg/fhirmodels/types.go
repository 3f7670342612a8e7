package fhirmodels

// Common FHIR value set constants used across the application.

// PublicationStatus values per FHIR R4.
const (
	PublicationStatusDraft   = "draft"
	PublicationStatusActive  = "active"
	PublicationStatusRetired = "retired"
	PublicationStatusUnknown = "unknown"
)

// QuestionnaireResponseStatus values per FHIR R4.
const (
	ResponseStatusInProgress     = "in-progress"
	ResponseStatusCompleted      = "completed"
	ResponseStatusAmended        = "amended"
	ResponseStatusEnteredInError = "entered-in-error"
	ResponseStatusStopped        = "stopped"
)

// QuestionnaireItemType codes per FHIR R4.
const (
	ItemTypeGroup      = "group"
	ItemTypeDisplay    = "display"
	ItemTypeBoolean    = "boolean"
	ItemTypeDecimal    = "decimal"
	ItemTypeInteger    = "integer"
	ItemTypeDate       = "date"
	ItemTypeDateTime   = "dateTime"
	ItemTypeTime       = "time"
	ItemTypeString     = "string"
	ItemTypeText       = "text"
	ItemTypeURL        = "url"
	ItemTypeChoice     = "choice"
	ItemTypeOpenChoice = "open-choice"
	ItemTypeAttachment = "attachment"
	ItemTypeReference  = "reference"
	ItemTypeQuantity   = "quantity"
)

// BundleType values used by exports.
const (
	BundleTypeCollection = "collection"
)

