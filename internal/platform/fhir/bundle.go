package fhir

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/ehr/formbuilder/pkg/fhirmodels"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Timestamp    *time.Time    `json:"timestamp,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

// NewCollectionBundle creates a collection Bundle holding resources in the
// given order. Each entry gets a urn:uuid fullUrl built from the resource id.
func NewCollectionBundle(id string, timestamp time.Time, resources ...interface{}) (*Bundle, error) {
	entries := make([]BundleEntry, 0, len(resources))
	for i, r := range resources {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshal bundle entry %d: %w", i, err)
		}
		entries = append(entries, BundleEntry{
			FullURL:  entryFullURL(raw),
			Resource: raw,
		})
	}

	ts := timestamp.UTC()
	return &Bundle{
		ResourceType: "Bundle",
		ID:           id,
		Type:         fhirmodels.BundleTypeCollection,
		Timestamp:    &ts,
		Entry:        entries,
	}, nil
}

// entryFullURL builds a urn:uuid reference from the marshalled resource's id.
func entryFullURL(raw json.RawMessage) string {
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.ID == "" {
		return ""
	}
	return "urn:uuid:" + head.ID
}
