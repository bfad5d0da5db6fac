// Package audit appends structured records about each pipeline run to
// durable append-only logs. Records carry salted hashes and decision
// metadata, never raw recognized text.
package audit

import (
	"time"

	"kyc-gateway/internal/decision"
	"kyc-gateway/internal/extract"
	"kyc-gateway/internal/pii"
)

// Log kinds, used for metrics labels and the Kafka mirror key.
const (
	KindHash     = "hash"
	KindDecision = "decision"
)

// HashRecord is one hash-log entry: the salted digests of the extracted
// fields plus presence metadata for review tooling.
type HashRecord struct {
	Timestamp    string             `json:"timestamp"`
	RequestID    string             `json:"request_id"`
	HashedFields pii.HashedFieldSet `json:"hashed_fields"`
	Meta         Meta               `json:"meta"`
}

// Meta records which fields were located and how much text the recognition
// engine produced, without carrying any field values.
type Meta struct {
	FieldsPresent map[string]bool `json:"fields_present"`
	OCRWordCount  int             `json:"ocr_word_count"`
}

// DecisionRecord is one decision-log entry. Fields is the redacted view of
// the extraction output; the raw recognized text can never appear here.
type DecisionRecord struct {
	Timestamp string            `json:"timestamp"`
	RequestID string            `json:"request_id"`
	Decision  decision.Decision `json:"decision"`
	Fields    FieldSummary      `json:"fields"`
}

// FieldSummary is the decision log's view of ExtractedFields. It is a
// separate type rather than a filtered map so the redaction of raw text is
// enforced at compile time: there is no field to leak.
type FieldSummary struct {
	Name           *string `json:"name,omitempty"`
	DOB            *string `json:"dob,omitempty"`
	IDNumber       *string `json:"id_number,omitempty"`
	AddressSnippet *string `json:"address_snippet,omitempty"`
}

// SummarizeFields strips the sensitive keys from an extraction result,
// keeping only the fields operations may see for triage.
func SummarizeFields(fields extract.ExtractedFields) FieldSummary {
	return FieldSummary{
		Name:           fields.Name,
		DOB:            fields.DOB,
		IDNumber:       fields.IDNumber,
		AddressSnippet: fields.AddressSnippet,
	}
}

// FormatTimestamp renders an audit timestamp: RFC3339, always UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
