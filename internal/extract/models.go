package extract

// RawRecognitionResult is the output of the document-recognition engine:
// the raw recognized text plus per-word confidence values. It is produced
// once per request and consumed only by the field extractor.
type RawRecognitionResult struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
}

// Word is a single recognized token. Confidence is on a 0-100 scale and nil
// when the engine did not report one for this token.
type Word struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ExtractedFields holds the candidate identity fields located in recognized
// text. A nil field means "not found"; fields are never the empty string.
type ExtractedFields struct {
	RawText        string  `json:"raw_text"`
	Name           *string `json:"name,omitempty"`
	DOB            *string `json:"dob,omitempty"`
	IDNumber       *string `json:"id_number,omitempty"`
	AddressSnippet *string `json:"address_snippet,omitempty"`
}
