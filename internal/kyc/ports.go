package kyc

import (
	"context"

	"kyc-gateway/internal/decision"
	"kyc-gateway/internal/extract"
)

// DocumentRecognizer turns a document image into raw text plus per-word
// confidences. A returned error is fatal to the request: the pipeline cannot
// decide without recognized text.
type DocumentRecognizer interface {
	Recognize(ctx context.Context, image []byte) (extract.RawRecognitionResult, error)
}

// FaceMatcher compares the document photo against the selfie. It never
// returns an error; failures surface as a safe-fail result with the Error
// field set.
type FaceMatcher interface {
	Verify(ctx context.Context, idImage, selfie []byte) decision.FaceMatchResult
}
