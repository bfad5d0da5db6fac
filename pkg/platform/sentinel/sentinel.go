package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Collaborator clients return these
// (optionally wrapped) so the pipeline can decide between fatal and
// degrade-and-continue without string matching.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrRecognition = errors.New("recognition failed")
)
