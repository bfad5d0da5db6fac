package decision

// Status is the categorical outcome of a KYC evaluation.
type Status string

const (
	StatusApproved     Status = "approved"
	StatusManualReview Status = "manual_review"
	StatusRejected     Status = "rejected"
)

// RiskLevel grades how strongly the signals argue against auto-approval.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// FaceMatchResult is the face-matching collaborator's judgment. Error set
// means the collaborator failed and the other fields hold safe-fail defaults;
// the engine treats every field as untrusted input either way.
type FaceMatchResult struct {
	Verified       bool    `json:"face_verified"`
	Score          float64 `json:"face_score"`
	LivenessPassed bool    `json:"liveness_passed"`
	Error          string  `json:"error,omitempty"`
}

// SafeFail is the conservative substitute used when face matching cannot run.
// It biases the decision toward stricter review rather than silent approval.
func SafeFail(reason string) FaceMatchResult {
	return FaceMatchResult{Error: reason}
}

// InternalScores echoes the raw inputs a decision was computed from. It is
// written to the decision log for review tooling and never returned to the
// external caller.
type InternalScores struct {
	OCRConf        float64 `json:"ocr_conf"`
	FaceVerified   bool    `json:"face_verified"`
	FaceScore      float64 `json:"face_score"`
	LivenessPassed bool    `json:"liveness_passed"`
}

// Decision is the full evaluation outcome. AutoApprove always equals
// (Status == StatusApproved) and Reasons is never empty.
type Decision struct {
	Status         Status         `json:"status"`
	AutoApprove    bool           `json:"auto_approve"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Summary        string         `json:"summary"`
	Reasons        []string       `json:"reasons"`
	InternalScores InternalScores `json:"internal_scores"`
}
