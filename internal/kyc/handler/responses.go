package handler

import "kyc-gateway/internal/decision"

// PublicDecision is the caller-facing subset of a decision. Internal scores
// stay in the decision log and are deliberately absent here.
type PublicDecision struct {
	Status      decision.Status    `json:"status"`
	AutoApprove bool               `json:"auto_approve"`
	RiskLevel   decision.RiskLevel `json:"risk_level"`
	Summary     string             `json:"summary"`
	Reasons     []string           `json:"reasons"`
}

// AnalyzeResponse is the body of a successful analyze call.
type AnalyzeResponse struct {
	RequestID string         `json:"request_id"`
	Decision  PublicDecision `json:"decision"`
}

func publicDecision(d decision.Decision) PublicDecision {
	return PublicDecision{
		Status:      d.Status,
		AutoApprove: d.AutoApprove,
		RiskLevel:   d.RiskLevel,
		Summary:     d.Summary,
		Reasons:     d.Reasons,
	}
}
