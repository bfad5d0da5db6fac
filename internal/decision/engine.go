// Package decision fuses heterogeneous verification signals into a
// categorical KYC outcome. The rules are pure domain logic - no I/O, no side
// effects - so they stay centralized and testable.
package decision

// Rule thresholds. Confidence is on the recognition engine's 0-100 scale,
// face scores on [0,1].
const (
	minOCRConfidence = 60
	minFaceScore     = 0.6
	rejectFaceScore  = 0.3
)

// Human-readable rule reasons, in the order the rules run.
const (
	ReasonLowOCRConfidence = "Low OCR confidence"
	ReasonWeakFaceMatch    = "Weak face verification"
	ReasonLivenessFailed   = "Liveness check not passed"
	ReasonVeryLowFaceScore = "Very low face similarity"
	ReasonAllChecksPassed  = "All basic checks passed"
)

var summaries = map[Status]string{
	StatusApproved:     "KYC auto-approved (low risk)",
	StatusManualReview: "KYC requires manual review",
	StatusRejected:     "KYC rejected",
}

// Make evaluates the four rules in fixed order and accumulates reasons.
// Each triggered rule sets status and risk outright rather than merging, so a
// later rule overwrites an earlier one; rejection is reachable only through
// the final rule. Do not reorder the rules - outcomes change for inputs that
// trigger more than one.
//
// A nil ocrConfidence means the engine reported no usable confidence and is
// treated as zero, so the low-confidence rule always fires.
//
// A failed liveness check carries high risk while keeping the outcome at
// manual review; only a very low similarity score rejects outright.
func Make(ocrConfidence *float64, face FaceMatchResult) Decision {
	conf := 0.0
	if ocrConfidence != nil {
		conf = *ocrConfidence
	}

	status := StatusApproved
	risk := RiskLow
	var reasons []string

	if conf < minOCRConfidence {
		status = StatusManualReview
		risk = RiskMedium
		reasons = append(reasons, ReasonLowOCRConfidence)
	}

	if !face.Verified || face.Score < minFaceScore {
		status = StatusManualReview
		risk = RiskMedium
		reasons = append(reasons, ReasonWeakFaceMatch)
	}

	if !face.LivenessPassed {
		status = StatusManualReview
		risk = RiskHigh
		reasons = append(reasons, ReasonLivenessFailed)
	}

	if face.Score < rejectFaceScore {
		status = StatusRejected
		risk = RiskHigh
		reasons = append(reasons, ReasonVeryLowFaceScore)
	}

	if len(reasons) == 0 {
		reasons = []string{ReasonAllChecksPassed}
	}

	return Decision{
		Status:      status,
		AutoApprove: status == StatusApproved,
		RiskLevel:   risk,
		Summary:     summaries[status],
		Reasons:     reasons,
		InternalScores: InternalScores{
			OCRConf:        conf,
			FaceVerified:   face.Verified,
			FaceScore:      face.Score,
			LivenessPassed: face.LivenessPassed,
		},
	}
}
