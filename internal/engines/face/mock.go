package face

import (
	"context"
	"time"

	"kyc-gateway/internal/decision"
)

// MockClient returns a deterministic favorable match with a configurable
// latency. Used when no engine URL is configured.
type MockClient struct {
	Latency time.Duration
}

func (c MockClient) Verify(_ context.Context, _, _ []byte) decision.FaceMatchResult {
	time.Sleep(c.Latency)
	return decision.FaceMatchResult{Verified: true, Score: 0.82, LivenessPassed: true}
}
