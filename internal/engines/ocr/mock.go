package ocr

import (
	"context"
	"time"

	"kyc-gateway/internal/extract"
)

// MockClient returns deterministic recognition output with a configurable
// latency to mimic a real engine call. Used when no engine URL is configured,
// so the service stays runnable in development.
type MockClient struct {
	Latency time.Duration
}

func (c MockClient) Recognize(_ context.Context, _ []byte) (extract.RawRecognitionResult, error) {
	time.Sleep(c.Latency)
	conf := func(v float64) *float64 { return &v }
	return extract.RawRecognitionResult{
		Text: "SAMPLE GOVERNMENT\nSample Citizen\nDOB 03-02-1990\nABCDE1234F\n12 Example Street\nSample City 000000",
		Words: []extract.Word{
			{Text: "Sample", Confidence: conf(91)},
			{Text: "Citizen", Confidence: conf(88)},
			{Text: "DOB", Confidence: conf(95)},
		},
	}, nil
}
