// Package kyc orchestrates one verification run: recognition and face
// matching in parallel, field extraction, PII hashing, audit records, and the
// final decision. Stage failures are isolated so a single weak collaborator
// still yields a decision wherever the contract allows one.
package kyc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"kyc-gateway/internal/audit"
	"kyc-gateway/internal/decision"
	decisionmetrics "kyc-gateway/internal/decision/metrics"
	"kyc-gateway/internal/extract"
	"kyc-gateway/internal/kyc/metrics"
	"kyc-gateway/internal/pii"
	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/requestcontext"
)

// Service runs the KYC pipeline.
type Service struct {
	recognizer DocumentRecognizer
	matcher    FaceMatcher
	keys       *pii.Keyring
	auditlog   *audit.Logger

	logger          *slog.Logger
	metrics         *metrics.Metrics
	decisionMetrics *decisionmetrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics sets the pipeline metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDecisionMetrics sets the decision outcome collector.
func WithDecisionMetrics(m *decisionmetrics.Metrics) Option {
	return func(s *Service) {
		s.decisionMetrics = m
	}
}

// NewService wires the pipeline's collaborators and side channels.
func NewService(recognizer DocumentRecognizer, matcher FaceMatcher, keys *pii.Keyring, auditlog *audit.Logger, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		recognizer: recognizer,
		matcher:    matcher,
		keys:       keys,
		auditlog:   auditlog,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one pipeline run. Only the public decision subset
// leaves the process; internal scores stay in the audit trail.
type Result struct {
	RequestID string
	Decision  decision.Decision
}

// Analyze runs the full pipeline over one document/selfie pair.
//
// Recognition and face matching have no data dependency and run
// concurrently; their errors are captured rather than propagated through the
// group so one failing collaborator cannot cancel the other. Recognition
// failure is fatal. Face-match failure degrades to the safe-fail result.
// Hashing and audit appends are best-effort side steps.
func (s *Service) Analyze(ctx context.Context, idDocument, selfie []byte) (*Result, error) {
	start := time.Now()

	if len(idDocument) == 0 || len(selfie) == 0 {
		s.metrics.IncFailures("empty_input")
		return nil, dErrors.New(dErrors.CodeInvalidInput, "empty upload")
	}

	requestID := requestcontext.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var (
		recognition extract.RawRecognitionResult
		recErr      error
		faceResult  decision.FaceMatchResult
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stageStart := time.Now()
		recognition, recErr = s.recognizer.Recognize(gctx, idDocument)
		s.metrics.ObserveStageLatency("recognition", time.Since(stageStart))
		// Captured, not returned: a recognition failure must not cancel
		// the face-match stage through the shared context.
		return nil
	})

	g.Go(func() error {
		stageStart := time.Now()
		faceResult = s.matcher.Verify(gctx, idDocument, selfie)
		s.metrics.ObserveStageLatency("face_match", time.Since(stageStart))
		return nil
	})

	_ = g.Wait()

	if recErr != nil {
		s.metrics.IncFailures("recognition")
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "document recognition failed",
				"request_id", requestID,
				"error", recErr,
			)
		}
		return nil, dErrors.New(dErrors.CodeUpstream, "failed to process document")
	}

	if faceResult.Error != "" && s.logger != nil {
		s.logger.WarnContext(ctx, "face matching degraded to safe-fail",
			"request_id", requestID,
			"error", faceResult.Error,
		)
	}

	fields := extract.ExtractFields(recognition.Text)
	ocrConfidence := extract.AverageConfidence(recognition.Words)

	s.recordHashes(ctx, requestID, fields, recognition)

	result := decision.Make(ocrConfidence, faceResult)
	s.auditlog.AppendDecisionLog(ctx, requestID, result, audit.SummarizeFields(fields))
	s.decisionMetrics.IncrementOutcome(string(result.Status), string(result.RiskLevel))
	s.metrics.ObserveAnalyzeLatency(time.Since(start))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "kyc analyzed",
			"request_id", requestID,
			"status", result.Status,
			"risk", result.RiskLevel,
			"ocr_conf", result.InternalScores.OCRConf,
			"face_score", result.InternalScores.FaceScore,
			"liveness", result.InternalScores.LivenessPassed,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return &Result{RequestID: requestID, Decision: result}, nil
}

// recordHashes digests the extracted fields and appends the hash record.
// Failures skip the record; they never abort the pipeline.
func (s *Service) recordHashes(ctx context.Context, requestID string, fields extract.ExtractedFields, recognition extract.RawRecognitionResult) {
	hashed, err := s.keys.HashKYCFields(fields.Name, fields.DOB, fields.IDNumber, fields.AddressSnippet)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "field hashing failed, skipping hash record",
				"request_id", requestID,
				"error", err,
			)
		}
		s.auditlog.AppendHashLog(ctx, requestID, nil, audit.Meta{})
		return
	}

	meta := audit.Meta{
		FieldsPresent: map[string]bool{
			"name":      fields.Name != nil,
			"dob":       fields.DOB != nil,
			"id_number": fields.IDNumber != nil,
			"address":   fields.AddressSnippet != nil,
		},
		OCRWordCount: extract.WordCount(recognition.Words),
	}
	s.auditlog.AppendHashLog(ctx, requestID, &hashed, meta)
}
