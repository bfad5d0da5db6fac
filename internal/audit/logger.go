package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"kyc-gateway/internal/audit/metrics"
	"kyc-gateway/internal/decision"
	"kyc-gateway/internal/pii"
)

// Logger writes hash and decision records to their append-only sinks.
// Appends are fire-and-forget: a failed write is logged as a diagnostic and
// counted, never surfaced to the caller, and never retried synchronously.
type Logger struct {
	hashSink     Sink
	decisionSink Sink
	mirror       *Mirror
	logger       *slog.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithMirror adds an optional Kafka mirror that receives a copy of every
// record alongside the file sinks.
func WithMirror(m *Mirror) Option {
	return func(l *Logger) {
		l.mirror = m
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Logger) {
		l.metrics = m
	}
}

// WithClock overrides the timestamp source for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// NewLogger builds an audit logger over the two sinks.
func NewLogger(hashSink, decisionSink Sink, logger *slog.Logger, opts ...Option) *Logger {
	l := &Logger{
		hashSink:     hashSink,
		decisionSink: decisionSink,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AppendHashLog records the salted digests for one request. A nil field set
// (hashing skipped upstream) is a no-op: nothing is written at all.
func (l *Logger) AppendHashLog(ctx context.Context, requestID string, hashed *pii.HashedFieldSet, meta Meta) {
	if hashed == nil {
		return
	}

	record := HashRecord{
		Timestamp:    FormatTimestamp(l.now()),
		RequestID:    requestID,
		HashedFields: *hashed,
		Meta:         meta,
	}
	l.append(ctx, KindHash, l.hashSink, requestID, record)
}

// AppendDecisionLog records the decision for one request. The fields payload
// is already redacted by type: FieldSummary has no raw-text member.
func (l *Logger) AppendDecisionLog(ctx context.Context, requestID string, d decision.Decision, fields FieldSummary) {
	record := DecisionRecord{
		Timestamp: FormatTimestamp(l.now()),
		RequestID: requestID,
		Decision:  d,
		Fields:    fields,
	}
	l.append(ctx, KindDecision, l.decisionSink, requestID, record)
}

func (l *Logger) append(ctx context.Context, kind string, sink Sink, requestID string, record any) {
	line, err := json.Marshal(record)
	if err != nil {
		l.fail(ctx, kind, requestID, err)
		return
	}

	if err := sink.Append(ctx, line); err != nil {
		l.fail(ctx, kind, requestID, err)
	} else {
		l.metrics.IncAppends(kind)
	}

	if l.mirror != nil {
		l.mirror.Publish(ctx, kind, requestID, line)
	}
}

func (l *Logger) fail(ctx context.Context, kind, requestID string, err error) {
	l.metrics.IncAppendFailures(kind)
	if l.logger != nil {
		l.logger.WarnContext(ctx, "audit append failed",
			"log", kind,
			"request_id", requestID,
			"error", err,
		)
	}
}
