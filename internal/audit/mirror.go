package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"kyc-gateway/internal/audit/metrics"
)

// Mirror publishes a copy of every audit record to a Kafka topic so review
// tooling can consume the trail without tailing files. Publishes are
// asynchronous and best-effort; the files remain the source of truth.
type Mirror struct {
	client  *kgo.Client
	topic   string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewMirror connects to the brokers and makes sure the topic exists. Topic
// creation failures are logged and ignored: the cluster may manage topics
// itself.
func NewMirror(ctx context.Context, brokers []string, topic string, logger *slog.Logger, m *metrics.Metrics) (*Mirror, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("connect audit mirror: %w", err)
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopics(ctx, -1, -1, nil, topic); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "audit mirror topic creation failed", "topic", topic, "error", err)
		}
	}

	return &Mirror{client: client, topic: topic, logger: logger, metrics: m}, nil
}

// Publish mirrors one record line. Failures are counted and logged, never
// propagated: losing a mirror copy must not affect the request.
func (mr *Mirror) Publish(ctx context.Context, kind, requestID string, line []byte) {
	record := &kgo.Record{
		Topic: mr.topic,
		Key:   []byte(kind),
		Value: line,
		Headers: []kgo.RecordHeader{
			{Key: "request_id", Value: []byte(requestID)},
		},
	}
	mr.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			mr.metrics.IncMirrorFailures()
			if mr.logger != nil {
				mr.logger.Warn("audit mirror publish failed", "log", kind, "request_id", requestID, "error", err)
			}
		}
	})
}

// Close flushes buffered records and releases the client.
func (mr *Mirror) Close() {
	mr.client.Close()
}
