// Package ratelimit bounds request rates per caller with a fixed window
// counter. The limiter fails open: a broken store must not take the analyze
// endpoint down with it.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"kyc-gateway/internal/ratelimit/metrics"
)

const keyPrefix = "rl:caller:"

// Service answers whether a caller is within its request budget.
type Service struct {
	store   CounterStore
	limit   int64
	window  time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics sets the limiter metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New builds a limiter allowing limit requests per window per caller.
func New(store CounterStore, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		limit:  int64(limit),
		window: window,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow reports whether the caller may proceed. Store errors are logged and
// treated as allowed.
func (s *Service) Allow(ctx context.Context, caller string) bool {
	count, err := s.store.Incr(ctx, keyPrefix+caller, s.window)
	if err != nil {
		s.metrics.IncStoreFailure()
		if s.logger != nil {
			s.logger.WarnContext(ctx, "rate limit store error, failing open",
				"caller", caller,
				"error", err.Error(),
			)
		}
		return true
	}

	if count > s.limit {
		s.metrics.IncCheck("limited")
		return false
	}
	s.metrics.IncCheck("allowed")
	return true
}
