package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kyc-gateway/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

type RateLimitSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *RateLimitSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func TestRateLimitSuite(t *testing.T) {
	suite.Run(t, new(RateLimitSuite))
}

func (s *RateLimitSuite) TestAllowUpToLimit() {
	svc := New(NewMemoryStore(), 3, time.Minute, s.logger)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.True(svc.Allow(ctx, "caller-a"))
	}
	s.False(svc.Allow(ctx, "caller-a"))

	// A different caller has its own budget.
	s.True(svc.Allow(ctx, "caller-b"))
}

func (s *RateLimitSuite) TestWindowResets() {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	svc := New(store, 1, time.Minute, s.logger)
	ctx := context.Background()

	s.True(svc.Allow(ctx, "caller"))
	s.False(svc.Allow(ctx, "caller"))

	now = now.Add(2 * time.Minute)
	s.True(svc.Allow(ctx, "caller"))
}

func (s *RateLimitSuite) TestFailsOpenOnStoreError() {
	svc := New(failingStore{}, 1, time.Minute, s.logger)
	s.True(svc.Allow(context.Background(), "caller"))
}

func (s *RateLimitSuite) TestMiddlewareKeysByCaller() {
	svc := New(NewMemoryStore(), 1, time.Minute, s.logger)
	h := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(caller string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if caller != "" {
			req = req.WithContext(requestcontext.WithCallerID(req.Context(), caller))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	s.Equal(http.StatusOK, request("alice"))
	s.Equal(http.StatusTooManyRequests, request("alice"))
	s.Equal(http.StatusOK, request("bob"))

	// Anonymous requests fall back to the remote IP key.
	s.Equal(http.StatusOK, request(""))
	s.Equal(http.StatusTooManyRequests, request(""))
}
