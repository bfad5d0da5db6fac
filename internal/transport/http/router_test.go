package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kyc-gateway/internal/auth"
	"kyc-gateway/internal/decision"
	"kyc-gateway/internal/kyc"
	kychandler "kyc-gateway/internal/kyc/handler"
	"kyc-gateway/internal/platform/middleware"
	"kyc-gateway/internal/ratelimit"
)

type stubService struct{}

func (stubService) Analyze(context.Context, []byte, []byte) (*kyc.Result, error) {
	return &kyc.Result{
		RequestID: "req-1",
		Decision: decision.Decision{
			Status:      decision.StatusApproved,
			AutoApprove: true,
			RiskLevel:   decision.RiskLow,
			Summary:     "Identity verified successfully",
			Reasons:     []string{decision.ReasonAllChecksPassed},
		},
	}, nil
}

type RouterSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *RouterSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) newRouter(opts Options) http.Handler {
	h := kychandler.New(stubService{}, s.logger)
	return NewRouter(h, s.logger, opts)
}

func (s *RouterSuite) analyzeRequest() *http.Request {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, name := range []string{"id_document", "selfie"} {
		fw, err := mw.CreateFormFile(name, name+".jpg")
		s.Require().NoError(err)
		_, err = fw.Write([]byte("payload"))
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/kyc/analyze", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (s *RouterSuite) TestStatusEndpoints() {
	router := s.newRouter(Options{})

	for path, wantStatus := range map[string]string{
		"/":        "ok",
		"/healthz": "healthy",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]string
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
		s.Equal(wantStatus, body["status"])
	}
}

func (s *RouterSuite) TestMetricsExposed() {
	router := s.newRouter(Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestAnalyzeOpenByDefault() {
	router := s.newRouter(Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, s.analyzeRequest())
	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get(middleware.HeaderRequestID))
}

func (s *RouterSuite) TestAnalyzeGuardedByAuth() {
	validator := auth.NewJWTValidator("router-test-key")
	router := s.newRouter(Options{
		Auth: middleware.RequireJWT(validator, s.logger),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, s.analyzeRequest())
	s.Equal(http.StatusUnauthorized, rec.Code)

	// Status endpoints stay open.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestAnalyzeRateLimited() {
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 1, time.Minute, s.logger)
	router := s.newRouter(Options{Limiter: limiter})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, s.analyzeRequest())
	s.Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, s.analyzeRequest())
	s.Equal(http.StatusTooManyRequests, rec.Code)
}
