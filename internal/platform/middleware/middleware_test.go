package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"kyc-gateway/internal/auth"
	"kyc-gateway/pkg/requestcontext"
)

type MiddlewareSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *MiddlewareSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) TestRequestIDGenerated() {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	s.NotEmpty(seen)
	s.Equal(seen, rec.Header().Get(HeaderRequestID))
}

func (s *MiddlewareSuite) TestRequestIDPropagated() {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "upstream-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	s.Equal("upstream-id", seen)
	s.Equal("upstream-id", rec.Header().Get(HeaderRequestID))
}

func (s *MiddlewareSuite) TestRecoveryTurnsPanicInto500() {
	h := Recovery(s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	s.NotPanics(func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "boom")
}

func (s *MiddlewareSuite) TestRequireJWT() {
	validator := auth.NewJWTValidator("key")
	var caller string
	h := RequireJWT(validator, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller = requestcontext.CallerID(r.Context())
	}))

	s.Run("missing header", func() {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("invalid token", func() {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("valid token", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
			CallerID: "caller-9",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("key"))
		s.Require().NoError(err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("caller-9", caller)
	})
}
