package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"kyc-gateway/internal/auth"
	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/httputil"
	"kyc-gateway/pkg/requestcontext"
)

// HeaderAPIKey carries the caller's API key in api_key auth mode.
const HeaderAPIKey = "X-API-Key"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// KeyValidator validates API keys.
type KeyValidator interface {
	ValidateKey(key string) error
}

// RequireJWT rejects requests without a valid bearer token and records the
// caller identity in the request context.
func RequireJWT(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access, missing bearer token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access, invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err.Error(),
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithCallerID(ctx, claims.CallerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAPIKey rejects requests whose X-API-Key header does not verify
// against the configured hash.
func RequireAPIKey(validator KeyValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if err := validator.ValidateKey(r.Header.Get(HeaderAPIKey)); err != nil {
				logger.WarnContext(ctx, "unauthorized access, bad API key",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
