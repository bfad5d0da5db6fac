package ratelimit

import (
	"net"
	"net/http"

	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/httputil"
	"kyc-gateway/pkg/requestcontext"
)

// Middleware enforces the limit per caller. Authenticated callers are keyed
// by identity, anonymous ones by remote IP.
func Middleware(limiter *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			caller := requestcontext.CallerID(ctx)
			if caller == "" {
				caller = remoteIP(r)
			}

			if !limiter.Allow(ctx, caller) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeTooManyReqs, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
