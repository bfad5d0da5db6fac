// Package middleware holds the HTTP middleware shared across routes.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"kyc-gateway/pkg/requestcontext"
)

// HeaderRequestID is the correlation header honored on requests and echoed on
// responses.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns every request a correlation id. An inbound X-Request-ID
// is trusted as-is so callers can stitch traces across systems.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
