// Package httptransport assembles the public HTTP surface: middleware chain,
// status endpoints, metrics, and the analyze route.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	kychandler "kyc-gateway/internal/kyc/handler"
	"kyc-gateway/internal/platform/middleware"
	"kyc-gateway/internal/ratelimit"
	"kyc-gateway/pkg/platform/httputil"
)

// Options carries the optional route guards. Nil fields disable the
// corresponding middleware.
type Options struct {
	// Auth guards the analyze route when set.
	Auth func(http.Handler) http.Handler

	// Limiter bounds per-caller request rates when set.
	Limiter *ratelimit.Service

	// AllowedOrigins configures CORS. Empty means allow all.
	AllowedOrigins []string
}

// NewRouter wires all public endpoints.
func NewRouter(handler *kychandler.Handler, logger *slog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderAPIKey, middleware.HeaderRequestID},
		MaxAge:         300,
	}))

	r.Get("/", handleRoot)
	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		if opts.Limiter != nil {
			r.Use(ratelimit.Middleware(opts.Limiter))
		}
		handler.Register(r)
	})

	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "KYC gateway is running",
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
