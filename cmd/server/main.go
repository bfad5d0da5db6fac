package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kyc-gateway/internal/audit"
	auditmetrics "kyc-gateway/internal/audit/metrics"
	"kyc-gateway/internal/auth"
	decisionmetrics "kyc-gateway/internal/decision/metrics"
	"kyc-gateway/internal/engines/face"
	"kyc-gateway/internal/engines/ocr"
	"kyc-gateway/internal/kyc"
	kychandler "kyc-gateway/internal/kyc/handler"
	kycmetrics "kyc-gateway/internal/kyc/metrics"
	"kyc-gateway/internal/pii"
	"kyc-gateway/internal/platform/config"
	"kyc-gateway/internal/platform/httpserver"
	"kyc-gateway/internal/platform/logger"
	"kyc-gateway/internal/platform/middleware"
	platformredis "kyc-gateway/internal/platform/redis"
	"kyc-gateway/internal/ratelimit"
	ratelimitmetrics "kyc-gateway/internal/ratelimit/metrics"
	httptransport "kyc-gateway/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	keys, err := pii.NewKeyring(cfg.PIIHashSecret)
	if err != nil {
		log.Error("invalid PII hash secret", "error", err)
		os.Exit(1)
	}
	if cfg.PIIHashSecret == "" {
		log.Warn("PII_HASH_SECRET not set, using an ephemeral key; hashes will not be comparable across restarts")
	}

	auditMetrics := auditmetrics.New()
	auditOpts := []audit.Option{audit.WithMetrics(auditMetrics)}

	ctx := context.Background()
	if len(cfg.Kafka.Brokers) > 0 {
		mirror, err := audit.NewMirror(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log, auditMetrics)
		if err != nil {
			log.Error("audit mirror unavailable", "error", err)
			os.Exit(1)
		}
		defer mirror.Close()
		auditOpts = append(auditOpts, audit.WithMirror(mirror))
	}

	auditlog := audit.NewLogger(
		audit.NewFileSink(cfg.HashLogPath),
		audit.NewFileSink(cfg.DecisionLogPath),
		log,
		auditOpts...,
	)

	var recognizer kyc.DocumentRecognizer
	if cfg.OCREngineURL != "" {
		recognizer = ocr.NewClient(cfg.OCREngineURL)
	} else {
		log.Warn("OCR_ENGINE_URL not set, using mock recognizer")
		recognizer = &ocr.MockClient{}
	}

	var matcher kyc.FaceMatcher
	if cfg.FaceEngineURL != "" {
		matcher = face.NewClient(cfg.FaceEngineURL)
	} else {
		log.Warn("FACE_ENGINE_URL not set, using mock face matcher")
		matcher = &face.MockClient{}
	}

	service := kyc.NewService(recognizer, matcher, keys, auditlog, log,
		kyc.WithMetrics(kycmetrics.New()),
		kyc.WithDecisionMetrics(decisionmetrics.New()),
	)

	routerOpts := httptransport.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}

	switch cfg.AuthMode {
	case config.AuthModeJWT:
		if cfg.JWTSigningKey == "" {
			log.Error("AUTH_MODE=jwt requires JWT_SIGNING_KEY")
			os.Exit(1)
		}
		routerOpts.Auth = middleware.RequireJWT(auth.NewJWTValidator(cfg.JWTSigningKey), log)
	case config.AuthModeAPIKey:
		if cfg.APIKeyHash == "" {
			log.Error("AUTH_MODE=api_key requires API_KEY_HASH")
			os.Exit(1)
		}
		routerOpts.Auth = middleware.RequireAPIKey(auth.NewAPIKeyValidator(cfg.APIKeyHash), log)
	case config.AuthModeNone:
		log.Warn("authentication disabled")
	default:
		log.Error("unknown AUTH_MODE", "mode", cfg.AuthMode)
		os.Exit(1)
	}

	if cfg.RateLimit.Requests > 0 {
		redisClient, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("redis unavailable", "error", err)
			os.Exit(1)
		}

		var store ratelimit.CounterStore
		if redisClient != nil {
			defer redisClient.Close()
			store = ratelimit.NewRedisStore(redisClient.Client)
		} else {
			log.Warn("REDIS_URL not set, rate limit counters are per-instance")
			store = ratelimit.NewMemoryStore()
		}
		routerOpts.Limiter = ratelimit.New(store, cfg.RateLimit.Requests, cfg.RateLimit.Window, log,
			ratelimit.WithMetrics(ratelimitmetrics.New()),
		)
	}

	handler := kychandler.New(service, log, kychandler.WithMaxUploadBytes(cfg.MaxUploadBytes))
	router := httptransport.NewRouter(handler, log, routerOpts)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting kyc-gateway", "addr", cfg.Addr, "auth_mode", cfg.AuthMode)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("kyc-gateway stopped")
}
