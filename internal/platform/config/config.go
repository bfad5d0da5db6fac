// Package config builds runtime configuration from environment variables so
// main stays lean. Every knob has a development default; production overrides
// them per deployment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// AuthMode selects how callers authenticate to the analyze endpoint.
type AuthMode string

const (
	// AuthModeNone disables authentication. Development only.
	AuthModeNone AuthMode = "none"
	// AuthModeJWT requires a bearer token signed with JWTSigningKey.
	AuthModeJWT AuthMode = "jwt"
	// AuthModeAPIKey requires the X-API-Key header to match APIKeyHash.
	AuthModeAPIKey AuthMode = "api_key"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	LogLevel       string
	LogFormat      string
	MaxUploadBytes int64

	// Collaborator engines. Empty URL selects the built-in mock.
	OCREngineURL  string
	FaceEngineURL string

	// Audit trail destinations.
	HashLogPath     string
	DecisionLogPath string

	// Base64-encoded 32-byte PII hashing secret. Empty generates an
	// ephemeral key at startup.
	PIIHashSecret string

	AuthMode      AuthMode
	JWTSigningKey string
	APIKeyHash    string

	CORSAllowedOrigins []string

	Redis     RedisConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimitConfig bounds request rates per caller. Zero Requests disables
// limiting even when Redis is configured.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// KafkaConfig holds the audit mirror settings. Empty Brokers disables the
// mirror.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:           envOr("KYC_GATEWAY_ADDR", ":8080"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10<<20),

		OCREngineURL:  os.Getenv("OCR_ENGINE_URL"),
		FaceEngineURL: os.Getenv("FACE_ENGINE_URL"),

		HashLogPath:     envOr("HASH_LOG_PATH", "hash_log.jsonl"),
		DecisionLogPath: envOr("DECISION_LOG_PATH", "decision_log.jsonl"),

		PIIHashSecret: os.Getenv("PII_HASH_SECRET"),

		AuthMode:      AuthMode(envOr("AUTH_MODE", string(AuthModeNone))),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		APIKeyHash:    os.Getenv("API_KEY_HASH"),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimitConfig{
			Requests: envInt("RATE_LIMIT_REQUESTS", 0),
			Window:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: envList("KAFKA_BROKERS", nil),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "kyc.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
