package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Server captures the full runtime configuration. Every field can be set with
// a USERAPI_-prefixed environment variable so main stays lean.
type Server struct {
	Addr        string
	DatabaseURL string // empty means in-memory store
	RedisURL    string // empty disables the read-through cache

	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration

	// RequireAuth forces a bearer token on mutating user routes. The default
	// mirrors the original service where auth only attributes actions.
	RequireAuth bool

	CacheTTL        time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	LogLevel        slog.Level
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:            envDefault("USERAPI_ADDR", ":8000"),
		DatabaseURL:     os.Getenv("USERAPI_DATABASE_URL"),
		RedisURL:        os.Getenv("USERAPI_REDIS_URL"),
		JWTSigningKey:   envDefault("USERAPI_JWT_SECRET_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:       envDefault("USERAPI_JWT_ISSUER", "userdir"),
		TokenTTL:        envDuration("USERAPI_TOKEN_TTL", 30*time.Minute),
		RequireAuth:     envBool("USERAPI_REQUIRE_AUTH", false),
		CacheTTL:        envDuration("USERAPI_CACHE_TTL", 5*time.Minute),
		ShutdownTimeout: envDuration("USERAPI_SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:  envDuration("USERAPI_REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:        envLevel("USERAPI_LOG_LEVEL", slog.LevelInfo),
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envLevel(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv(key))); err != nil {
		return fallback
	}
	return level
}
