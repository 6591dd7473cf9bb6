package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr           string
	ModelDir       string
	LogLevel       string
	AllowedOrigins []string
	NewsCacheTTL   time.Duration
	Redis          RedisConfig
}

// RedisConfig holds connection settings for the optional Redis-backed news
// cache. An empty URL means Redis is not configured and the in-memory cache
// is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// defaultOrigins mirrors the front-end dev hosts the original API allowed.
var defaultOrigins = []string{
	"http://localhost:8081",
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:8081",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:3000",
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CRISISWATCH_ADDR")
	if addr == "" {
		addr = ":3001"
	}

	modelDir := os.Getenv("CRISISWATCH_MODEL_DIR")
	if modelDir == "" {
		modelDir = "models"
	}

	logLevel := os.Getenv("CRISISWATCH_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	origins := defaultOrigins
	if raw := os.Getenv("CRISISWATCH_ALLOWED_ORIGINS"); raw != "" {
		origins = splitAndTrim(raw)
	}

	return Server{
		Addr:           addr,
		ModelDir:       modelDir,
		LogLevel:       logLevel,
		AllowedOrigins: origins,
		NewsCacheTTL:   durationFromEnv("CRISISWATCH_NEWS_CACHE_TTL", 6*time.Hour),
		Redis: RedisConfig{
			URL:          os.Getenv("CRISISWATCH_REDIS_URL"),
			PoolSize:     intFromEnv("CRISISWATCH_REDIS_POOL_SIZE", 10),
			MinIdleConns: intFromEnv("CRISISWATCH_REDIS_MIN_IDLE", 2),
			DialTimeout:  durationFromEnv("CRISISWATCH_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationFromEnv("CRISISWATCH_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationFromEnv("CRISISWATCH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
