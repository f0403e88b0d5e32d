package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates all environment-derived settings so main stays lean and
// services receive explicit structs instead of reading the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Sync     SyncConfig
	Google   GoogleConfig
	Kafka    KafkaConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig captures PostgreSQL connection settings.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig captures Redis connection settings. An empty URL means Redis is
// not configured and callers fall back to the Postgres revocation list.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuthConfig captures token issuance settings.
type AuthConfig struct {
	JWTSigningKey   string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// SyncConfig captures the upstream feed settings for the sync reconciler.
type SyncConfig struct {
	BaseURL      string
	FetchTimeout time.Duration
}

// GoogleConfig captures the third-party sign-in settings.
type GoogleConfig struct {
	ClientID string
}

// KafkaConfig captures the audit event sink settings. Empty Brokers disables
// the Kafka sink.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Addr: envOr("RESOURCEHUB_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			URL:          envOr("DATABASE_URL", "postgres://localhost:5432/resourcehub?sslmode=disable"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Auth: AuthConfig{
			// Dev default only; must be overridden in production.
			JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:          envOr("JWT_ISSUER", "resourcehub"),
			AccessTokenTTL:  envDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
			RefreshTokenTTL: envDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Sync: SyncConfig{
			BaseURL:      os.Getenv("EXTERNAL_API"),
			FetchTimeout: envDuration("SYNC_FETCH_TIMEOUT", 30*time.Second),
		},
		Google: GoogleConfig{
			ClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		},
		Kafka: KafkaConfig{
			Brokers:    envList("KAFKA_BROKERS"),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "resourcehub.audit"),
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

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
