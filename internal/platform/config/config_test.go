package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "resourcehub", cfg.Auth.Issuer)
	assert.Equal(t, 30*time.Second, cfg.Sync.FetchTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RESOURCEHUB_ADDR", ":9999")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("EXTERNAL_API", "https://feeds.example.com/api/")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "https://feeds.example.com/api/", cfg.Sync.BaseURL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}

func TestFromEnvBadDurationFallsBack(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_TTL", "not-a-duration")

	cfg := FromEnv()
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
}
