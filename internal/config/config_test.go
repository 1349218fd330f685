package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates a temporary YAML config file in a temporary directory.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err, "Failed to write temporary config file")

	return configPath
}

func TestLoadConfigFromPath(t *testing.T) {
	validYAML := `
env: "test"
http_server:
  address: ":8081"
database:
  PG_HOST: "dbhost"
  PG_PORT: "5433"
  PG_USER: "testuser"
  PG_PASSWORD: "testpassword"
  PG_DBNAME: "testdb"
  PG_SSLMODE: "disable"
redis:
  REDIS_HOST: "redishost"
  REDIS_USER: "redisuser"
  REDIS_PASSWORD: "redispassword"
  REDIS_DB: 1
  REDIS_PORT: "6380"
security:
  JWT_KEY: "testjwtkey"
  TRUST_HEADER_IDENTITY: true
stripe:
  STRIPE_API_KEY: "sk_test_123"
  STRIPE_WEBHOOK_SECRET: "whsec_test_123"
sendgrid:
  SENDGRID_API_KEY: "sg_test_123"
  SENDGRID_FROM_EMAIL: "test@example.com"
cache:
  DEFAULT_TTL: "10m"
  PRODUCT_TTL: "90s"
checkout:
  IDEMPOTENCY_TTL: "12h"
  MAX_RETRIES: 5
otel:
  ENABLED: true
  EXPORTER_ENDPOINT: "http://otel:4318/v1/traces"
`

	t.Run("Loads all sections", func(t *testing.T) {
		configPath := createTempConfigFile(t, validYAML)

		cfg, err := LoadConfigFromPath(configPath)

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.Env)
		assert.Equal(t, ":8081", cfg.HTTPServer.Addr)
		assert.Equal(t, "dbhost", cfg.Database.Host)
		assert.Equal(t, "redisuser", cfg.RedisConnect.Username)
		assert.True(t, cfg.Security.TrustHeaderIdentity)
		assert.Equal(t, 10*time.Minute, cfg.Cache.DefaultTTL)
		assert.Equal(t, 90*time.Second, cfg.Cache.ProductTTL)
		assert.Equal(t, 12*time.Hour, cfg.Checkout.IdempotencyTTL)
		assert.Equal(t, 5, cfg.Checkout.MaxRetries)
		assert.True(t, cfg.Otel.Enabled)
		assert.Equal(t, "http://otel:4318/v1/traces", cfg.Otel.ExporterEndpoint)
	})

	t.Run("Defaults apply when optional keys are absent", func(t *testing.T) {
		minimalYAML := `
env: "test"
database:
  PG_USER: "u"
  PG_PASSWORD: "p"
  PG_DBNAME: "d"
security:
  JWT_KEY: "k"
`
		configPath := createTempConfigFile(t, minimalYAML)

		cfg, err := LoadConfigFromPath(configPath)

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPServer.Addr)
		assert.False(t, cfg.Security.TrustHeaderIdentity)
		assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
		assert.Equal(t, 24*time.Hour, cfg.Checkout.IdempotencyTTL)
		assert.Equal(t, 3, cfg.Checkout.MaxRetries)
		assert.False(t, cfg.Otel.Enabled)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfigFromPath("/nonexistent/config.yaml")

		assert.Error(t, err)
	})

	t.Run("Missing required keys", func(t *testing.T) {
		configPath := createTempConfigFile(t, `env: "test"`)

		_, err := LoadConfigFromPath(configPath)

		assert.Error(t, err)
	})
}

func TestGetDSN(t *testing.T) {
	t.Run("Postgres", func(t *testing.T) {
		db := Database{Host: "h", Port: "5432", User: "u", Password: "p", Name: "d", SSLMode: "disable"}

		assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", db.GetDSN())
	})

	t.Run("Redis with credentials", func(t *testing.T) {
		r := RedisConnect{Host: "h", Port: "6379", Username: "u", Password: "p", DB: 1}

		assert.Equal(t, "redis://u:p@h:6379/1", r.GetDSN())
	})

	t.Run("Redis without credentials", func(t *testing.T) {
		r := RedisConnect{Host: "h", Port: "6379", DB: 0}

		assert.Equal(t, "redis://h:6379/0", r.GetDSN())
	})
}
