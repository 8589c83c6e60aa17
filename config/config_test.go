package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "2612", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("MAIL_SEND_ENABLED", "false")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("MAIL_SEND_ENABLED", "yep")

	cfg := Load()
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.MailSendEnabled)
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "charcreator")
	t.Setenv("DB_SSLMODE", "require")

	assert.Equal(t,
		"postgres://app:pw@db.internal:5433/charcreator?sslmode=require",
		Load().PostgresDSN())
}

func TestCORSOriginsSplitsAndTrims(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example ,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, Load().CORSOrigins())
}

func TestCORSOriginsEmpty(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Empty(t, Load().CORSOrigins())
}

func TestESAddrs(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200,http://es2:9200")
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, Load().ESAddrs())
}
