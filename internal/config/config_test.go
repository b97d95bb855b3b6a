package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearEnv затирает переменные, которые могло подкинуть окружение CI.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HOST", "PORT", "ALLOW_ORIGINS", "LOG_LEVEL", "LOG_FILE", "MAX_UPLOAD_MB",
		"GEMINI_API_KEY", "GEMINI_API_URL", "GEMINI_TIMEOUT_SEC",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 32, cfg.MaxUploadMB)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Empty(t, cfg.GeminiAPIURL)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOW_ORIGINS", "http://a.local,http://b.local")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("GEMINI_API_KEY", "k-123")
	t.Setenv("GEMINI_API_URL", "http://127.0.0.1:1/fake")
	t.Setenv("GEMINI_TIMEOUT_SEC", "5")

	cfg := Load()

	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowOrigins)
	assert.Equal(t, 8, cfg.MaxUploadMB)
	assert.Equal(t, "k-123", cfg.GeminiAPIKey)
	assert.Equal(t, "http://127.0.0.1:1/fake", cfg.GeminiAPIURL)
	assert.Equal(t, 5*time.Second, cfg.GeminiTimeout)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "3.0", Version)
}
