package config

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("API_FOOTBALL_KEY", "")
	t.Setenv("API_FOOTBALL_BASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")
	t.Setenv("UPSTREAM_REQUESTS_PER_SECOND", "")

	cfg := New()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5, cfg.UpstreamRequestsPerSecond)
	assert.False(t, cfg.HasAPIKey())
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("API_FOOTBALL_KEY", "secret")
	t.Setenv("API_FOOTBALL_BASE_URL", "http://localhost:9999/")
	t.Setenv("PORT", "8081")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("UPSTREAM_REQUESTS_PER_SECOND", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := New()

	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5, cfg.UpstreamRequestsPerSecond)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetAllowedOrigins())
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := &Config{FixturesTimezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetTrustedProxies_TrimsEntries(t *testing.T) {
	cfg := &Config{TrustedProxies: "10.0.0.1, 10.0.0.2 ,, 192.168.0.0/16"}

	proxies := cfg.GetTrustedProxies()
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2", "192.168.0.0/16"}, proxies)
	assert.NoError(t, gin.New().SetTrustedProxies(proxies))

	assert.Empty(t, (&Config{}).GetTrustedProxies())
}
