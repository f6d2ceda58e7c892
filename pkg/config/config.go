package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the API-Football v3 endpoint
const DefaultBaseURL = "https://v3.football.api-sports.io"

// Config holds application configuration
type Config struct {
	APIFootballKey string
	BaseURL        string
	Port           string
	Environment    string
	LogLevel       string
	// Upstream gateway
	UpstreamTimeout           time.Duration
	UpstreamRequestsPerSecond int
	FixturesTimezone          string
	// Security configuration
	AllowedOrigins     string
	TrustedProxies     string
	EnableRateLimit    bool
	RateLimitPerMinute int
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		APIFootballKey: getEnv("API_FOOTBALL_KEY", ""),
		BaseURL:        strings.TrimRight(getEnv("API_FOOTBALL_BASE_URL", DefaultBaseURL), "/"),
		Port:           getEnv("PORT", "5000"),
		Environment:    getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		// Upstream gateway
		UpstreamTimeout:           getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamRequestsPerSecond: getEnvAsInt("UPSTREAM_REQUESTS_PER_SECOND", 5),
		FixturesTimezone:          getEnv("FIXTURES_TIMEZONE", "UTC"),
		// Security configuration
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", ""),
		TrustedProxies:     getEnv("TRUSTED_PROXIES", ""),
		EnableRateLimit:    getEnv("ENABLE_RATE_LIMIT", "true") == "true",
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasAPIKey returns true if the upstream credential is configured
func (c *Config) HasAPIKey() bool {
	return c.APIFootballKey != ""
}

// Location returns the timezone used to compute "today", falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.FixturesTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	return splitList(c.AllowedOrigins)
}

// GetTrustedProxies returns a slice of trusted proxy IPs or CIDRs, none by default
func (c *Config) GetTrustedProxies() []string {
	return splitList(c.TrustedProxies)
}

// splitList splits a comma separated value, trimming entries and dropping empty ones
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
