package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ajharbinger/football-connector/internal/logger"
	"github.com/ajharbinger/football-connector/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// SecurityHeadersMiddleware adds security headers to all responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// Upstream data is time sensitive
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}

// CORSMiddleware handles Cross-Origin Resource Sharing with environment-based configuration
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	var allowedOrigins []string
	if cfg.IsDevelopment() {
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5000",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5000",
		}
	}
	allowedOrigins = append(allowedOrigins, cfg.GetAllowedOrigins()...)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, allowedOrigin := range allowedOrigins {
			if origin != "" && origin == allowedOrigin {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				break
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// MethodValidationMiddleware rejects write methods on this read-only service and
// blocks known scanner user agents
func MethodValidationMiddleware() gin.HandlerFunc {
	suspiciousPatterns := []string{
		"sqlmap",
		"nikto",
		"nmap",
		"masscan",
		"<script",
		"javascript:",
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPost:
		default:
			c.Header("Allow", "GET, HEAD, OPTIONS, POST")
			c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
				"error": "Method not allowed",
			})
			return
		}

		userAgent := strings.ToLower(c.GetHeader("User-Agent"))
		for _, pattern := range suspiciousPatterns {
			if strings.Contains(userAgent, pattern) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Request blocked for security reasons",
				})
				return
			}
		}

		c.Next()
	}
}

// RateLimitingMiddleware allows limit requests per client IP per minute
func RateLimitingMiddleware(limit int) gin.HandlerFunc {
	limiter := newIPRateLimiter(limit, time.Now)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": "60",
			})
			return
		}

		c.Next()
	}
}

// ipRateLimiter is a sliding one-minute window per client IP. IPs idle for a
// full window are evicted.
type ipRateLimiter struct {
	mu        sync.Mutex
	limit     int
	now       func() time.Time
	clients   map[string][]time.Time
	lastSweep time.Time
}

func newIPRateLimiter(limit int, now func() time.Time) *ipRateLimiter {
	return &ipRateLimiter{
		limit:     limit,
		now:       now,
		clients:   make(map[string][]time.Time),
		lastSweep: now(),
	}
}

func (l *ipRateLimiter) allow(clientIP string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > time.Minute {
		for ip, timestamps := range l.clients {
			if recent := recentWithin(timestamps, now); len(recent) > 0 {
				l.clients[ip] = recent
			} else {
				delete(l.clients, ip)
			}
		}
		l.lastSweep = now
	}

	valid := recentWithin(l.clients[clientIP], now)
	if len(valid) >= l.limit {
		if len(valid) > 0 {
			l.clients[clientIP] = valid
		}
		return false
	}

	l.clients[clientIP] = append(valid, now)
	return true
}

// tracked returns the number of client IPs currently held
func (l *ipRateLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// recentWithin filters timestamps in place to those inside the last minute
func recentWithin(timestamps []time.Time, now time.Time) []time.Time {
	valid := timestamps[:0]
	for _, timestamp := range timestamps {
		if now.Sub(timestamp) <= time.Minute {
			valid = append(valid, timestamp)
		}
	}
	return valid
}

// RequestIDMiddleware propagates or assigns an X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// LoggingMiddleware logs one line per request
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		statusCode := c.Writer.Status()
		fields := []interface{}{
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", path,
			"status", strconv.Itoa(statusCode),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}

		if statusCode >= 500 {
			log.Warn("Request failed", fields...)
			return
		}
		log.Info("Request handled", fields...)
	}
}
