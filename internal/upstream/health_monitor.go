package upstream

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// Failure categories derived from status codes and messages
const (
	CategoryTimeout        = "timeout"
	CategoryRateLimit      = "rate_limit"
	CategoryAuthentication = "authentication"
	CategoryNetwork        = "network"
	CategoryUpstream       = "upstream"
	CategoryOther          = "other"
)

const (
	maxRecentFailures     = 50
	unhealthyFailureRate  = 0.2
	unhealthyConsecutive  = 5
	minCallsForRate       = 10
	minFailuresForPattern = 3
)

// advice maps a dominant failure category to an issue and an operator action
var advice = map[string][2]string{
	CategoryTimeout:        {"Frequent upstream timeouts", "Consider increasing UPSTREAM_TIMEOUT"},
	CategoryRateLimit:      {"API-Football is rate limiting this key", "Lower UPSTREAM_REQUESTS_PER_SECOND or upgrade the API plan"},
	CategoryAuthentication: {"API-Football rejects the API key", "Verify API_FOOTBALL_KEY"},
	CategoryNetwork:        {"Upstream unreachable", "Check API_FOOTBALL_BASE_URL, DNS and network egress"},
	CategoryUpstream:       {"API-Football is returning server errors", "Check the API-Football status page"},
}

// HealthMonitor records the outcome of every gateway call, overall and per resource
type HealthMonitor struct {
	mu                  sync.RWMutex
	overall             ResourceStats
	consecutiveFailures int64
	resources           map[string]*ResourceStats
	recentFailures      []FailureRecord
}

// ResourceStats counts calls against one upstream resource such as /fixtures
type ResourceStats struct {
	Calls       int64      `json:"calls"`
	Failures    int64      `json:"failures"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
	LastFailure *time.Time `json:"last_failure,omitempty"`
}

// FailureRecord is a single failed upstream call
type FailureRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Endpoint   string    `json:"endpoint"`
	StatusCode int       `json:"status_code,omitempty"`
	Category   string    `json:"category"`
	Error      string    `json:"error"`
}

// HealthStatus is a snapshot of the monitor
type HealthStatus struct {
	IsHealthy           bool                     `json:"is_healthy"`
	TotalRequests       int64                    `json:"total_requests"`
	FailedRequests      int64                    `json:"failed_requests"`
	SuccessRate         float64                  `json:"success_rate"`
	ConsecutiveFailures int64                    `json:"consecutive_failures"`
	LastFailureTime     *time.Time               `json:"last_failure_time,omitempty"`
	LastSuccessTime     *time.Time               `json:"last_success_time,omitempty"`
	Resources           map[string]ResourceStats `json:"resources"`
	RecentFailures      []FailureRecord          `json:"recent_failures"`
	HealthIssues        []string                 `json:"health_issues"`
	RecommendedActions  []string                 `json:"recommended_actions"`
}

// NewHealthMonitor creates an empty monitor
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		resources:      make(map[string]*ResourceStats),
		recentFailures: make([]FailureRecord, 0, maxRecentFailures),
	}
}

// RecordSuccess records a successful call to endpoint
func (h *HealthMonitor) RecordSuccess(endpoint string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	h.consecutiveFailures = 0
	for _, stats := range []*ResourceStats{&h.overall, h.resource(endpoint)} {
		stats.Calls++
		stats.LastSuccess = &now
	}
}

// RecordFailure records a failed call to endpoint. statusCode is 0 when no response arrived.
func (h *HealthMonitor) RecordFailure(endpoint string, statusCode int, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	h.consecutiveFailures++
	for _, stats := range []*ResourceStats{&h.overall, h.resource(endpoint)} {
		stats.Calls++
		stats.Failures++
		stats.LastFailure = &now
	}

	h.recentFailures = append(h.recentFailures, FailureRecord{
		Timestamp:  now,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Category:   categorize(statusCode, message),
		Error:      message,
	})
	if len(h.recentFailures) > maxRecentFailures {
		h.recentFailures = h.recentFailures[1:]
	}
}

// resource returns the stats for the path part of endpoint; h.mu must be held
func (h *HealthMonitor) resource(endpoint string) *ResourceStats {
	path, _, _ := strings.Cut(endpoint, "?")
	stats, ok := h.resources[path]
	if !ok {
		stats = &ResourceStats{}
		h.resources[path] = stats
	}
	return stats
}

// GetHealthStatus returns the current health verdict with its supporting numbers
func (h *HealthMonitor) GetHealthStatus() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := HealthStatus{
		IsHealthy:           true,
		TotalRequests:       h.overall.Calls,
		FailedRequests:      h.overall.Failures,
		SuccessRate:         1.0,
		ConsecutiveFailures: h.consecutiveFailures,
		LastFailureTime:     h.overall.LastFailure,
		LastSuccessTime:     h.overall.LastSuccess,
		Resources:           make(map[string]ResourceStats, len(h.resources)),
		RecentFailures:      append([]FailureRecord(nil), h.recentFailures...),
		HealthIssues:        []string{},
		RecommendedActions:  []string{},
	}
	for path, stats := range h.resources {
		status.Resources[path] = *stats
	}
	if h.overall.Calls > 0 {
		status.SuccessRate = float64(h.overall.Calls-h.overall.Failures) / float64(h.overall.Calls)
	}

	if h.overall.Calls >= minCallsForRate && status.SuccessRate < 1.0-unhealthyFailureRate {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "Upstream failure rate above 20%")
	}
	if h.consecutiveFailures >= unhealthyConsecutive {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "Multiple consecutive upstream failures")
	}

	if category := h.dominantCategory(); category != "" {
		status.HealthIssues = append(status.HealthIssues, advice[category][0])
		status.RecommendedActions = append(status.RecommendedActions, advice[category][1])
	}

	return status
}

// dominantCategory returns the category behind more than half of recent failures, if any
func (h *HealthMonitor) dominantCategory() string {
	if len(h.recentFailures) < minFailuresForPattern {
		return ""
	}

	counts := make(map[string]int)
	for _, failure := range h.recentFailures {
		counts[failure.Category]++
	}

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		if _, known := advice[category]; known && counts[category]*2 > len(h.recentFailures) {
			return category
		}
	}
	return ""
}

// categorize classifies a failure, preferring the HTTP status over the message text
func categorize(statusCode int, message string) string {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return CategoryRateLimit
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return CategoryAuthentication
	case statusCode >= 500:
		return CategoryUpstream
	}

	message = strings.ToLower(message)
	switch {
	case strings.Contains(message, "timeout") || strings.Contains(message, "deadline"):
		return CategoryTimeout
	case strings.Contains(message, "ratelimit") || strings.Contains(message, "rate limit") ||
		strings.Contains(message, "request limit") || strings.Contains(message, "too many requests"):
		// API-Football reports quota exhaustion in the envelope with a 200
		return CategoryRateLimit
	case strings.Contains(message, "token") || strings.Contains(message, "application key"):
		return CategoryAuthentication
	case strings.Contains(message, "connection") || strings.Contains(message, "no such host") ||
		strings.Contains(message, "network"):
		return CategoryNetwork
	}
	return CategoryOther
}

// Reset clears all recorded outcomes
func (h *HealthMonitor) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.overall = ResourceStats{}
	h.consecutiveFailures = 0
	h.resources = make(map[string]*ResourceStats)
	h.recentFailures = h.recentFailures[:0]
}

// IsHealthy reports the current verdict
func (h *HealthMonitor) IsHealthy() bool {
	return h.GetHealthStatus().IsHealthy
}

// GetFailureRate returns the fraction of failed calls
func (h *HealthMonitor) GetFailureRate() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.overall.Calls == 0 {
		return 0.0
	}
	return float64(h.overall.Failures) / float64(h.overall.Calls)
}
