package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ajharbinger/football-connector/internal/logger"
	"github.com/ajharbinger/football-connector/pkg/config"
)

// APIKeyHeader carries the upstream credential on every request
const APIKeyHeader = "x-apisports-key"

const maxResponseBytes = 10 * 1024 * 1024

// Client is the gateway to the upstream sports-data API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rateLimiter
	health      *HealthMonitor
	log         logger.Logger
}

// Envelope is the standard API-Football response wrapper
type Envelope struct {
	Get        string          `json:"get"`
	Parameters json.RawMessage `json:"parameters"`
	Errors     json.RawMessage `json:"errors"`
	Results    int             `json:"results"`
	Paging     json.RawMessage `json:"paging,omitempty"`
	Response   json.RawMessage `json:"response"`

	// Raw is the body exactly as received
	Raw json.RawMessage `json:"-"`
}

// Failure is the structured error returned for any unsuccessful upstream call
type Failure struct {
	Message    string `json:"error"`
	Source     string `json:"source"`
	StatusCode int    `json:"-"`
	cause      error
}

// Error implements the error interface
func (f *Failure) Error() string {
	return fmt.Sprintf("upstream %s: %s", f.Source, f.Message)
}

// Unwrap returns the transport or decoding error, if any
func (f *Failure) Unwrap() error {
	return f.cause
}

// NewClient creates a gateway client from configuration
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.UpstreamTimeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIFootballKey,
		rateLimiter: newRateLimiter(cfg.UpstreamRequestsPerSecond),
		health:      NewHealthMonitor(),
		log:         log,
	}
}

// Health returns the monitor tracking this client's calls
func (c *Client) Health() *HealthMonitor {
	return c.health
}

// Get performs a rate-limited GET of path with params and returns the decoded envelope.
// Every failure is returned as a *Failure.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	source := Endpoint(path, params)

	envelope, statusCode, err := c.do(ctx, path, params)
	if err != nil {
		failure := &Failure{Message: err.Error(), Source: source, StatusCode: statusCode, cause: err}
		if ctx.Err() != nil {
			// The caller gave up; the upstream is not at fault
			c.log.Debug("upstream call abandoned", "source", source, "error", failure.Message)
			return nil, failure
		}
		c.health.RecordFailure(source, statusCode, failure.Message)
		c.log.Warn("upstream call failed", "source", source, "status", statusCode, "error", failure.Message)
		return nil, failure
	}

	c.health.RecordSuccess(source)
	c.log.Debug("upstream call succeeded", "source", source, "results", envelope.Results)
	return envelope, nil
}

func (c *Client) do(ctx context.Context, path string, params url.Values) (*Envelope, int, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	envelope.Raw = body

	if messages := envelope.ErrorMessages(); len(messages) > 0 {
		return nil, resp.StatusCode, fmt.Errorf("upstream reported errors: %s", strings.Join(messages, "; "))
	}

	return &envelope, resp.StatusCode, nil
}

// ErrorMessages flattens the envelope's errors field, which is an empty array on success
// and either an array or an object of messages on failure.
func (e *Envelope) ErrorMessages() []string {
	raw := bytes.TrimSpace(e.Errors)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var messages []string
	var asObject map[string]interface{}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		keys := make([]string, 0, len(asObject))
		for key := range asObject {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			messages = append(messages, fmt.Sprintf("%s: %v", key, asObject[key]))
		}
		return messages
	}

	var asArray []interface{}
	if err := json.Unmarshal(raw, &asArray); err == nil {
		for _, value := range asArray {
			messages = append(messages, fmt.Sprintf("%v", value))
		}
		return messages
	}

	return []string{string(raw)}
}

// Endpoint renders path and params the way they are reported in failures
func Endpoint(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close cleans up the client resources
func (c *Client) Close() {
	c.rateLimiter.Stop()
	c.httpClient.CloseIdleConnections()
}
