// Package webhookclient posts JSON to the remote automation webhooks that
// implement every ShiftTrack operation.
package webhookclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/metrics"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 10 << 20
	requestIDHeader = "X-Request-ID"
)

// Config describes where the webhooks live
type Config struct {
	BaseURL string
	// Paths overrides DefaultPaths for individual endpoints
	Paths   map[Endpoint]string
	Timeout time.Duration
	// HTTPClient is used as-is when set, e.g. one carrying OAuth2 credentials
	HTTPClient *http.Client
}

// Response is a completed call. Body is the decoded JSON payload with numbers
// kept as json.Number, or nil when the body was empty or not JSON.
type Response struct {
	StatusCode int
	OK         bool
	Body       any
}

// StatusError is returned alongside the Response when the remote answers
// with a non-2xx status
type StatusError struct {
	Endpoint   Endpoint
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook %s returned status %d", e.Endpoint, e.StatusCode)
}

// Client calls the webhooks. It never retries.
type Client struct {
	urls       map[Endpoint]string
	httpClient *http.Client
	metrics    *metrics.WebhookMetrics
	logger     *zap.Logger
}

// NewClient resolves every endpoint URL up front so a bad base URL fails at
// startup rather than on first use
func NewClient(cfg Config, m *metrics.WebhookMetrics, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid webhook base URL %q: scheme must be http or https", cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	urls := make(map[Endpoint]string, len(AllEndpoints))
	for _, endpoint := range AllEndpoints {
		path := DefaultPaths[endpoint]
		if override, ok := cfg.Paths[endpoint]; ok && override != "" {
			path = override
		}
		ref, err := url.Parse(strings.TrimPrefix(path, "/"))
		if err != nil {
			return nil, fmt.Errorf("invalid path for %s: %w", endpoint, err)
		}
		urls[endpoint] = base.ResolveReference(ref).String()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		urls:       urls,
		httpClient: httpClient,
		metrics:    m,
		logger:     logger,
	}, nil
}

// URL returns the full address of an endpoint
func (c *Client) URL(endpoint Endpoint) string {
	return c.urls[endpoint]
}

// Post sends body as JSON to endpoint. Transport failures return a nil
// Response; non-2xx answers return both the Response and a *StatusError so
// callers that inspect error payloads still can.
func (c *Client) Post(ctx context.Context, endpoint Endpoint, body any) (*Response, error) {
	target, ok := c.urls[endpoint]
	if !ok {
		return nil, fmt.Errorf("unknown webhook endpoint %q", endpoint)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	c.logger.Debug("Calling webhook",
		zap.String("endpoint", string(endpoint)),
		zap.String("request_id", requestID))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(string(endpoint), metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("webhook %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveRequest(string(endpoint), metrics.OutcomeTransport, elapsed)
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:       decodeBody(raw),
	}

	c.logger.Debug("Webhook responded",
		zap.String("endpoint", string(endpoint)),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	if !result.OK {
		c.metrics.ObserveRequest(string(endpoint), metrics.OutcomeHTTPError, elapsed)
		return result, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	c.metrics.ObserveRequest(string(endpoint), metrics.OutcomeSuccess, elapsed)
	return result, nil
}

func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}
