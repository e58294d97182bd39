// Package apiclient wraps outbound calls to the Inventra REST backend.
// It attaches the bearer token carried by the request, merges JSON headers,
// and turns non-success responses into typed errors. Each call is a single
// attempt: no retry, no backoff; the only timeout is the transport-level
// http.Client timeout.
package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inventra/frontend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Config holds client construction settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	TLSSkipVerify bool
}

// Client is the HTTP client for the Inventra backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	logger     *zap.Logger
	metrics    *telemetry.FrontendMetrics
}

// New creates a backend API client.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.TLSSkipVerify,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			"User-Agent":   "Inventra-Frontend/1.0",
		},
		logger: log,
	}

	return c, nil
}

// SetMetrics attaches the frontend instruments so failed backend calls are
// counted. A nil handle disables recording.
func (c *Client) SetMetrics(m *telemetry.FrontendMetrics) {
	c.metrics = m
}

// Request represents one call to the backend. Token is passed explicitly
// per request rather than read from ambient state, so concurrent sessions
// never collide.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string
	Body    any
	Token   string
}

// Response represents a parsed-enough backend response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Do executes a single HTTP request. A non-2xx status yields a *APIError
// carrying the backend-provided message when one is present.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	u, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	// Default headers first, bearer token next, caller headers last so the
	// caller wins on conflict.
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		c.metrics.RecordUpstreamFailure(ctx, req.Path)
		c.logger.Warn("backend request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		Duration:   duration,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordUpstreamFailure(ctx, req.Path)
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: extractMessage(body, resp.StatusCode),
		}
		c.logger.Warn("backend returned error",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return resp, apiErr
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, token, path string, query map[string]string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Token: token})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, token, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Token: token})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, token, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Token: token})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, token, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Token: token})
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) buildURL(path string, query map[string]string) (*url.URL, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	u, err := base.Parse(strings.TrimSuffix(base.Path, "/") + path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			if v != "" {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u, nil
}
