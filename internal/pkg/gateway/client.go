// Package gateway is the client of the upstream HRMS REST API. It maps
// responses onto domain entities and failures onto a small error taxonomy
// (NetworkError, ValidationError, NotFoundError, APIError).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/config"
)

// Resources named by NotFoundError
const (
	ResourceEmployee   = "employee"
	ResourceAttendance = "attendance"
)

const (
	// upstream error bodies are small; anything larger is truncated
	maxErrorBody = 64 << 10
)

// Client talks to the HRMS API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for cfg.BaseURL with cfg.Timeout per request.
func NewClient(cfg config.HRMSAPIConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// NewClientWithHTTP is NewClient with a caller-supplied http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type call struct {
	op       string
	method   string
	path     string
	query    url.Values
	body     any
	resource string
	id       string
}

// do performs c and decodes a 2xx JSON body into out, if out is non-nil.
func (c *Client) do(ctx context.Context, req call, out any) error {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("hrms api %s: encode request: %w", req.op, err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("hrms api %s: build request: %w", req.op, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Debug("hrms api request failed",
			"op", req.op,
			"request_id", requestID,
			"error", err,
		)
		return &NetworkError{Op: req.op, Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("hrms api request",
		"op", req.op,
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return classify(req.op, resp.StatusCode, raw, req.resource, req.id)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: req.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
