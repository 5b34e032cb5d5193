// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package gateway is the typed wrapper around the remote LCA analysis
// service. One method per wire endpoint; each call carries a bounded
// timeout and surfaces transport and application failures through the
// same ServiceError taxonomy.
//
// The gateway performs no retries and no caching. At-most-once delivery per
// call lets the orchestrator reason about exactly one outstanding request
// per stage.
package gateway

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

	"github.com/veridion-labs/circulens/pkg/logging"
	"github.com/veridion-labs/circulens/pkg/process"
)

// DefaultTimeout bounds every gateway call.
const DefaultTimeout = 30 * time.Second

// HTTPClient abstracts HTTP operations for testability. The production
// implementation wraps *http.Client; tests substitute a mock that captures
// requests.
type HTTPClient interface {
	Get(ctx context.Context, url string) (*http.Response, error)
	Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error)
	Delete(ctx context.Context, url string) (*http.Response, error)
}

// defaultHTTPClient implements HTTPClient over net/http.
type defaultHTTPClient struct {
	client *http.Client
}

func (d *defaultHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return d.client.Do(req)
}

func (d *defaultHTTPClient) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return d.client.Do(req)
}

func (d *defaultHTTPClient) Delete(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return nil, err
	}
	return d.client.Do(req)
}

// Client issues the service's RPC operations. Construct with NewClient;
// zero value is not usable.
//
// Client is stateless apart from configuration and safe for concurrent use,
// though the workflow layer never issues overlapping calls by design.
type Client struct {
	baseURL string
	http    HTTPClient
	timeout time.Duration
	log     *logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (used by tests).
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger attaches a structured logger.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a gateway client for the service at baseURL,
// e.g. "http://localhost:8000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		log:     logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// The transport-level timeout is a backstop; the per-call context
		// timeout is authoritative.
		c.http = &defaultHTTPClient{client: &http.Client{Timeout: c.timeout}}
	}
	return c
}

// =============================================================================
// Operations
// =============================================================================

// Health calls GET /api/health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Metals calls GET /api/metals and returns the supported metal list.
func (c *Client) Metals(ctx context.Context) ([]Metal, error) {
	var out metalsResponse
	if err := c.getJSON(ctx, "/api/metals", &out); err != nil {
		return nil, err
	}
	return out.Metals, nil
}

// AnalyzeLCA calls POST /api/lca/analyze for one process description.
func (c *Client) AnalyzeLCA(ctx context.Context, d process.Description) (*process.AnalysisResult, error) {
	var out process.AnalysisResult
	if err := c.postJSON(ctx, "/api/lca/analyze", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeCircularity calls POST /api/circularity/analyze for the same
// description. The service assumes the LCA call ran first and warmed its
// caches; the orchestrator enforces that ordering.
func (c *Client) AnalyzeCircularity(ctx context.Context, d process.Description) (*process.CircularityAnalysis, error) {
	var out process.CircularityAnalysis
	if err := c.postJSON(ctx, "/api/circularity/analyze", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CircularityGraph calls GET /api/circularity/graph/{id} and returns the
// opaque graph record for visualization.
func (c *Client) CircularityGraph(ctx context.Context, processID string) (json.RawMessage, error) {
	var out graphResponse
	path := "/api/circularity/graph/" + url.PathEscape(processID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Graph, nil
}

// Compare calls POST /api/compare with the full queued batch and returns the
// undecoded comparison envelope for the normalizer.
func (c *Client) Compare(ctx context.Context, batch []process.Description) (*ComparisonPayload, error) {
	var out ComparisonPayload
	if err := c.postJSON(ctx, "/api/compare", batch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateReport calls POST /api/report/generate and returns the opaque
// report record.
func (c *Client) GenerateReport(ctx context.Context, d process.Description) (json.RawMessage, error) {
	var out reportResponse
	if err := c.postJSON(ctx, "/api/report/generate", d, &out); err != nil {
		return nil, err
	}
	return out.Report, nil
}

// ModelMetrics calls GET /api/model/metrics.
func (c *Client) ModelMetrics(ctx context.Context) (*ModelMetrics, error) {
	var out ModelMetrics
	if err := c.getJSON(ctx, "/api/model/metrics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StoredComparisons calls GET /api/comparisons and returns the historical
// analyses envelope for the normalizer.
func (c *Client) StoredComparisons(ctx context.Context) (*ComparisonPayload, error) {
	var out ComparisonPayload
	if err := c.getJSON(ctx, "/api/comparisons", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearStoredComparisons calls DELETE /api/comparisons, wiping the service's
// stored-analyses listing.
func (c *Client) ClearStoredComparisons(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.http.Delete(callCtx, c.baseURL+"/api/comparisons")
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeFailure(resp)
	}
	var out messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return transportError(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// SimulateScenarios calls POST /api/data/simulate with a named scenario set.
func (c *Client) SimulateScenarios(ctx context.Context, scenarios map[string]process.Description) ([]SimulationOutcome, error) {
	var out simulationResponse
	if err := c.postJSON(ctx, "/api/data/simulate", scenarios, &out); err != nil {
		return nil, err
	}
	return out.Simulations, nil
}

// =============================================================================
// Request helpers
// =============================================================================

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.Get(callCtx, c.baseURL+path)
	if err != nil {
		c.log.Warn("gateway call failed", "method", "GET", "path", path, "error", err.Error())
		return transportError(err)
	}
	defer resp.Body.Close()

	c.log.Debug("gateway call", "method", "GET", "path", path,
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	return c.decodeResponse(resp, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return transportError(fmt.Errorf("encoding request: %w", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.Post(callCtx, c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		c.log.Warn("gateway call failed", "method", "POST", "path", path, "error", err.Error())
		return transportError(err)
	}
	defer resp.Body.Close()

	c.log.Debug("gateway call", "method", "POST", "path", path,
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	return c.decodeResponse(resp, out)
}

// decodeResponse parses a 2xx body into out, or converts a failure status
// into an application ServiceError.
func (c *Client) decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeFailure(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportError(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// decodeFailure extracts the service's {detail} error envelope when present,
// falling back to the raw body or status text.
func (c *Client) decodeFailure(resp *http.Response) *ServiceError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return applicationError(resp.StatusCode, body.Detail)
	}
	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return applicationError(resp.StatusCode, message)
}
