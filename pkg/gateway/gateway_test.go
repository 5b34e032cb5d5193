// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veridion-labs/circulens/pkg/process"
)

// =============================================================================
// Mock HTTP Client
// =============================================================================

// mockHTTPClient implements HTTPClient for tests that need request capture
// without a real server.
type mockHTTPClient struct {
	GetFunc    func(ctx context.Context, url string) (*http.Response, error)
	PostFunc   func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error)
	DeleteFunc func(ctx context.Context, url string) (*http.Response, error)

	lastGetURL      string
	lastPostURL     string
	lastPostBody    string
	lastContentType string
	lastDeleteURL   string
	postCalls       int
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	m.lastGetURL = url
	if m.GetFunc != nil {
		return m.GetFunc(ctx, url)
	}
	return jsonResponse(200, `{}`), nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	m.lastPostURL = url
	m.lastContentType = contentType
	m.postCalls++
	if body != nil {
		data, _ := io.ReadAll(body)
		m.lastPostBody = string(data)
	}
	if m.PostFunc != nil {
		return m.PostFunc(ctx, url, contentType, body)
	}
	return jsonResponse(200, `{}`), nil
}

func (m *mockHTTPClient) Delete(ctx context.Context, url string) (*http.Response, error) {
	m.lastDeleteURL = url
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, url)
	}
	return jsonResponse(200, `{"message":"ok"}`), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func sampleDescription() process.Description {
	return process.Description{
		MetalType:          process.MetalAluminium,
		ProcessRoute:       process.RoutePrimary,
		ProductionCapacity: process.Float(7500),
		EnergySource:       "Mixed (Coal + Solar)",
		ProcessingLocation: "Odisha, India",
		EndOfLifeOption:    "Recycling",
	}
}

// =============================================================================
// Operation tests
// =============================================================================

func TestHealth_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"healthy","version":"1.0.0","components":{"ml_models":true,"sqlite":true}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if !status.Healthy() {
		t.Errorf("expected healthy, got %+v", status)
	}
	if !status.Components["ml_models"] {
		t.Errorf("expected ml_models component true")
	}
}

func TestMetals_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"metals":[{"name":"Aluminium","symbol":"Al","typical_recycling_rate":"30-80%"},{"name":"Copper","symbol":"Cu","typical_recycling_rate":"40-85%"}]}`)
	}))
	defer srv.Close()

	metals, err := NewClient(srv.URL).Metals(context.Background())
	if err != nil {
		t.Fatalf("Metals: %v", err)
	}
	if len(metals) != 2 || metals[0].Symbol != "Al" {
		t.Errorf("unexpected metals: %+v", metals)
	}
}

func TestAnalyzeLCA_SendsWirePayload(t *testing.T) {
	mock := &mockHTTPClient{
		PostFunc: func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
			return jsonResponse(200, `{"metal_type":"Aluminium","co2_emissions":12.5,"circularity_score":85}`), nil
		},
	}
	client := NewClient("http://localhost:8000", WithHTTPClient(mock))

	result, err := client.AnalyzeLCA(context.Background(), sampleDescription())
	if err != nil {
		t.Fatalf("AnalyzeLCA: %v", err)
	}

	if mock.lastPostURL != "http://localhost:8000/api/lca/analyze" {
		t.Errorf("wrong URL: %s", mock.lastPostURL)
	}
	if mock.lastContentType != "application/json" {
		t.Errorf("wrong content type: %s", mock.lastContentType)
	}
	if !strings.Contains(mock.lastPostBody, `"metal_type":"Aluminium"`) {
		t.Errorf("payload missing metal_type: %s", mock.lastPostBody)
	}
	// Optional fields left nil must not appear: absence means "predict".
	if strings.Contains(mock.lastPostBody, "ore_grade") {
		t.Errorf("nil optional field leaked into payload: %s", mock.lastPostBody)
	}
	if result.CO2Emissions != 12.5 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAnalyzeCircularity_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/circularity/analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"current_score":62.5,"optimal_score":88.0,"improvement_opportunities":["increase recycled content"],"recommended_actions":["switch energy source"]}`)
	}))
	defer srv.Close()

	circ, err := NewClient(srv.URL).AnalyzeCircularity(context.Background(), sampleDescription())
	if err != nil {
		t.Fatalf("AnalyzeCircularity: %v", err)
	}
	if circ.CurrentScore != 62.5 || len(circ.ImprovementOpportunities) != 1 {
		t.Errorf("unexpected analysis: %+v", circ)
	}
}

func TestCompare_PostsBatch(t *testing.T) {
	mock := &mockHTTPClient{
		PostFunc: func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
			return jsonResponse(200, `{"comparisons":[{"process":{"metal_type":"Aluminium"},"lca":{"co2_emissions":1}},{"process":{"metal_type":"Steel"},"lca":{"co2_emissions":2}}]}`), nil
		},
	}
	client := NewClient("http://localhost:8000", WithHTTPClient(mock))

	d1 := sampleDescription()
	d2 := sampleDescription()
	d2.MetalType = process.MetalSteel

	payload, err := client.Compare(context.Background(), []process.Description{d1, d2})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if mock.lastPostURL != "http://localhost:8000/api/compare" {
		t.Errorf("wrong URL: %s", mock.lastPostURL)
	}
	var batch []json.RawMessage
	if err := json.Unmarshal([]byte(mock.lastPostBody), &batch); err != nil || len(batch) != 2 {
		t.Errorf("request must be a 2-element array, got: %s", mock.lastPostBody)
	}
	if len(payload.Comparisons) != 2 {
		t.Errorf("expected 2 comparisons, got %+v", payload)
	}
}

func TestStoredComparisons_DecodesShapeC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"analyses":[{"id":1,"input":{"metal_type":"Zinc"},"results":{"co2_emissions":6.1}}],"comparison_available":false,"total_count":1}`)
	}))
	defer srv.Close()

	payload, err := NewClient(srv.URL).StoredComparisons(context.Background())
	if err != nil {
		t.Fatalf("StoredComparisons: %v", err)
	}
	if len(payload.Analyses) != 1 || payload.Analyses[0].Input.MetalType != process.MetalZinc {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if payload.TotalCount != 1 {
		t.Errorf("expected total_count 1, got %d", payload.TotalCount)
	}
}

func TestClearStoredComparisons_IssuesDelete(t *testing.T) {
	mock := &mockHTTPClient{}
	client := NewClient("http://localhost:8000", WithHTTPClient(mock))

	if err := client.ClearStoredComparisons(context.Background()); err != nil {
		t.Fatalf("ClearStoredComparisons: %v", err)
	}
	if mock.lastDeleteURL != "http://localhost:8000/api/comparisons" {
		t.Errorf("wrong URL: %s", mock.lastDeleteURL)
	}
}

func TestCircularityGraph_EscapesID(t *testing.T) {
	mock := &mockHTTPClient{
		GetFunc: func(ctx context.Context, url string) (*http.Response, error) {
			return jsonResponse(200, `{"graph":{"nodes":[]}}`), nil
		},
	}
	client := NewClient("http://localhost:8000", WithHTTPClient(mock))

	graph, err := client.CircularityGraph(context.Background(), "proc/42")
	if err != nil {
		t.Fatalf("CircularityGraph: %v", err)
	}
	if !strings.HasSuffix(mock.lastGetURL, "/api/circularity/graph/proc%2F42") {
		t.Errorf("process id must be path-escaped, got %s", mock.lastGetURL)
	}
	if string(graph) != `{"nodes":[]}` {
		t.Errorf("unexpected graph: %s", graph)
	}
}

func TestSimulateScenarios_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"simulations":[{"scenario":"baseline","results":{"co2":1.0}}]}`)
	}))
	defer srv.Close()

	outcomes, err := NewClient(srv.URL).SimulateScenarios(context.Background(), map[string]process.Description{
		"baseline": sampleDescription(),
	})
	if err != nil {
		t.Fatalf("SimulateScenarios: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Scenario != "baseline" {
		t.Errorf("unexpected outcomes: %+v", outcomes)
	}
}

func TestGenerateReport_ReturnsOpaqueRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"report":{"summary":"low impact route"}}`)
	}))
	defer srv.Close()

	report, err := NewClient(srv.URL).GenerateReport(context.Background(), sampleDescription())
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if !strings.Contains(string(report), "low impact route") {
		t.Errorf("unexpected report: %s", report)
	}
}

func TestModelMetrics_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"r2_score":0.89,"f1_score":0.91,"accuracy":0.898,"mae":2.1,"rmse":3.8}`)
	}))
	defer srv.Close()

	metrics, err := NewClient(srv.URL).ModelMetrics(context.Background())
	if err != nil {
		t.Fatalf("ModelMetrics: %v", err)
	}
	if metrics.R2Score != 0.89 || metrics.RMSE != 3.8 {
		t.Errorf("unexpected metrics: %+v", metrics)
	}
}

// =============================================================================
// Error taxonomy
// =============================================================================

func TestServiceError_TransportKind(t *testing.T) {
	mock := &mockHTTPClient{
		GetFunc: func(ctx context.Context, url string) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	client := NewClient("http://localhost:8000", WithHTTPClient(mock))

	_, err := client.Health(context.Background())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	if svcErr.Kind != KindTransport {
		t.Errorf("expected transport kind, got %s", svcErr.Kind)
	}
	if svcErr.Status != 0 {
		t.Errorf("transport errors carry no HTTP status, got %d", svcErr.Status)
	}
}

func TestServiceError_ApplicationKind_ParsesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":"LCA analysis failed: model not loaded"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AnalyzeLCA(context.Background(), sampleDescription())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	if svcErr.Kind != KindApplication || svcErr.Status != 500 {
		t.Errorf("unexpected error: %+v", svcErr)
	}
	if svcErr.Message != "LCA analysis failed: model not loaded" {
		t.Errorf("detail not extracted: %q", svcErr.Message)
	}
}

func TestServiceError_ApplicationKind_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream exploded")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Health(context.Background())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	if svcErr.Message != "upstream exploded" {
		t.Errorf("raw body not used as message: %q", svcErr.Message)
	}
}

func TestServiceError_ErrorString(t *testing.T) {
	transport := transportError(errors.New("dial tcp: timeout"))
	if !strings.Contains(transport.Error(), "service unreachable") {
		t.Errorf("unexpected transport message: %s", transport.Error())
	}
	app := applicationError(422, "invalid input")
	if !strings.Contains(app.Error(), "HTTP 422") {
		t.Errorf("unexpected application message: %s", app.Error())
	}
}
