// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gateway

import (
	"encoding/json"

	"github.com/veridion-labs/circulens/pkg/process"
)

// HealthStatus is the GET /api/health response.
type HealthStatus struct {
	Status     string          `json:"status"`
	Version    string          `json:"version,omitempty"`
	Components map[string]bool `json:"components,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// Healthy reports whether the service declared itself healthy.
func (h HealthStatus) Healthy() bool { return h.Status == "healthy" }

// Metal describes one supported metal from GET /api/metals.
type Metal struct {
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	TypicalRecyclingRate string `json:"typical_recycling_rate"`
}

// metalsResponse is the GET /api/metals envelope.
type metalsResponse struct {
	Metals []Metal `json:"metals"`
}

// ModelMetrics is the GET /api/model/metrics response: performance figures
// for the service's prediction models.
type ModelMetrics struct {
	R2Score         float64 `json:"r2_score"`
	F1Score         float64 `json:"f1_score"`
	Accuracy        float64 `json:"accuracy"`
	MAE             float64 `json:"mae"`
	RMSE            float64 `json:"rmse"`
	ErrorPercentage float64 `json:"error_percentage"`
}

// RawComparison is one element of a live comparison response, in the shape
// the compare endpoint emits ("scenarios" or the legacy "comparisons" alias).
type RawComparison struct {
	Process     process.Description    `json:"process"`
	LCA         process.AnalysisResult `json:"lca"`
	Circularity json.RawMessage        `json:"circularity,omitempty"`
}

// StoredAnalysis is one element of the stored-analyses listing
// (GET /api/comparisons), which uses input/results field names instead.
type StoredAnalysis struct {
	ID        int64                  `json:"id"`
	Timestamp string                 `json:"timestamp,omitempty"`
	Input     process.Description    `json:"input"`
	Results   process.AnalysisResult `json:"results"`
}

// ComparisonPayload is the superset envelope for every comparison-shaped
// response the service is known to emit. Exactly one of the three lists is
// populated per response; the normalizer resolves which. Decoding happens
// once here at the boundary so nothing downstream duck-types the payload.
type ComparisonPayload struct {
	Scenarios   []RawComparison  `json:"scenarios,omitempty"`
	Comparisons []RawComparison  `json:"comparisons,omitempty"`
	Analyses    []StoredAnalysis `json:"analyses,omitempty"`

	// Stored-analyses listing metadata; absent on live comparisons.
	ComparisonAvailable bool `json:"comparison_available,omitempty"`
	TotalCount          int  `json:"total_count,omitempty"`
}

// SimulationOutcome is one simulated scenario result.
type SimulationOutcome struct {
	Scenario string          `json:"scenario"`
	Results  json.RawMessage `json:"results"`
}

// simulationResponse is the POST /api/data/simulate envelope.
type simulationResponse struct {
	Simulations []SimulationOutcome `json:"simulations"`
}

// reportResponse is the POST /api/report/generate envelope. The report body
// is opaque to this layer; rendering decides how to display it.
type reportResponse struct {
	Report json.RawMessage `json:"report"`
}

// graphResponse is the GET /api/circularity/graph/{id} envelope.
type graphResponse struct {
	Graph json.RawMessage `json:"graph"`
}

// messageResponse is the generic {"message": ...} acknowledgment envelope.
type messageResponse struct {
	Message string `json:"message"`
}

// errorBody is the FastAPI error envelope on non-2xx responses.
type errorBody struct {
	Detail string `json:"detail"`
}
