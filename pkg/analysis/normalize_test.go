// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridion-labs/circulens/pkg/gateway"
	"github.com/veridion-labs/circulens/pkg/process"
)

func rawComparison(metal process.MetalType, co2 float64) gateway.RawComparison {
	return gateway.RawComparison{
		Process: process.Description{MetalType: metal, ProcessRoute: process.RoutePrimary},
		LCA:     process.AnalysisResult{MetalType: string(metal), CO2Emissions: co2},
	}
}

func storedAnalysis(id int64, metal process.MetalType, co2 float64) gateway.StoredAnalysis {
	return gateway.StoredAnalysis{
		ID:      id,
		Input:   process.Description{MetalType: metal, ProcessRoute: process.RouteRecycled},
		Results: process.AnalysisResult{MetalType: string(metal), CO2Emissions: co2},
	}
}

func TestNormalize_ScenariosAndComparisonsProduceIdenticalOutput(t *testing.T) {
	raw := []gateway.RawComparison{
		rawComparison(process.MetalAluminium, 12.5),
		rawComparison(process.MetalSteel, 2.1),
	}

	fromScenarios := Normalize(&gateway.ComparisonPayload{Scenarios: raw})
	fromLegacy := Normalize(&gateway.ComparisonPayload{Comparisons: raw})

	assert.Equal(t, fromScenarios, fromLegacy)
	require.Len(t, fromScenarios, 2)
	assert.Equal(t, "Aluminium - Primary", fromScenarios[0].Label)
}

func TestNormalize_ScenariosTakePrecedence(t *testing.T) {
	payload := &gateway.ComparisonPayload{
		Scenarios:   []gateway.RawComparison{rawComparison(process.MetalCopper, 3.0)},
		Comparisons: []gateway.RawComparison{rawComparison(process.MetalLead, 9.9)},
	}

	entries := Normalize(payload)
	require.Len(t, entries, 1)
	assert.Equal(t, process.MetalCopper, entries[0].Process.MetalType)
}

func TestNormalize_StoredAnalysesRemapped(t *testing.T) {
	payload := &gateway.ComparisonPayload{
		Analyses: []gateway.StoredAnalysis{
			storedAnalysis(1, process.MetalZinc, 6.1),
			storedAnalysis(2, process.MetalCopper, 4.7),
		},
	}

	entries := Normalize(payload)
	require.Len(t, entries, 2)
	assert.Equal(t, process.MetalZinc, entries[0].Process.MetalType)
	assert.Equal(t, 6.1, entries[0].LCA.CO2Emissions)
	assert.Equal(t, process.MetalCopper, entries[1].Process.MetalType)
	assert.Equal(t, 4.7, entries[1].LCA.CO2Emissions)
}

func TestNormalize_SingleStoredAnalysisBelowMinimum(t *testing.T) {
	payload := &gateway.ComparisonPayload{
		Analyses: []gateway.StoredAnalysis{storedAnalysis(1, process.MetalZinc, 6.1)},
	}

	assert.Empty(t, Normalize(payload))
}

func TestNormalize_EmptyAndNilPayloads(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize(&gateway.ComparisonPayload{}))
}
