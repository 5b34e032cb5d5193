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
)

func TestReduce_AnalysisLifecycle(t *testing.T) {
	state := NewViewState()

	state = Reduce(state, AnalysisStarted{})
	assert.True(t, state.Busy)
	assert.Equal(t, TabInput, state.ActiveTab)

	outcome := &Outcome{}
	state = Reduce(state, AnalysisSucceeded{Outcome: outcome})
	assert.False(t, state.Busy)
	assert.Same(t, outcome, state.LastResult)
	assert.Equal(t, TabResults, state.ActiveTab)
}

func TestReduce_AnalysisFailureKeepsPreviousResult(t *testing.T) {
	previous := &Outcome{}
	state := NewViewState()
	state.LastResult = previous

	state = Reduce(state, AnalysisStarted{})
	state = Reduce(state, AnalysisFailed{})

	assert.False(t, state.Busy)
	assert.Same(t, previous, state.LastResult)
	assert.Equal(t, TabInput, state.ActiveTab)
}

func TestReduce_LiveComparisonSwitchesTab(t *testing.T) {
	state := NewViewState()
	entries := []ComparisonEntry{{Label: "a"}, {Label: "b"}}

	state = Reduce(state, ComparisonStarted{})
	assert.True(t, state.Busy)

	state = Reduce(state, ComparisonLoaded{Entries: entries, Live: true})
	assert.False(t, state.Busy)
	assert.True(t, state.ComparisonMode)
	assert.Equal(t, TabComparison, state.ActiveTab)
	assert.Equal(t, entries, state.LastComparisons)
}

func TestReduce_HistoryLoadDoesNotSwitchTab(t *testing.T) {
	state := NewViewState()

	state = Reduce(state, ComparisonLoaded{Entries: []ComparisonEntry{{Label: "a"}}, Live: false})
	assert.False(t, state.ComparisonMode)
	assert.Equal(t, TabInput, state.ActiveTab)
	assert.Len(t, state.LastComparisons, 1)
}

func TestReduce_TabSelection(t *testing.T) {
	state := NewViewState()

	state = Reduce(state, TabSelected{Tab: TabMetrics})
	assert.Equal(t, TabMetrics, state.ActiveTab)

	// Unknown tabs are ignored.
	state = Reduce(state, TabSelected{Tab: Tab("bogus")})
	assert.Equal(t, TabMetrics, state.ActiveTab)
}

func TestReduce_IsPure(t *testing.T) {
	original := NewViewState()
	_ = Reduce(original, AnalysisStarted{})

	assert.False(t, original.Busy, "Reduce must not mutate its input")
}

func TestReduce_ComparisonModeCleared(t *testing.T) {
	state := NewViewState()
	state = Reduce(state, ComparisonLoaded{Entries: nil, Live: true})
	state = Reduce(state, ComparisonModeCleared{})

	assert.False(t, state.ComparisonMode)
}
