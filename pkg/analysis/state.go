// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analysis implements the dashboard's workflow core: the analysis
// orchestrator, the comparison queue, the comparison normalizer, and the
// view-state controller that ties them together.
//
// All mutable process-wide state lives in ViewState, owned by exactly one
// Controller. Transitions are pure functions over (state, event); the
// Controller is the only writer, and the UI layer is the only driver of
// concurrency, so no internal locking is needed.
package analysis

import "github.com/veridion-labs/circulens/pkg/process"

// Tab identifies one dashboard view.
type Tab string

const (
	TabInput       Tab = "input"
	TabResults     Tab = "results"
	TabCircularity Tab = "circularity"
	TabComparison  Tab = "comparison"
	TabMetrics     Tab = "metrics"
)

// Tabs lists all dashboard tabs in display order.
func Tabs() []Tab {
	return []Tab{TabInput, TabResults, TabCircularity, TabComparison, TabMetrics}
}

// Valid reports whether t names a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabInput, TabResults, TabCircularity, TabComparison, TabMetrics:
		return true
	}
	return false
}

// Outcome bundles the two result records of one successful analysis run.
// The pair is atomic: an Outcome either holds both records or is never
// constructed at all.
type Outcome struct {
	LCA         *process.AnalysisResult
	Circularity *process.CircularityAnalysis
}

// ViewState is the complete mutable state of the dashboard workflow.
// The zero value is not meaningful; use NewViewState.
type ViewState struct {
	ActiveTab Tab

	// Busy is true while an analysis or comparison submission is in flight.
	// The UI gates its submit affordances on this flag.
	Busy bool

	// LastResult holds the most recent successful analysis, or nil.
	LastResult *Outcome

	// LastComparisons holds the most recent normalized comparison set.
	LastComparisons []ComparisonEntry

	// ComparisonMode is true when LastComparisons came from a live queue
	// submission rather than the stored-analyses history.
	ComparisonMode bool
}

// NewViewState returns the session-start state: input tab, idle, no results.
func NewViewState() ViewState {
	return ViewState{ActiveTab: TabInput}
}

// Event is a state-machine input. Implementations are value types; applying
// one via Reduce never mutates the previous state.
type Event interface {
	isEvent()
}

// AnalysisStarted marks the beginning of a runAnalysis workflow.
type AnalysisStarted struct{}

// AnalysisSucceeded carries the atomic result pair of a finished workflow.
type AnalysisSucceeded struct {
	Outcome *Outcome
}

// AnalysisFailed marks a failed workflow. Partial results are discarded by
// the orchestrator before this event is emitted, so it carries nothing.
type AnalysisFailed struct{}

// ComparisonStarted marks the beginning of a comparison submission.
type ComparisonStarted struct{}

// ComparisonLoaded carries a normalized comparison set. Live distinguishes a
// queue submission from a stored-history fetch.
type ComparisonLoaded struct {
	Entries []ComparisonEntry
	Live    bool
}

// ComparisonFailed marks a failed comparison submission.
type ComparisonFailed struct{}

// ComparisonModeCleared reverts the comparison tab to its empty state,
// emitted when the queue shrinks to empty.
type ComparisonModeCleared struct{}

// TabSelected switches the active tab. Unknown tabs are ignored by Reduce.
type TabSelected struct {
	Tab Tab
}

func (AnalysisStarted) isEvent()       {}
func (AnalysisSucceeded) isEvent()     {}
func (AnalysisFailed) isEvent()        {}
func (ComparisonStarted) isEvent()     {}
func (ComparisonLoaded) isEvent()      {}
func (ComparisonFailed) isEvent()      {}
func (ComparisonModeCleared) isEvent() {}
func (TabSelected) isEvent()           {}

// Reduce applies one event to a state and returns the next state. Pure:
// no I/O, no mutation of the input, deterministic.
func Reduce(state ViewState, event Event) ViewState {
	switch e := event.(type) {
	case AnalysisStarted:
		state.Busy = true

	case AnalysisSucceeded:
		state.Busy = false
		state.LastResult = e.Outcome
		state.ActiveTab = TabResults

	case AnalysisFailed:
		// The tab does not transition and LastResult keeps its previous
		// value: the UI stays on whatever it was last showing.
		state.Busy = false

	case ComparisonStarted:
		state.Busy = true

	case ComparisonLoaded:
		state.Busy = false
		state.LastComparisons = e.Entries
		state.ComparisonMode = e.Live
		if e.Live {
			state.ActiveTab = TabComparison
		}

	case ComparisonFailed:
		state.Busy = false

	case ComparisonModeCleared:
		state.ComparisonMode = false

	case TabSelected:
		if e.Tab.Valid() {
			state.ActiveTab = e.Tab
		}
	}
	return state
}
