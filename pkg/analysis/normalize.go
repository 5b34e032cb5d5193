// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analysis

import (
	"github.com/veridion-labs/circulens/pkg/gateway"
	"github.com/veridion-labs/circulens/pkg/process"
)

// MinComparisonEntries is the smallest set that constitutes a comparison.
// Applies both to queue submission and to treating a stored-analyses
// listing as usable comparison data.
const MinComparisonEntries = 2

// ComparisonEntry is the canonical pairing of a process description with its
// analysis result, used for side-by-side display. Entries are only ever
// constructed by Normalize, so downstream code sees one uniform shape
// regardless of which wire envelope the data arrived in.
type ComparisonEntry struct {
	Label   string
	Process process.Description
	LCA     process.AnalysisResult
}

// Normalize reconciles the comparison envelopes the service emits into the
// canonical entry list. Three shapes exist for historical reasons:
//
//   - "scenarios": the current compare response
//   - "comparisons": legacy alias, same inner shape
//   - "analyses": the stored listing, with input/results field names
//
// Resolution prefers scenarios, then comparisons, then analyses. An analyses
// listing below MinComparisonEntries normalizes to empty, matching the queue
// submission minimum. An unrecognized or empty payload yields an empty list
// rather than an error — comparison data is supplementary, and the view must
// never fail over it.
func Normalize(payload *gateway.ComparisonPayload) []ComparisonEntry {
	if payload == nil {
		return []ComparisonEntry{}
	}

	switch {
	case len(payload.Scenarios) > 0:
		return fromComparisons(payload.Scenarios)
	case len(payload.Comparisons) > 0:
		return fromComparisons(payload.Comparisons)
	case len(payload.Analyses) >= MinComparisonEntries:
		return fromStored(payload.Analyses)
	}
	return []ComparisonEntry{}
}

func fromComparisons(raw []gateway.RawComparison) []ComparisonEntry {
	entries := make([]ComparisonEntry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, ComparisonEntry{
			Label:   r.Process.Label(),
			Process: r.Process,
			LCA:     r.LCA,
		})
	}
	return entries
}

func fromStored(stored []gateway.StoredAnalysis) []ComparisonEntry {
	entries := make([]ComparisonEntry, 0, len(stored))
	for _, s := range stored {
		entries = append(entries, ComparisonEntry{
			Label:   s.Input.Label(),
			Process: s.Input,
			LCA:     s.Results,
		})
	}
	return entries
}
