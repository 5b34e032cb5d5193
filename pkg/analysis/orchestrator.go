// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analysis

import (
	"context"

	"github.com/veridion-labs/circulens/pkg/gateway"
	"github.com/veridion-labs/circulens/pkg/logging"
	"github.com/veridion-labs/circulens/pkg/notify"
	"github.com/veridion-labs/circulens/pkg/process"
)

// Service is the subset of gateway operations the workflow layer drives.
// *gateway.Client satisfies it; tests substitute a mock.
type Service interface {
	AnalyzeLCA(ctx context.Context, d process.Description) (*process.AnalysisResult, error)
	AnalyzeCircularity(ctx context.Context, d process.Description) (*process.CircularityAnalysis, error)
	Compare(ctx context.Context, batch []process.Description) (*gateway.ComparisonPayload, error)
	StoredComparisons(ctx context.Context) (*gateway.ComparisonPayload, error)
}

// Orchestrator runs the two-stage analysis workflow: one LCA call followed by
// one circularity call for the same description. The pair is all-or-nothing;
// a failure at either stage discards everything, because the dashboard
// presents the two records as one unit.
type Orchestrator struct {
	svc   Service
	notes *notify.Channel
	log   *logging.Logger
}

// NewOrchestrator wires an orchestrator to a service and notification channel.
func NewOrchestrator(svc Service, notes *notify.Channel, log *logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.Default()
	}
	return &Orchestrator{svc: svc, notes: notes, log: log}
}

// Run executes the analysis workflow for one description.
//
// The circularity call is deliberately sequential, not concurrent: the
// service assumes the LCA call has warmed its caches, and sequential
// ordering keeps error attribution unambiguous. Failures are never retried;
// the user resubmits.
func (o *Orchestrator) Run(ctx context.Context, d process.Description) (*Outcome, error) {
	o.log.Info("analysis started", "metal", string(d.MetalType), "route", string(d.ProcessRoute))

	lca, err := o.svc.AnalyzeLCA(ctx, d)
	if err != nil {
		o.log.Warn("lca stage failed", "error", err.Error())
		o.notes.Error("Analysis failed: " + err.Error())
		return nil, err
	}

	circ, err := o.svc.AnalyzeCircularity(ctx, d)
	if err != nil {
		// The LCA result is discarded with the failure. Never show an LCA
		// result without its circularity counterpart.
		o.log.Warn("circularity stage failed", "error", err.Error())
		o.notes.Error("Circularity analysis failed: " + err.Error())
		return nil, err
	}

	o.log.Info("analysis complete", "metal", string(d.MetalType),
		"co2_emissions", lca.CO2Emissions, "circularity_score", circ.CurrentScore)
	o.notes.Success("Analysis complete for " + d.Label())
	return &Outcome{LCA: lca, Circularity: circ}, nil
}
