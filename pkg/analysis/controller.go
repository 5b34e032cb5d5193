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

// Controller owns the dashboard's ViewState and serializes every mutation
// through Reduce. It is the single writer; the UI scheduler is the single
// caller, so the controller carries no lock.
type Controller struct {
	state ViewState
	queue *Queue
	orch  *Orchestrator
	svc   Service
	notes *notify.Channel
	log   *logging.Logger
}

// NewController assembles the workflow layer around a gateway service.
func NewController(svc Service, notes *notify.Channel, log *logging.Logger) *Controller {
	if notes == nil {
		notes = notify.NewChannel()
	}
	if log == nil {
		log = logging.Default()
	}
	return &Controller{
		state: NewViewState(),
		queue: NewQueue(),
		orch:  NewOrchestrator(svc, notes, log),
		svc:   svc,
		notes: notes,
		log:   log,
	}
}

// State returns the current view state.
func (c *Controller) State() ViewState { return c.state }

// Notifications exposes the notification channel for the UI shell to drain.
func (c *Controller) Notifications() *notify.Channel { return c.notes }

// QueueEntries returns the queued comparison entries in insertion order.
func (c *Controller) QueueEntries() []QueueEntry { return c.queue.Entries() }

// QueueLen reports the comparison queue length.
func (c *Controller) QueueLen() int { return c.queue.Len() }

// RunAnalysis validates the description and, when valid, runs the two-stage
// analysis workflow. Validation failures come back as the field-error map
// for inline display and never start the workflow. Service failures leave
// LastResult untouched; Busy is cleared unconditionally either way.
//
// The begin/finish pair below is the same workflow split for event-loop
// callers: state writes stay on the caller's scheduler while the network
// stage runs elsewhere.
func (c *Controller) RunAnalysis(ctx context.Context, d process.Description) (process.Result, error) {
	result, ok := c.BeginAnalysis(d)
	if !ok {
		return result, nil
	}
	outcome, err := c.Analyze(ctx, d)
	c.FinishAnalysis(outcome, err)
	return result, err
}

// BeginAnalysis validates the description and marks the workflow in flight.
// The returned bool reports whether the workflow started; when false the
// result carries the field-error map and no state changed.
func (c *Controller) BeginAnalysis(d process.Description) (process.Result, bool) {
	result := process.Validate(d)
	if !result.Valid {
		return result, false
	}
	c.apply(AnalysisStarted{})
	return result, true
}

// Analyze runs the two-stage workflow's network calls without touching view
// state, so it may run off the UI scheduler. Pair with FinishAnalysis.
func (c *Controller) Analyze(ctx context.Context, d process.Description) (*Outcome, error) {
	return c.orch.Run(ctx, d)
}

// FinishAnalysis applies the workflow outcome to the view state.
func (c *Controller) FinishAnalysis(outcome *Outcome, err error) {
	if err != nil {
		c.apply(AnalysisFailed{})
		return
	}
	c.apply(AnalysisSucceeded{Outcome: outcome})
}

// AddToQueue validates and appends a description to the comparison queue.
func (c *Controller) AddToQueue(d process.Description) process.Result {
	result := c.queue.Add(d)
	if result.Valid {
		c.notes.Info("Added " + d.Label() + " to comparison queue")
	}
	return result
}

// RemoveFromQueue drops the queue entry at index. Emptying the queue clears
// comparison mode so the tab reverts to its empty state instead of an empty
// table.
func (c *Controller) RemoveFromQueue(index int) {
	if c.queue.Remove(index) {
		c.apply(ComparisonModeCleared{})
	}
}

// ClearQueue resets the comparison queue and comparison mode.
func (c *Controller) ClearQueue() {
	c.queue.Clear()
	c.apply(ComparisonModeCleared{})
}

// SubmitComparison dispatches the whole queue to the compare operation and
// normalizes the response. Fails with ErrInsufficientEntries before any
// network call when the queue holds fewer than MinComparisonEntries.
func (c *Controller) SubmitComparison(ctx context.Context) error {
	batch, err := c.BeginComparison()
	if err != nil {
		return err
	}
	payload, err := c.Compare(ctx, batch)
	return c.FinishComparison(payload, err)
}

// BeginComparison checks the queue precondition and marks the submission in
// flight, returning the batch to send. On ErrInsufficientEntries no state
// changed and nothing may be dispatched.
func (c *Controller) BeginComparison() ([]process.Description, error) {
	batch, err := c.queue.Descriptions()
	if err != nil {
		return nil, err
	}
	c.apply(ComparisonStarted{})
	return batch, nil
}

// Compare runs the batch comparison call without touching view state, so it
// may run off the UI scheduler. Pair with FinishComparison.
func (c *Controller) Compare(ctx context.Context, batch []process.Description) (*gateway.ComparisonPayload, error) {
	return c.svc.Compare(ctx, batch)
}

// FinishComparison applies a submission outcome to the view state and
// returns the submission error, if any.
func (c *Controller) FinishComparison(payload *gateway.ComparisonPayload, err error) error {
	if err != nil {
		c.apply(ComparisonFailed{})
		c.notes.Error("Comparison failed: " + err.Error())
		return err
	}
	c.apply(ComparisonLoaded{Entries: Normalize(payload), Live: true})
	c.notes.Success("Comparison ready")
	return nil
}

// SelectTab switches the active tab. Arriving at the comparison tab with an
// empty queue fetches and normalizes the stored-analyses history, so a cold
// visitor sees history while a user mid-comparison sees their live result.
// A failed history fetch still switches the tab; the data is supplementary.
func (c *Controller) SelectTab(ctx context.Context, tab Tab) {
	if c.WantsHistory(tab) {
		payload, err := c.FetchHistory(ctx)
		c.FinishHistory(payload, err)
	}
	c.SwitchTab(tab)
}

// WantsHistory reports whether switching to tab should fetch the stored
// analyses first: the comparison tab with an empty local queue.
func (c *Controller) WantsHistory(tab Tab) bool {
	return tab == TabComparison && c.queue.Len() == 0
}

// FetchHistory retrieves the stored-analyses listing without touching view
// state, so it may run off the UI scheduler. Pair with FinishHistory.
func (c *Controller) FetchHistory(ctx context.Context) (*gateway.ComparisonPayload, error) {
	return c.svc.StoredComparisons(ctx)
}

// FinishHistory applies a fetched history listing. Fetch failures are logged
// and leave the previous comparisons in place.
func (c *Controller) FinishHistory(payload *gateway.ComparisonPayload, err error) {
	if err != nil {
		c.log.Warn("stored comparisons fetch failed", "error", err.Error())
		return
	}
	c.apply(ComparisonLoaded{Entries: Normalize(payload), Live: false})
}

// SwitchTab applies a pure tab transition with no side effects.
func (c *Controller) SwitchTab(tab Tab) {
	c.apply(TabSelected{Tab: tab})
}

func (c *Controller) apply(e Event) {
	c.state = Reduce(c.state, e)
}
