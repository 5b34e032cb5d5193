// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analysis

import (
	"errors"

	"github.com/veridion-labs/circulens/pkg/process"
)

// ErrInsufficientEntries is returned by a comparison submission when the
// queue holds fewer than MinComparisonEntries descriptions. It is a
// precondition failure: the UI disables the submit affordance rather than
// raising a notification.
var ErrInsufficientEntries = errors.New("comparison requires at least 2 queued processes")

// QueueEntry is one queued process description with its display name.
type QueueEntry struct {
	Label       string
	Description process.Description
}

// Queue is the client-held ordered collection of candidate processes awaiting
// a batch comparison. Insertion order is significant and duplicates are
// allowed: queuing the same configuration twice is a legitimate
// repeated-measurement comparison. Never persisted; lives for one session.
//
// Queue is not safe for concurrent use. The single UI scheduler is the only
// caller.
type Queue struct {
	entries []QueueEntry
}

// NewQueue returns an empty comparison queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add validates the description and, when valid, appends it under a
// synthesized label ("Aluminium - Primary"). On validation failure the queue
// is left untouched and the field-error map is returned for inline display.
func (q *Queue) Add(d process.Description) process.Result {
	result := process.Validate(d)
	if !result.Valid {
		return result
	}
	q.entries = append(q.entries, QueueEntry{Label: d.Label(), Description: d})
	return result
}

// Remove deletes the entry at index. Out-of-range indexes are ignored.
// Returns true when the queue is empty afterwards, which the controller uses
// to clear comparison mode.
func (q *Queue) Remove(index int) bool {
	if index >= 0 && index < len(q.entries) {
		q.entries = append(q.entries[:index], q.entries[index+1:]...)
	}
	return len(q.entries) == 0
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.entries = nil
}

// Len reports the number of queued entries.
func (q *Queue) Len() int { return len(q.entries) }

// Entries returns a copy of the queued entries in insertion order.
func (q *Queue) Entries() []QueueEntry {
	out := make([]QueueEntry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Descriptions returns the queued process descriptions in insertion order,
// ready for a batch compare call. Fails with ErrInsufficientEntries below
// the comparison minimum.
func (q *Queue) Descriptions() ([]process.Description, error) {
	if len(q.entries) < MinComparisonEntries {
		return nil, ErrInsufficientEntries
	}
	out := make([]process.Description, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.Description
	}
	return out, nil
}
