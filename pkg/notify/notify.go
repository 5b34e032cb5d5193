// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package notify implements the process-wide ephemeral notification queue.
//
// Components publish outcomes here; the UI shell drains the queue and renders
// the messages as dismissible notices. Notifications never persist and never
// block the publisher.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification for display styling.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is one ephemeral message for the UI shell.
type Notification struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// Channel is a bounded in-memory notification queue.
//
// Safe for concurrent use. Publishing to a full channel drops the oldest
// entry rather than blocking — notifications are advisory, not a log.
type Channel struct {
	mu    sync.Mutex
	queue []Notification
	limit int
}

// DefaultLimit caps the number of undrained notifications held in memory.
const DefaultLimit = 64

// NewChannel creates an empty notification channel.
func NewChannel() *Channel {
	return &Channel{limit: DefaultLimit}
}

// Publish appends a notification to the queue.
func (c *Channel) Publish(level Level, message string) Notification {
	n := Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, n)
	if len(c.queue) > c.limit {
		c.queue = c.queue[len(c.queue)-c.limit:]
	}
	return n
}

// Info publishes an informational notification.
func (c *Channel) Info(message string) Notification { return c.Publish(LevelInfo, message) }

// Success publishes a success notification.
func (c *Channel) Success(message string) Notification { return c.Publish(LevelSuccess, message) }

// Warning publishes a warning notification.
func (c *Channel) Warning(message string) Notification { return c.Publish(LevelWarning, message) }

// Error publishes an error notification.
func (c *Channel) Error(message string) Notification { return c.Publish(LevelError, message) }

// Drain removes and returns all pending notifications in publish order.
func (c *Channel) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.queue
	c.queue = nil
	return out
}

// Peek returns a copy of pending notifications without consuming them.
func (c *Channel) Peek() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.queue))
	copy(out, c.queue)
	return out
}

// Len reports the number of pending notifications.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}
