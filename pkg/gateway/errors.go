// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gateway

import "fmt"

// ErrorKind distinguishes how a call failed. Both kinds flow through the
// same ServiceError type so callers handle one taxonomy.
type ErrorKind string

const (
	// KindTransport covers failures before an HTTP response existed:
	// connection refused, DNS, timeout.
	KindTransport ErrorKind = "transport"

	// KindApplication covers non-2xx responses with a structured error body.
	KindApplication ErrorKind = "application"
)

// ServiceError is the single failure type surfaced by every gateway
// operation. Status is zero for transport failures.
type ServiceError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Kind == KindTransport {
		return fmt.Sprintf("service unreachable: %s", e.Message)
	}
	return fmt.Sprintf("service error (HTTP %d): %s", e.Status, e.Message)
}

// transportError wraps a pre-response failure.
func transportError(err error) *ServiceError {
	return &ServiceError{Kind: KindTransport, Message: err.Error()}
}

// applicationError wraps a non-2xx response.
func applicationError(status int, message string) *ServiceError {
	return &ServiceError{Kind: KindApplication, Status: status, Message: message}
}
