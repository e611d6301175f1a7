// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package explainer

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// Kind is the failure class of an Explain error.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindStatus
	KindProtocol
	KindCanceled
	KindUnknown
)

// String returns the kind name used in log fields.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindProtocol:
		return "protocol"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classify returns the failure class of err.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return KindStatus
	}
	var protoErr *ProtocolError
	if errors.As(err, &protoErr) {
		return KindProtocol
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindTransport
	}
	return KindUnknown
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// TransportError reports a request that produced no response.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("explainer %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response.
type StatusError struct {
	Status int
	// Body holds the start of the response body.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("explainer returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("explainer returned HTTP %d", e.Status)
}

// ProtocolError reports a response body that is not a valid answer.
type ProtocolError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("explainer response invalid: %s: %v", e.Reason, e.Err)
	}
	return "explainer response invalid: " + e.Reason
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error { return e.Err }

// ErrResponseTooLarge is wrapped by a ProtocolError when the body exceeds
// MaxResponseSize.
var ErrResponseTooLarge = errors.New("response body too large")
