// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for communicating with the
// ArogyaAI backend API.
package gateway

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the gateway client.
type ClientError struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// FailureKind categorizes query failures for handling and display.
type FailureKind int

const (
	// FailureUnknown covers failures that fit no other category.
	FailureUnknown FailureKind = iota
	// FailureTimeout means an attempt exceeded its deadline.
	FailureTimeout
	// FailureNetworkUnreachable means the backend could not be reached at all.
	FailureNetworkUnreachable
	// FailureServerError means the backend answered, but with an error. The
	// backend gave a definitive response, so the failure is terminal.
	FailureServerError
)

// String returns the string representation of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureNetworkUnreachable:
		return "network_unreachable"
	case FailureServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Retryable reports whether a failure of this kind warrants another attempt.
// Only failures where the backend never produced a definitive response are
// retryable.
func (k FailureKind) Retryable() bool {
	return k == FailureTimeout || k == FailureNetworkUnreachable
}

// Sentinel errors for easy checking.
var (
	ErrBackendDown = &ClientError{Kind: FailureNetworkUnreachable, Message: "ArogyaAI backend is not reachable"}
	ErrTimeout     = &ClientError{Kind: FailureTimeout, Message: "request timed out"}
)
