// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and entries.
package model

// =============================================================================
// STATUS STATE MACHINE
// =============================================================================

// Phase enumerates the conversation lifecycle states.
type Phase int

const (
	// PhaseIdle means the conversation accepts a new submission.
	PhaseIdle Phase = iota
	// PhaseSending means a query is in flight; submissions are rejected.
	PhaseSending
	// PhaseError means the last query failed; the error is shown until
	// dismissed, but new submissions are still accepted.
	PhaseError
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSending:
		return "sending"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the conversation's UI-facing state, modeled as an explicit tagged
// value rather than ad hoc flags so the single-flight rule is checkable at the
// type level. Detail carries the error message when Phase is PhaseError.
type Status struct {
	Phase  Phase
	Detail string
}

// StatusIdle returns the idle status.
func StatusIdle() Status {
	return Status{Phase: PhaseIdle}
}

// StatusSending returns the in-flight status.
func StatusSending() Status {
	return Status{Phase: PhaseSending}
}

// StatusError returns an error status carrying the failure detail.
func StatusError(detail string) Status {
	return Status{Phase: PhaseError, Detail: detail}
}

// CanSubmit reports whether a new submission is accepted in this status.
// Exactly one query may be in flight per conversation.
func (s Status) CanSubmit() bool {
	return s.Phase != PhaseSending
}

// BeginSend transitions to Sending. Allowed from Idle and Error; rejected
// while another query is in flight.
func (s Status) BeginSend() (Status, bool) {
	if !s.CanSubmit() {
		return s, false
	}
	return StatusSending(), true
}

// FinishOK transitions Sending back to Idle. Only valid while in flight.
func (s Status) FinishOK() (Status, bool) {
	if s.Phase != PhaseSending {
		return s, false
	}
	return StatusIdle(), true
}

// Fail transitions Sending to Error with the given detail. Only valid while
// in flight.
func (s Status) Fail(detail string) (Status, bool) {
	if s.Phase != PhaseSending {
		return s, false
	}
	return StatusError(detail), true
}

// Dismiss clears an Error status back to Idle. A no-op in any other phase.
func (s Status) Dismiss() Status {
	if s.Phase == PhaseError {
		return StatusIdle()
	}
	return s
}
