// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the live conversation and drives query submission.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/model"
	"github.com/arogyaai/arogya-tui/internal/util"
)

// baseLanguage is the language answers are authored in; detection of it is
// not worth announcing.
const baseLanguage = "English"

// Submitter is the slice of the gateway client the controller needs.
// gateway.Client satisfies it; tests inject a fake.
type Submitter interface {
	Submit(ctx context.Context, req gateway.Request) gateway.Outcome
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns a model.Conversation and serializes every mutation behind
// its mutex. The conversation is only ever touched on two paths: the submit
// path (user echo plus the Sending transition) and the completion path (one
// assistant entry plus the closing transition), both inside the lock.
//
// At most one query is in flight per conversation; a submission while one is
// pending is a silent no-op.
type Controller struct {
	mu   sync.Mutex
	conv *model.Conversation
	gw   Submitter

	// onUpdate is invoked with a fresh snapshot after every state change.
	onUpdate func(model.Snapshot)

	// onSubmit is invoked with the trimmed query text once a submission is
	// accepted. Used to feed the persistent input history.
	onSubmit func(string)

	// lastFailure is the failure behind the current Error status, for views
	// that classify errors beyond the detail text.
	lastFailure *gateway.Failure

	inflight sync.WaitGroup
}

// NewController creates a controller for a fresh conversation.
func NewController(gw Submitter) *Controller {
	return &Controller{
		conv: model.NewConversation(),
		gw:   gw,
	}
}

// SetUpdateCallback registers fn to be called with a snapshot after every
// state change. Must be set before the first submission.
func (c *Controller) SetUpdateCallback(fn func(model.Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// SetSubmitHook registers fn to be called with each accepted query text.
func (c *Controller) SetSubmitHook(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSubmit = fn
}

// SessionID returns the conversation's session identifier.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.ID
}

// Snapshot returns a point-in-time copy of the conversation state.
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Snapshot()
}

// LastFailure returns the failure behind the current Error status, or nil.
func (c *Controller) LastFailure() *gateway.Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFailure
}

// Wait blocks until any in-flight submission has completed.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// =============================================================================
// SUBMISSION
// =============================================================================

// SubmitUserMessage submits a query. The user's entry is appended immediately
// so the input feels acknowledged while the backend works. Returns false if
// the text is blank or another query is already in flight.
func (c *Controller) SubmitUserMessage(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	next, ok := c.conv.Status.BeginSend()
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.conv.Status = next
	c.conv.AddUserEntry(text)
	sessionID := c.conv.ID
	snap := c.conv.Snapshot()
	hook := c.onSubmit
	c.mu.Unlock()

	if hook != nil {
		hook(text)
	}
	c.notify(snap)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		outcome := c.gw.Submit(context.Background(), gateway.Request{
			Text:      text,
			SessionID: sessionID,
		})
		c.complete(outcome)
	}()

	return true
}

// complete applies a gateway outcome: exactly one assistant entry plus the
// closing status transition.
func (c *Controller) complete(outcome gateway.Outcome) {
	c.mu.Lock()

	if outcome.OK() {
		answer := outcome.Answer
		c.conv.AddAssistantEntry(renderAnswer(answer))
		if answer.DetectedLanguage != "" {
			c.conv.RecordDetectedLanguage(util.CanonicalLanguageName(answer.DetectedLanguage))
		}
		if next, ok := c.conv.Status.FinishOK(); ok {
			c.conv.Status = next
		}
		c.lastFailure = nil
	} else {
		failure := outcome.Failure
		c.lastFailure = failure
		c.conv.AddAssistantEntry(renderFailure(failure))
		if next, ok := c.conv.Status.Fail(failure.Message); ok {
			c.conv.Status = next
		}
	}

	snap := c.conv.Snapshot()
	c.mu.Unlock()
	c.notify(snap)
}

// DismissError acknowledges a displayed error and returns to Idle. The
// conversation log is untouched.
func (c *Controller) DismissError() {
	c.mu.Lock()
	c.conv.Status = c.conv.Status.Dismiss()
	snap := c.conv.Snapshot()
	c.mu.Unlock()
	c.notify(snap)
}

// AddSystemNotice appends a system entry, for connectivity or catalog
// notices surfaced outside the query path.
func (c *Controller) AddSystemNotice(body string) {
	c.mu.Lock()
	c.conv.AddSystemEntry(body)
	snap := c.conv.Snapshot()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) notify(snap model.Snapshot) {
	c.mu.Lock()
	fn := c.onUpdate
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// renderAnswer formats a successful answer for the log. When the backend
// translated the exchange, the answer is prefixed with a visible line naming
// the detected language.
func renderAnswer(a *gateway.Answer) string {
	lang := util.CanonicalLanguageName(a.DetectedLanguage)
	if a.WasTranslated && lang != "" && lang != baseLanguage {
		return "🌐 Detected language: " + lang + "\n\n" + a.Text
	}
	return a.Text
}

// renderFailure formats a failed query for the log. Transient failures carry
// remediation guidance; a definitive backend error is shown verbatim.
func renderFailure(f *gateway.Failure) string {
	switch f.Kind {
	case gateway.FailureTimeout, gateway.FailureNetworkUnreachable:
		return f.Message + "\n\nPlease try again. If the problem persists, check that the ArogyaAI backend is running and restart the client."
	case gateway.FailureServerError:
		return f.Message
	default:
		return "Something went wrong while processing your question. Please try again."
	}
}
