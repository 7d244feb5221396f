// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for communicating with the
// ArogyaAI backend API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// MaxQueryLength is the longest query the backend accepts.
const MaxQueryLength = 500

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Transport performs a single HTTP exchange. It is injected so the retry
// policy in Submit can be exercised against a deterministic fake; the default
// wraps net/http.
type Transport func(req *http.Request) (*http.Response, error)

// ClientConfig holds configuration options for the gateway client.
type ClientConfig struct {
	// BaseURL is the ArogyaAI API base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// FirstAttemptTimeout is the deadline for the first query attempt (default: 30s)
	FirstAttemptTimeout time.Duration

	// RetryAttemptTimeout is the extended deadline for the retry attempt (default: 60s)
	RetryAttemptTimeout time.Duration

	// RetryDelay between the first attempt and the retry (default: 2s)
	RetryDelay time.Duration

	// MaxAttempts per query, including the first (default: 2)
	MaxAttempts int

	// ProbeTimeout for health and catalog requests (default: 5s)
	ProbeTimeout time.Duration

	// UserID sent with each query if the request has no session ID (default: "web_user")
	UserID string

	// Transport performs HTTP exchanges (default: net/http)
	Transport Transport
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:             "http://127.0.0.1:8000",
		FirstAttemptTimeout: 30 * time.Second,
		RetryAttemptTimeout: 60 * time.Second,
		RetryDelay:          2 * time.Second,
		MaxAttempts:         2,
		ProbeTimeout:        5 * time.Second,
		UserID:              "web_user",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the ArogyaAI backend API.
// It provides the query submission path plus health and catalog lookups.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := gateway.NewClient()
//	outcome := client.Submit(ctx, gateway.Request{Text: "What is dengue?"})
//	if outcome.OK() {
//	    fmt.Println(outcome.Answer.Text)
//	}
type Client struct {
	config *ClientConfig
}

// NewClient creates a new gateway client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new gateway client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.FirstAttemptTimeout == 0 {
		config.FirstAttemptTimeout = 30 * time.Second
	}
	if config.RetryAttemptTimeout == 0 {
		config.RetryAttemptTimeout = 60 * time.Second
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 2 * time.Second
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 2
	}
	if config.ProbeTimeout == 0 {
		config.ProbeTimeout = 5 * time.Second
	}
	if config.UserID == "" {
		config.UserID = "web_user"
	}
	if config.Transport == nil {
		httpClient := &http.Client{}
		config.Transport = httpClient.Do
	}

	return &Client{config: config}
}

// =============================================================================
// QUERY SUBMISSION
// =============================================================================

// Request is a query to submit to the backend.
type Request struct {
	Text      string // The user's query (1..MaxQueryLength after trimming)
	SessionID string // Conversation session ID; falls back to the configured UserID
}

// Answer is the payload of a successful query.
type Answer struct {
	Text             string // The answer text, in the user's language
	Source           string // Which backend path produced the answer
	DetectedLanguage string // Language the backend detected, if any
	WasTranslated    bool   // True if the exchange passed through translation
	EnglishQuery     string // The query after translation to English
}

// Failure describes why a query did not produce an answer.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Outcome is the result of Submit. Exactly one of Answer or Failure is set.
// Attempts counts the HTTP attempts actually made.
type Outcome struct {
	Answer   *Answer
	Failure  *Failure
	Attempts int
}

// OK reports whether the query produced an answer.
func (o Outcome) OK() bool {
	return o.Answer != nil
}

// Submit sends a query to the backend and returns the outcome. It never
// returns a Go error: every failure mode is folded into Outcome.Failure so
// callers have a single path to handle.
//
// The first attempt runs under FirstAttemptTimeout. If it fails in a way
// where the backend never gave a definitive response (timeout or the network
// being unreachable), Submit waits RetryDelay and tries once more under the
// longer RetryAttemptTimeout. A definitive backend error is terminal and is
// never retried.
func (c *Client) Submit(ctx context.Context, req Request) Outcome {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Outcome{Failure: &Failure{Kind: FailureUnknown, Message: "Please enter a question or disease name."}}
	}
	if len([]rune(text)) > MaxQueryLength {
		return Outcome{Failure: &Failure{Kind: FailureUnknown, Message: "Query is too long. Please keep it under 500 characters."}}
	}

	userID := req.SessionID
	if userID == "" {
		userID = c.config.UserID
	}

	body, err := json.Marshal(QueryRequest{Query: text, UserID: userID})
	if err != nil {
		return Outcome{Failure: &Failure{Kind: FailureUnknown, Message: "failed to encode query"}}
	}

	var last *Failure
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		answer, failure := c.attempt(ctx, body, c.attemptTimeout(attempt))
		if failure == nil {
			return Outcome{Answer: answer, Attempts: attempt}
		}

		last = failure
		if !failure.Kind.Retryable() || attempt == c.config.MaxAttempts {
			return Outcome{Failure: failure, Attempts: attempt}
		}
		if !c.waitBeforeRetry(ctx) {
			return Outcome{
				Failure:  &Failure{Kind: FailureUnknown, Message: "query canceled"},
				Attempts: attempt,
			}
		}
	}

	// Unreachable with MaxAttempts >= 1; kept so the compiler sees a return.
	return Outcome{Failure: last, Attempts: c.config.MaxAttempts}
}

// attemptTimeout returns the deadline for the given attempt number. The
// retry runs under the longer timeout to give a slow backend a real chance.
func (c *Client) attemptTimeout(attempt int) time.Duration {
	if attempt == 1 {
		return c.config.FirstAttemptTimeout
	}
	return c.config.RetryAttemptTimeout
}

// attempt performs one HTTP exchange under its own deadline.
func (c *Client) attempt(ctx context.Context, body []byte, timeout time.Duration) (*Answer, *Failure) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.config.BaseURL+"/api/query", bytes.NewReader(body))
	if err != nil {
		return nil, &Failure{Kind: FailureUnknown, Message: "failed to create request"}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.config.Transport(httpReq)
	if err != nil {
		kind := classifyTransportError(err)
		return nil, &Failure{Kind: kind, Message: failureMessage(kind)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The backend answered, so this is definitive. FastAPI carries the
		// human-readable message in the detail field.
		msg := "query failed: " + resp.Status
		var errBody ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Detail != "" {
			msg = errBody.Detail
		}
		return nil, &Failure{Kind: FailureServerError, Message: msg}
	}

	var result QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Failure{Kind: FailureServerError, Message: "malformed response from backend"}
	}

	if result.Status != StatusSuccess || result.Response == "" {
		msg := result.Message
		if msg == "" {
			msg = "The backend reported an error. Please try again."
		}
		return nil, &Failure{Kind: FailureServerError, Message: msg}
	}

	return &Answer{
		Text:             result.Response,
		Source:           result.Source,
		DetectedLanguage: result.DetectedLanguage,
		WasTranslated:    result.WasTranslated,
		EnglishQuery:     result.EnglishQuery,
	}, nil
}

// waitBeforeRetry sleeps for the configured retry delay. Returns false if the
// caller's context ended first.
func (c *Client) waitBeforeRetry(ctx context.Context) bool {
	timer := time.NewTimer(c.config.RetryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// =============================================================================
// FAILURE CLASSIFICATION
// =============================================================================

// classifyTransportError maps a transport-level error to a failure kind.
func classifyTransportError(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	if errors.Is(err, context.Canceled) {
		return FailureUnknown
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.ECONNRESET) {
		return FailureNetworkUnreachable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailureNetworkUnreachable
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureNetworkUnreachable
	}
	return FailureUnknown
}

// failureMessage returns the user-facing message for a transport failure.
func failureMessage(kind FailureKind) string {
	switch kind {
	case FailureTimeout:
		return "The request timed out. The backend may be under heavy load."
	case FailureNetworkUnreachable:
		return "Could not reach the ArogyaAI backend. Is the server running?"
	default:
		return "An unexpected error occurred while contacting the backend."
	}
}

// =============================================================================
// HEALTH AND CATALOG
// =============================================================================

// Health fetches the backend health report from /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.get(ctx, "/health", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListDiseases fetches the disease catalog from /api/diseases. The returned
// order is the backend's catalog order.
func (c *Client) ListDiseases(ctx context.Context) ([]string, error) {
	var result DiseasesResponse
	if err := c.get(ctx, "/api/diseases", &result); err != nil {
		return nil, err
	}
	if result.Status != StatusSuccess {
		msg := result.Message
		if msg == "" {
			msg = "failed to load disease catalog"
		}
		return nil, &ClientError{Kind: FailureServerError, Message: msg}
	}
	return result.Diseases, nil
}

// SupportedLanguages fetches the supported language list from /api/languages.
func (c *Client) SupportedLanguages(ctx context.Context) ([]string, error) {
	var result LanguagesResponse
	if err := c.get(ctx, "/api/languages", &result); err != nil {
		return nil, err
	}
	if result.Status != StatusSuccess {
		return nil, &ClientError{Kind: FailureServerError, Message: "failed to load supported languages"}
	}
	return result.SupportedLanguages, nil
}

// get performs a single GET under the probe timeout and decodes the body.
func (c *Client) get(ctx context.Context, path string, out any) error {
	probeCtx, cancel := context.WithTimeout(ctx, c.config.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Kind: FailureUnknown, Message: "failed to create request", Cause: err}
	}

	resp, err := c.config.Transport(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrBackendDown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Kind:    FailureServerError,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Kind: FailureServerError, Message: "failed to decode response", Cause: err}
	}

	return nil
}
