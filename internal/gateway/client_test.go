// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SCRIPTED TRANSPORT
// =============================================================================

// scriptedCall records what the client sent on one attempt.
type scriptedCall struct {
	url       string
	body      []byte
	remaining time.Duration // time left until the attempt deadline
}

// scriptedTransport plays back a fixed sequence of responses and records each
// attempt, so retry behavior can be asserted without a network.
type scriptedTransport struct {
	mu    sync.Mutex
	steps []func(*http.Request) (*http.Response, error)
	calls []scriptedCall
}

func (s *scriptedTransport) roundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	call := scriptedCall{url: req.URL.String()}
	if req.Body != nil {
		call.body, _ = io.ReadAll(req.Body)
	}
	if deadline, ok := req.Context().Deadline(); ok {
		call.remaining = time.Until(deadline)
	}
	s.calls = append(s.calls, call)
	idx := len(s.calls) - 1
	if idx >= len(s.steps) {
		idx = len(s.steps) - 1
	}
	step := s.steps[idx]
	s.mu.Unlock()
	return step(req)
}

func (s *scriptedTransport) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func respondJSON(status int, statusText, body string) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     statusText,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func respondError(err error) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) {
		return nil, err
	}
}

func timeoutErr() error {
	return &url.Error{Op: "Post", URL: "http://127.0.0.1:8000/api/query", Err: context.DeadlineExceeded}
}

func connRefusedErr() error {
	return &url.Error{
		Op:  "Post",
		URL: "http://127.0.0.1:8000/api/query",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
	}
}

// newTestClient wires a scripted transport into a client with a short retry
// delay. Attempt deadlines stay at production values so the escalation is
// observable through the recorded contexts.
func newTestClient(transport *scriptedTransport) *Client {
	return NewClientWithConfig(&ClientConfig{
		RetryDelay: 5 * time.Millisecond,
		Transport:  transport.roundTrip,
	})
}

const successBody = `{
	"status": "success",
	"response": "Dengue is a mosquito-borne viral infection.",
	"query": "What is dengue?",
	"source": "multilingual-rasa",
	"detected_language": "English",
	"was_translated": false,
	"english_query": "What is dengue?"
}`

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmitSuccess(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK", successBody),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.True(t, outcome.OK())
	assert.Equal(t, 1, outcome.Attempts)
	assert.Equal(t, "Dengue is a mosquito-borne viral infection.", outcome.Answer.Text)
	assert.Equal(t, "multilingual-rasa", outcome.Answer.Source)
	assert.Equal(t, "English", outcome.Answer.DetectedLanguage)
	assert.False(t, outcome.Answer.WasTranslated)
}

func TestSubmitRequestBody(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK", successBody),
	}}
	client := newTestClient(transport)

	client.Submit(context.Background(), Request{Text: "  What is dengue?  ", SessionID: "web_abc123"})

	require.Equal(t, 1, transport.callCount())
	assert.True(t, strings.HasSuffix(transport.calls[0].url, "/api/query"))

	var sent QueryRequest
	require.NoError(t, json.Unmarshal(transport.calls[0].body, &sent))
	assert.Equal(t, "What is dengue?", sent.Query, "query should be trimmed")
	assert.Equal(t, "web_abc123", sent.UserID)
}

func TestSubmitDefaultUserID(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK", successBody),
	}}
	client := newTestClient(transport)

	client.Submit(context.Background(), Request{Text: "What is dengue?"})

	var sent QueryRequest
	require.NoError(t, json.Unmarshal(transport.calls[0].body, &sent))
	assert.Equal(t, "web_user", sent.UserID)
}

func TestSubmitRetriesAfterTimeout(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondError(timeoutErr()),
		respondJSON(http.StatusOK, "200 OK", successBody),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.True(t, outcome.OK(), "second attempt should recover the query")
	assert.Equal(t, 2, outcome.Attempts)
	require.Equal(t, 2, transport.callCount())

	// First attempt runs under the 30s deadline, the retry under 60s.
	assert.Greater(t, transport.calls[0].remaining, 25*time.Second)
	assert.LessOrEqual(t, transport.calls[0].remaining, 30*time.Second)
	assert.Greater(t, transport.calls[1].remaining, 55*time.Second)
	assert.LessOrEqual(t, transport.calls[1].remaining, 60*time.Second)
}

func TestSubmitTimeoutTwice(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondError(timeoutErr()),
		respondError(timeoutErr()),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, FailureTimeout, outcome.Failure.Kind)
	assert.Equal(t, 2, outcome.Attempts)
	assert.Equal(t, 2, transport.callCount(), "no third attempt after the retry fails")
}

func TestSubmitConnectionRefusedRetries(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondError(connRefusedErr()),
		respondError(connRefusedErr()),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, FailureNetworkUnreachable, outcome.Failure.Kind)
	assert.Equal(t, 2, outcome.Attempts)
}

func TestSubmitServerErrorIsTerminal(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusInternalServerError, "500 Internal Server Error",
			`{"detail": "An error occurred: catalog unavailable"}`),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, FailureServerError, outcome.Failure.Kind)
	assert.Equal(t, "An error occurred: catalog unavailable", outcome.Failure.Message)
	assert.Equal(t, 1, outcome.Attempts, "a definitive backend error is never retried")
	assert.Equal(t, 1, transport.callCount())
}

func TestSubmitServerErrorWithoutDetail(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusBadGateway, "502 Bad Gateway", ""),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, FailureServerError, outcome.Failure.Kind)
	assert.Contains(t, outcome.Failure.Message, "502")
	assert.Equal(t, 1, outcome.Attempts)
}

func TestSubmitNonSuccessPayload(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK",
			`{"status": "error", "message": "Disease not found in database."}`),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, FailureServerError, outcome.Failure.Kind)
	assert.Equal(t, "Disease not found in database.", outcome.Failure.Message)
	assert.Equal(t, 1, outcome.Attempts)
}

func TestSubmitEmptyAnswerIsServerError(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK", `{"status": "success", "response": ""}`),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, FailureServerError, outcome.Failure.Kind)
}

func TestSubmitMalformedBody(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK", `{not json`),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, FailureServerError, outcome.Failure.Kind)
	assert.Equal(t, 1, outcome.Attempts)
}

func TestSubmitEmptyQuery(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK", successBody),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: "   \n\t  "})

	require.False(t, outcome.OK())
	assert.Equal(t, 0, outcome.Attempts)
	assert.Equal(t, 0, transport.callCount(), "empty queries never reach the wire")
}

func TestSubmitOverlongQuery(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondJSON(http.StatusOK, "200 OK", successBody),
	}}
	client := newTestClient(transport)

	outcome := client.Submit(context.Background(), Request{Text: strings.Repeat("a", MaxQueryLength+1)})

	require.False(t, outcome.OK())
	assert.Equal(t, 0, transport.callCount())
}

func TestSubmitCanceledDuringRetryWait(t *testing.T) {
	transport := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){
		respondError(timeoutErr()),
	}}
	client := NewClientWithConfig(&ClientConfig{
		RetryDelay: 500 * time.Millisecond,
		Transport:  transport.roundTrip,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	outcome := client.Submit(ctx, Request{Text: "What is dengue?"})

	require.False(t, outcome.OK())
	assert.Equal(t, 1, outcome.Attempts)
	assert.Equal(t, 1, transport.callCount(), "cancellation during the backoff suppresses the retry")
}

func TestWorstCaseLatencyBound(t *testing.T) {
	cfg := DefaultConfig()
	total := cfg.FirstAttemptTimeout + cfg.RetryDelay + cfg.RetryAttemptTimeout
	assert.LessOrEqual(t, total, 92*time.Second)
	assert.Equal(t, 2, cfg.MaxAttempts)
}

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"deadline exceeded", context.DeadlineExceeded, FailureTimeout},
		{"wrapped deadline", timeoutErr(), FailureTimeout},
		{"connection refused", connRefusedErr(), FailureNetworkUnreachable},
		{"dns failure", &url.Error{Op: "Post", URL: "x", Err: &net.DNSError{Err: "no such host", Name: "arogya.invalid"}}, FailureNetworkUnreachable},
		{"canceled", context.Canceled, FailureUnknown},
		{"generic", errors.New("boom"), FailureUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTransportError(tt.err))
		})
	}
}

func TestFailureKindRetryable(t *testing.T) {
	assert.True(t, FailureTimeout.Retryable())
	assert.True(t, FailureNetworkUnreachable.Retryable())
	assert.False(t, FailureServerError.Retryable())
	assert.False(t, FailureUnknown.Retryable())
}

func TestClientErrorUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := &ClientError{Kind: FailureServerError, Message: "bad response", Cause: cause}
	assert.Equal(t, "bad response: root", err.Error())
	assert.True(t, errors.Is(err, cause))
}

// =============================================================================
// BOUNDARY ENDPOINT TESTS
// =============================================================================

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"status":"healthy","rasa_available":true,"diseases_loaded":42,"multilingual_support":true,"groq_api_available":true}`)
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	health, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.RasaAvailable)
	assert.Equal(t, 42, health.DiseasesLoaded)
}

func TestHealthBackendDown(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		// Nothing listens here.
		BaseURL:      "http://127.0.0.1:1",
		ProbeTimeout: 2 * time.Second,
	})

	_, err := client.Health(context.Background())
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, FailureNetworkUnreachable, clientErr.Kind)
}

func TestListDiseases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"success","diseases":["Dengue","Malaria","Typhoid"]}`)
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	diseases, err := client.ListDiseases(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Dengue", "Malaria", "Typhoid"}, diseases)
}

func TestListDiseasesBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"error","diseases":[],"message":"catalog not loaded"}`)
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	_, err := client.ListDiseases(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog not loaded")
}

func TestSupportedLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"success","supported_languages":["English","Spanish","Hindi"]}`)
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL})
	langs, err := client.SupportedLanguages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Spanish", "Hindi"}, langs)
}
