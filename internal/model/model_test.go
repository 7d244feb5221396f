// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// ENTRY TESTS
// =============================================================================

func TestNewEntry(t *testing.T) {
	e := NewUserEntry("What are the symptoms of dengue?")

	if e.ID == "" {
		t.Error("Expected non-empty entry ID")
	}
	if !strings.HasPrefix(e.ID, "ent_") {
		t.Errorf("Expected entry ID with ent_ prefix, got %s", e.ID)
	}
	if e.Author != AuthorUser {
		t.Errorf("Expected author %s, got %s", AuthorUser, e.Author)
	}
	if e.Body != "What are the symptoms of dengue?" {
		t.Errorf("Unexpected body: %s", e.Body)
	}
	if e.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
}

func TestEntryIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		e := NewAssistantEntry("answer")
		if seen[e.ID] {
			t.Fatalf("Duplicate entry ID: %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAuthorDisplayName(t *testing.T) {
	tests := []struct {
		author Author
		want   string
	}{
		{AuthorUser, "You"},
		{AuthorAssistant, "ArogyaAI"},
		{AuthorSystem, "System"},
		{Author("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.author.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%s) = %s, want %s", tt.author, got, tt.want)
		}
	}
}

func TestEntryPreview(t *testing.T) {
	e := NewUserEntry("line one\nline   two\twith spaces")
	got := e.Preview(100)
	if got != "line one line two with spaces" {
		t.Errorf("Unexpected preview: %q", got)
	}

	long := NewUserEntry(strings.Repeat("a", 50))
	if got := long.Preview(10); len([]rune(got)) > 13 {
		t.Errorf("Preview not truncated: %q", got)
	}
}

// =============================================================================
// STATUS STATE MACHINE TESTS
// =============================================================================

func TestStatusBeginSendFromIdle(t *testing.T) {
	s, ok := StatusIdle().BeginSend()
	if !ok {
		t.Fatal("Expected BeginSend to succeed from idle")
	}
	if s.Phase != PhaseSending {
		t.Errorf("Expected sending phase, got %s", s.Phase)
	}
}

func TestStatusBeginSendFromError(t *testing.T) {
	s, ok := StatusError("request timed out").BeginSend()
	if !ok {
		t.Fatal("Expected BeginSend to succeed from error")
	}
	if s.Phase != PhaseSending {
		t.Errorf("Expected sending phase, got %s", s.Phase)
	}
	if s.Detail != "" {
		t.Errorf("Expected detail cleared on new send, got %q", s.Detail)
	}
}

func TestStatusBeginSendRejectedWhileSending(t *testing.T) {
	s, ok := StatusSending().BeginSend()
	if ok {
		t.Fatal("Expected BeginSend to be rejected while a query is in flight")
	}
	if s.Phase != PhaseSending {
		t.Errorf("Expected status unchanged, got %s", s.Phase)
	}
}

func TestStatusFinishOK(t *testing.T) {
	s, ok := StatusSending().FinishOK()
	if !ok {
		t.Fatal("Expected FinishOK to succeed from sending")
	}
	if s.Phase != PhaseIdle {
		t.Errorf("Expected idle phase, got %s", s.Phase)
	}

	if _, ok := StatusIdle().FinishOK(); ok {
		t.Error("Expected FinishOK to be rejected from idle")
	}
}

func TestStatusFail(t *testing.T) {
	s, ok := StatusSending().Fail("server unreachable")
	if !ok {
		t.Fatal("Expected Fail to succeed from sending")
	}
	if s.Phase != PhaseError {
		t.Errorf("Expected error phase, got %s", s.Phase)
	}
	if s.Detail != "server unreachable" {
		t.Errorf("Unexpected detail: %q", s.Detail)
	}

	if _, ok := StatusIdle().Fail("nope"); ok {
		t.Error("Expected Fail to be rejected from idle")
	}
}

func TestStatusDismiss(t *testing.T) {
	s := StatusError("request timed out").Dismiss()
	if s.Phase != PhaseIdle {
		t.Errorf("Expected idle after dismissal, got %s", s.Phase)
	}
	if s.Detail != "" {
		t.Errorf("Expected detail cleared, got %q", s.Detail)
	}

	// Dismiss is a no-op outside the error phase.
	if s := StatusSending().Dismiss(); s.Phase != PhaseSending {
		t.Errorf("Expected dismiss to be a no-op while sending, got %s", s.Phase)
	}
	if s := StatusIdle().Dismiss(); s.Phase != PhaseIdle {
		t.Errorf("Expected dismiss to be a no-op while idle, got %s", s.Phase)
	}
}

func TestStatusCanSubmit(t *testing.T) {
	if !StatusIdle().CanSubmit() {
		t.Error("Expected idle status to accept submissions")
	}
	if !StatusError("boom").CanSubmit() {
		t.Error("Expected error status to accept submissions")
	}
	if StatusSending().CanSubmit() {
		t.Error("Expected sending status to reject submissions")
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	c := NewConversation()

	if c.ID == "" {
		t.Error("Expected non-empty conversation ID")
	}
	if !strings.HasPrefix(c.ID, "web_") {
		t.Errorf("Expected conversation ID with web_ prefix, got %s", c.ID)
	}
	if !c.IsEmpty() {
		t.Error("Expected new conversation to be empty")
	}
	if c.Status.Phase != PhaseIdle {
		t.Errorf("Expected idle status, got %s", c.Status.Phase)
	}
}

func TestConversationAppendOrder(t *testing.T) {
	c := NewConversation()

	// Alternate user and assistant entries, then verify the log preserves
	// insertion order exactly.
	for i := 0; i < 5; i++ {
		c.AddUserEntry("question")
		c.AddAssistantEntry("answer")
	}

	if c.EntryCount() != 10 {
		t.Fatalf("Expected 10 entries, got %d", c.EntryCount())
	}
	for i, e := range c.History() {
		want := AuthorUser
		if i%2 == 1 {
			want = AuthorAssistant
		}
		if e.Author != want {
			t.Errorf("Entry %d: expected author %s, got %s", i, want, e.Author)
		}
	}
}

func TestConversationLastEntries(t *testing.T) {
	c := NewConversation()

	if c.LastEntry() != nil {
		t.Error("Expected nil last entry on empty conversation")
	}
	if c.LastUserEntry() != nil {
		t.Error("Expected nil last user entry on empty conversation")
	}

	c.AddUserEntry("first question")
	c.AddAssistantEntry("first answer")
	c.AddUserEntry("second question")

	if got := c.LastEntry().Body; got != "second question" {
		t.Errorf("Unexpected last entry: %q", got)
	}
	if got := c.LastUserEntry().Body; got != "second question" {
		t.Errorf("Unexpected last user entry: %q", got)
	}
	if got := c.LastAssistantEntry().Body; got != "first answer" {
		t.Errorf("Unexpected last assistant entry: %q", got)
	}
}

func TestRecordDetectedLanguage(t *testing.T) {
	c := NewConversation()

	c.RecordDetectedLanguage("Hindi")
	if c.LastDetectedLanguage != "Hindi" {
		t.Errorf("Expected Hindi, got %q", c.LastDetectedLanguage)
	}

	// An answer without detection metadata must not clear a prior detection.
	c.RecordDetectedLanguage("")
	if c.LastDetectedLanguage != "Hindi" {
		t.Errorf("Expected Hindi preserved, got %q", c.LastDetectedLanguage)
	}

	c.RecordDetectedLanguage("Spanish")
	if c.LastDetectedLanguage != "Spanish" {
		t.Errorf("Expected Spanish, got %q", c.LastDetectedLanguage)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	c := NewConversation()
	c.AddUserEntry("question")
	c.Status = StatusSending()

	snap := c.Snapshot()

	// A later append must not be visible through an earlier snapshot.
	c.AddAssistantEntry("answer")
	c.Status = StatusIdle()

	if len(snap.Entries) != 1 {
		t.Errorf("Expected snapshot with 1 entry, got %d", len(snap.Entries))
	}
	if snap.Status.Phase != PhaseSending {
		t.Errorf("Expected snapshot to keep sending status, got %s", snap.Status.Phase)
	}
	if c.EntryCount() != 2 {
		t.Errorf("Expected conversation with 2 entries, got %d", c.EntryCount())
	}
}

func TestConversationPreview(t *testing.T) {
	c := NewConversation()
	if got := c.Preview(); got != "Empty conversation" {
		t.Errorf("Unexpected empty preview: %q", got)
	}

	c.AddSystemEntry("connected")
	c.AddUserEntry("What is malaria?")
	if got := c.Preview(); got != "What is malaria?" {
		t.Errorf("Unexpected preview: %q", got)
	}
}
