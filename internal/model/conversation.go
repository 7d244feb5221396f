// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and entries.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered conversation log plus the UI-facing status.
// The log is append-only: entries are never mutated, removed, or re-sorted
// after they are added, and insertion order is the canonical display order.
//
// Conversation is not safe for concurrent use; the session controller owns it
// and serializes all mutation.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Log
	Entries []*Entry `json:"entries"`

	// UI state
	Status Status `json:"-"`

	// LastDetectedLanguage is the most recent language the backend detected
	// on a successful answer. It only moves forward: a later answer without
	// detection metadata never clears it.
	LastDetectedLanguage string `json:"last_detected_language,omitempty"`
}

// NewConversation creates an empty conversation with a generated session ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        "web_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Entries:   make([]*Entry, 0),
		Status:    StatusIdle(),
	}
}

// =============================================================================
// ENTRY MANAGEMENT
// =============================================================================

// AddEntry appends an entry to the log.
func (c *Conversation) AddEntry(e *Entry) {
	c.Entries = append(c.Entries, e)
	c.UpdatedAt = time.Now()
}

// AddUserEntry creates and appends a user entry.
func (c *Conversation) AddUserEntry(body string) *Entry {
	e := NewUserEntry(body)
	c.AddEntry(e)
	return e
}

// AddAssistantEntry creates and appends an assistant entry.
func (c *Conversation) AddAssistantEntry(body string) *Entry {
	e := NewAssistantEntry(body)
	c.AddEntry(e)
	return e
}

// AddSystemEntry creates and appends a system entry.
func (c *Conversation) AddSystemEntry(body string) *Entry {
	e := NewSystemEntry(body)
	c.AddEntry(e)
	return e
}

// LastEntry returns the most recent entry, or nil if the log is empty.
func (c *Conversation) LastEntry() *Entry {
	if len(c.Entries) == 0 {
		return nil
	}
	return c.Entries[len(c.Entries)-1]
}

// LastUserEntry returns the most recent user entry, or nil.
func (c *Conversation) LastUserEntry() *Entry {
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].Author == AuthorUser {
			return c.Entries[i]
		}
	}
	return nil
}

// LastAssistantEntry returns the most recent assistant entry, or nil.
func (c *Conversation) LastAssistantEntry() *Entry {
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].Author == AuthorAssistant {
			return c.Entries[i]
		}
	}
	return nil
}

// EntryCount returns the number of entries in the log.
func (c *Conversation) EntryCount() int {
	return len(c.Entries)
}

// IsEmpty returns true if the log has no entries.
func (c *Conversation) IsEmpty() bool {
	return len(c.Entries) == 0
}

// History returns the entry log for display.
func (c *Conversation) History() []*Entry {
	return c.Entries
}

// =============================================================================
// LANGUAGE TRACKING
// =============================================================================

// RecordDetectedLanguage updates LastDetectedLanguage. Empty detections are
// ignored so a later answer without metadata never clears a prior detection.
func (c *Conversation) RecordDetectedLanguage(lang string) {
	if lang != "" {
		c.LastDetectedLanguage = lang
	}
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an immutable copy of the conversation state handed to the view
// layer. The entry slice is copied so a later append cannot be observed
// mid-render; the entries themselves are immutable by contract.
type Snapshot struct {
	ID                   string
	Entries              []*Entry
	Status               Status
	LastDetectedLanguage string
}

// Snapshot returns a point-in-time copy of the conversation state.
func (c *Conversation) Snapshot() Snapshot {
	entries := make([]*Entry, len(c.Entries))
	copy(entries, c.Entries)
	return Snapshot{
		ID:                   c.ID,
		Entries:              entries,
		Status:               c.Status,
		LastDetectedLanguage: c.LastDetectedLanguage,
	}
}

// Preview returns a short one-line preview of the conversation.
func (c *Conversation) Preview() string {
	if len(c.Entries) == 0 {
		return "Empty conversation"
	}
	first := c.LastUserEntry()
	if first == nil {
		first = c.Entries[0]
	}
	return first.Preview(100)
}
