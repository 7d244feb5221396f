// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and entries.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/arogyaai/arogya-tui/internal/util"
)

// =============================================================================
// AUTHOR TYPE
// =============================================================================

// Author represents the sender of a conversation entry.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
	AuthorSystem    Author = "system"
)

// String returns the string representation of the author.
func (a Author) String() string {
	return string(a)
}

// DisplayName returns a human-readable name for the author.
func (a Author) DisplayName() string {
	switch a {
	case AuthorUser:
		return "You"
	case AuthorAssistant:
		return "ArogyaAI"
	case AuthorSystem:
		return "System"
	default:
		return string(a)
	}
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is a single item in the conversation log. Entries are immutable once
// appended: the log is the user-visible record of the session and is never
// edited or re-sorted after the fact.
type Entry struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry creates a new entry with a generated ID.
func NewEntry(author Author, body string) *Entry {
	return &Entry{
		ID:        generateEntryID(),
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// NewUserEntry creates a new user entry.
func NewUserEntry(body string) *Entry {
	return NewEntry(AuthorUser, body)
}

// NewAssistantEntry creates a new assistant entry.
func NewAssistantEntry(body string) *Entry {
	return NewEntry(AuthorAssistant, body)
}

// NewSystemEntry creates a new system entry.
func NewSystemEntry(body string) *Entry {
	return NewEntry(AuthorSystem, body)
}

// Preview returns a single-line, truncated preview of the entry body.
func (e *Entry) Preview(maxRunes int) string {
	return util.TruncateRunes(util.CollapseWhitespace(e.Body), maxRunes)
}

// IsEmpty returns true if the entry has no body.
func (e *Entry) IsEmpty() bool {
	return len(e.Body) == 0
}

// generateEntryID creates a unique entry ID.
func generateEntryID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "ent_" + hex.EncodeToString(bytes)
}
