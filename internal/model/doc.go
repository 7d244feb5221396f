// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core conversation data structures: entries,
// the submission status machine, and the append-only conversation log.
//
// Entries are immutable once created. A Conversation owns an ordered log
// of entries plus a Status value that gates submission. The package does
// no locking of its own; callers that share a Conversation across
// goroutines must serialize access (see internal/session).
package model
