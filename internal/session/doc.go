// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the live conversation and drives query submission.
//
// The Controller is the single writer for the conversation: the UI reads
// state through snapshots and feeds input through SubmitUserMessage, which
// echoes the user's entry immediately, runs the gateway call on its own
// goroutine, and applies the outcome as one assistant entry plus a status
// transition. Errors stay visible until DismissError.
package session
