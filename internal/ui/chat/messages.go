// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - Bubble Tea message types for the chat interface:
// conversation snapshots from the controller, backend health and catalog
// results, and transcript export completion.
package chat

import (
	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/model"
)

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// SnapshotMsg delivers a fresh conversation snapshot from the controller.
type SnapshotMsg struct {
	Snapshot model.Snapshot
}

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// HealthTickMsg schedules the next health probe.
type HealthTickMsg struct{}

// HealthResultMsg reports the outcome of a health probe.
type HealthResultMsg struct {
	Health *gateway.HealthResponse
	Err    error
}

// CatalogResultMsg reports the disease catalog fetch.
type CatalogResultMsg struct {
	Diseases []string
	Err      error
}

// =============================================================================
// EXPORT MESSAGES
// =============================================================================

// ExportCompleteMsg reports a finished transcript export.
type ExportCompleteMsg struct {
	Path string
	Err  error
}
