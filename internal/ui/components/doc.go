// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the ArogyaAI TUI:
// the error toast, the backend status bar, the welcome panel, and the
// example-query picker fed by the disease catalog.
package components
