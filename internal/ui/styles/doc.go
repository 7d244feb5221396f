// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ArogyaAI TUI.
//
// The palette lives in colors.go as adaptive light/dark pairs; Theme bundles
// the concrete lipgloss styles the chat view and components render with.
package styles
