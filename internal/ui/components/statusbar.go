// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the ArogyaAI TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// =============================================================================
// BACKEND STATUS
// =============================================================================

// BackendStatus summarizes the last health probe.
type BackendStatus int

const (
	// BackendUnknown means no probe has completed yet.
	BackendUnknown BackendStatus = iota
	// BackendHealthy means the API and its dialogue engine are both up.
	BackendHealthy
	// BackendDegraded means the API is up but running on its fallback path.
	BackendDegraded
	// BackendDown means the API is unreachable.
	BackendDown
)

// String returns the display label for the status.
func (s BackendStatus) String() string {
	switch s {
	case BackendHealthy:
		return "online"
	case BackendDegraded:
		return "degraded"
	case BackendDown:
		return "offline"
	default:
		return "checking"
	}
}

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the bottom bar: backend health, disease catalog size,
// the last detected language, and key hints.
type StatusBar struct {
	Backend      BackendStatus
	CatalogCount int
	Language     string
	Sending      bool
}

// NewStatusBar creates a status bar in the unknown state.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetHealth records the result of a health probe.
func (s *StatusBar) SetHealth(apiUp, engineUp bool, catalogCount int) {
	switch {
	case !apiUp:
		s.Backend = BackendDown
	case !engineUp:
		s.Backend = BackendDegraded
	default:
		s.Backend = BackendHealthy
	}
	if catalogCount > 0 {
		s.CatalogCount = catalogCount
	}
}

// SetLanguage records the most recently detected language.
func (s *StatusBar) SetLanguage(lang string) {
	if lang != "" {
		s.Language = lang
	}
}

// Render draws the status bar at the given width.
func (s *StatusBar) Render(theme *styles.Theme, width int) string {
	var healthStyle lipgloss.Style
	switch s.Backend {
	case BackendHealthy:
		healthStyle = theme.StatusHealthy
	case BackendDegraded:
		healthStyle = theme.StatusDegraded
	case BackendDown:
		healthStyle = theme.StatusDown
	default:
		healthStyle = theme.ShortcutDesc
	}

	segments := []string{
		healthStyle.Render("● " + s.Backend.String()),
	}
	if s.CatalogCount > 0 {
		segments = append(segments, fmt.Sprintf("%d diseases", s.CatalogCount))
	}
	if s.Language != "" {
		segments = append(segments, "lang: "+s.Language)
	}
	if s.Sending {
		segments = append(segments, "asking…")
	}

	left := strings.Join(segments, "  │  ")
	right := theme.ShortcutKey.Render("enter") + theme.ShortcutDesc.Render(" send  ") +
		theme.ShortcutKey.Render("ctrl+e") + theme.ShortcutDesc.Render(" export  ") +
		theme.ShortcutKey.Render("ctrl+c") + theme.ShortcutDesc.Render(" quit")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
