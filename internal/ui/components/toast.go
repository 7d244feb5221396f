// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the ArogyaAI TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// =============================================================================
// ERROR TOAST
// =============================================================================

// ToastKind categorizes toast severity.
type ToastKind int

const (
	ToastError ToastKind = iota
	ToastWarning
	ToastInfo
)

// Toast is a non-blocking banner shown above the input area. It stays
// visible until dismissed; the conversation keeps accepting input below it.
type Toast struct {
	Kind       ToastKind
	Title      string
	Message    string
	Suggestion string
}

// NewFailureToast builds a toast for a classified query failure. Transient
// failures carry remediation guidance; definitive backend errors show the
// backend's message on its own.
func NewFailureToast(kind gateway.FailureKind, message string) Toast {
	switch kind {
	case gateway.FailureTimeout:
		return Toast{
			Kind:       ToastError,
			Title:      "Request timed out",
			Message:    message,
			Suggestion: "Press Enter to retry your question, or check that the backend is running.",
		}
	case gateway.FailureNetworkUnreachable:
		return Toast{
			Kind:       ToastError,
			Title:      "Backend unreachable",
			Message:    message,
			Suggestion: "Start the ArogyaAI backend, then try again or restart the client.",
		}
	case gateway.FailureServerError:
		return Toast{
			Kind:    ToastError,
			Title:   "Backend error",
			Message: message,
		}
	default:
		return Toast{
			Kind:       ToastError,
			Title:      "Something went wrong",
			Message:    message,
			Suggestion: "Please try again.",
		}
	}
}

// NewWarningToast builds a warning toast.
func NewWarningToast(title, message string) Toast {
	return Toast{Kind: ToastWarning, Title: title, Message: message}
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the currently displayed toast, if any.
type ToastManager struct {
	current *Toast
}

// NewToastManager creates an empty toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{}
}

// Show replaces the displayed toast.
func (m *ToastManager) Show(t Toast) {
	m.current = &t
}

// Dismiss hides the displayed toast.
func (m *ToastManager) Dismiss() {
	m.current = nil
}

// Visible reports whether a toast is displayed.
func (m *ToastManager) Visible() bool {
	return m.current != nil
}

// Current returns the displayed toast, or nil.
func (m *ToastManager) Current() *Toast {
	return m.current
}

// =============================================================================
// RENDERING
// =============================================================================

// Render draws the toast at the given width. Returns "" when nothing is
// displayed.
func (m *ToastManager) Render(theme *styles.Theme, width int) string {
	if m.current == nil {
		return ""
	}
	t := m.current

	icon := styles.StatusIndicators.Error
	titleStyle := theme.ErrorTitle
	if t.Kind == ToastWarning {
		icon = styles.StatusIndicators.Warning
	}
	if t.Kind == ToastInfo {
		icon = styles.StatusIndicators.Info
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(icon + " " + t.Title))
	if t.Message != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorMessage.Render(wrapText(t.Message, width-6)))
	}
	if t.Suggestion != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorSuggestion.Render(wrapText(t.Suggestion, width-6)))
	}
	b.WriteString("\n")
	b.WriteString(theme.ErrorSuggestion.Render("press esc to dismiss"))

	box := theme.ErrorBox
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(b.String())
}

// wrapText wraps text at word boundaries to fit maxWidth.
func wrapText(text string, maxWidth int) string {
	if maxWidth < 10 {
		return text
	}
	words := strings.Fields(text)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if lipgloss.Width(line)+1+lipgloss.Width(w) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
