// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/model"
	"github.com/arogyaai/arogya-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m *Model) View() string {
	if !m.ready {
		return "Starting ArogyaAI…"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.picker.Visible() {
		b.WriteString(m.picker.Render(m.theme, m.width))
	} else if m.showWelcome && len(m.snapshot.Entries) == 0 {
		b.WriteString(m.renderWelcomePane())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	if toast := m.toasts.Render(m.theme, m.width); toast != "" {
		b.WriteString(toast)
		b.WriteString("\n")
	}

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.statusBar.Render(m.theme, m.width))
	return b.String()
}

// renderHeader draws the title bar.
func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("ArogyaAI")
	subtitle := m.theme.HeaderSubtitle.Render("health assistant · " + m.version)
	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", subtitle)
	return m.theme.Header.Width(m.width).Render(line)
}

// renderWelcomePane shows the welcome screen inside the viewport area.
func (m *Model) renderWelcomePane() string {
	welcome := components.RenderWelcome(m.theme, m.version, m.width)
	return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, welcome)
}

// renderInput draws the input box with a character counter.
func (m *Model) renderInput() string {
	count := utf8.RuneCountInString(m.input.Value())
	counter := fmt.Sprintf("%d/%d", count, gateway.MaxQueryLength)
	counterStyle := m.theme.CharCount
	if count >= gateway.MaxQueryLength {
		counterStyle = m.theme.CharCountDanger
	}

	field := m.theme.InputContainer.Width(m.width - 10).Render(m.input.View())
	return lipgloss.JoinHorizontal(lipgloss.Bottom, field, " ", counterStyle.Render(counter))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport re-renders the transcript and keeps the view pinned to the
// newest entry.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript lays out all entries as chat bubbles.
func (m *Model) renderTranscript() string {
	if len(m.snapshot.Entries) == 0 {
		return ""
	}

	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var parts []string
	for _, entry := range m.snapshot.Entries {
		parts = append(parts, m.renderEntry(entry, bubbleWidth))
	}
	if m.state == StateSending {
		parts = append(parts, m.renderThinking())
	}
	return strings.Join(parts, "\n\n")
}

// renderEntry draws a single entry as a labeled bubble.
func (m *Model) renderEntry(entry *model.Entry, bubbleWidth int) string {
	label := m.theme.BubbleLabel.Render(entry.Author.DisplayName() + " · " + entry.CreatedAt.Format("15:04"))
	body := entry.Body

	var bubble string
	switch entry.Author {
	case model.AuthorUser:
		bubble = m.theme.UserBubble.MaxWidth(bubbleWidth).Render(body)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
	case model.AuthorAssistant:
		bubble = m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(m.renderBody(body, bubbleWidth))
		return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
	default:
		bubble = m.theme.SystemBubble.MaxWidth(bubbleWidth).Render(body)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, bubble)
	}
}

// renderBody renders assistant text, through glamour when markdown is on.
func (m *Model) renderBody(body string, width int) string {
	if !m.markdown {
		return body
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return body
	}
	out, err := renderer.Render(body)
	if err != nil {
		return body
	}
	return strings.TrimRight(out, "\n")
}

// renderThinking shows the in-flight indicator.
func (m *Model) renderThinking() string {
	return m.spinner.View() + m.theme.ThinkingText.Render(" ArogyaAI is thinking…")
}
