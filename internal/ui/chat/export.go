// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arogyaai/arogya-tui/internal/config"
	"github.com/arogyaai/arogya-tui/internal/model"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// exportTranscript writes the current conversation to a Markdown file under
// the config directory and reports the result as a message.
func (m *Model) exportTranscript() tea.Cmd {
	snap := m.snapshot
	return func() tea.Msg {
		path, err := WriteTranscript(snap, "")
		return ExportCompleteMsg{Path: path, Err: err}
	}
}

// WriteTranscript renders a snapshot as Markdown and writes it to dir. An
// empty dir defaults to <config dir>/exports. Returns the path written.
func WriteTranscript(snap model.Snapshot, dir string) (string, error) {
	if len(snap.Entries) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	if dir == "" {
		base, err := config.ConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve export directory: %w", err)
		}
		dir = filepath.Join(base, "exports")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("arogya-chat-%s.md", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(TranscriptMarkdown(snap)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}

// TranscriptMarkdown renders a snapshot as a Markdown document.
func TranscriptMarkdown(snap model.Snapshot) string {
	var b strings.Builder
	b.WriteString("# ArogyaAI Conversation\n\n")
	b.WriteString("Session: " + snap.ID + "\n\n")
	b.WriteString("Exported: " + time.Now().Format(time.RFC3339) + "\n\n")
	b.WriteString("---\n\n")

	for _, entry := range snap.Entries {
		fmt.Fprintf(&b, "## %s (%s)\n\n", entry.Author.DisplayName(), entry.CreatedAt.Format("2006-01-02 15:04:05"))
		b.WriteString(entry.Body)
		b.WriteString("\n\n")
	}
	return b.String()
}
