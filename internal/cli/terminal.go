// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the arogya CLI.
package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// isTTY returns true if stdin is a terminal.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// isStdoutTTY returns true if stdout is a terminal. Piped output gets plain
// text without colors or markdown styling.
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	defaultWidth = 80
	maxWidth     = 120
)

var (
	widthOnce   sync.Once
	cachedWidth int
)

// terminalWidth returns the stdout width, clamped to a readable range.
func terminalWidth() int {
	widthOnce.Do(func() {
		cachedWidth = defaultWidth
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			cachedWidth = w
		}
		if cachedWidth > maxWidth {
			cachedWidth = maxWidth
		}
	})
	return cachedWidth
}

// =============================================================================
// COLOR CONTROL
// =============================================================================

// colorEnabled reports whether colored output should be used, honoring
// NO_COLOR and non-TTY stdout.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isStdoutTTY() {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
