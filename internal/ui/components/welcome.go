// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the ArogyaAI TUI.
package components

import (
	"strings"

	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

const welcomeLogo = `
   _____                                    _____ _____
  /  _  \_______  ____   ____ ___.__._____ /  _  \      \
 /  /_\  \_  __ \/  _ \ / ___<   |  |\__  \    |    |   |
/    |    \  | \(  <_> ) /_/  >___  | / __ \   |    |   |
\____|__  /__|   \____/\___  // ____|(____  /__|____|___|
        \/            /_____/ \/          \/`

// RenderWelcome draws the startup panel shown before the first question.
func RenderWelcome(theme *styles.Theme, version string, width int) string {
	var b strings.Builder

	b.WriteString(theme.WelcomeLogo.Render(strings.TrimLeft(welcomeLogo, "\n")))
	b.WriteString("\n\n")
	b.WriteString(theme.WelcomeInfo.Render("Your multilingual health assistant  ·  v" + version))
	b.WriteString("\n\n")
	b.WriteString(theme.WelcomeInfo.Render("Ask about symptoms, treatment, or prevention of common diseases."))
	b.WriteString("\n")
	b.WriteString(theme.WelcomeInfo.Render("Questions are answered in the language you ask them in."))
	b.WriteString("\n\n")
	b.WriteString(theme.WelcomePressKey.Render("type a question and press enter · tab shows example topics"))

	box := theme.WelcomeBox
	if width > 4 {
		box = box.MaxWidth(width - 2)
	}
	return box.Render(b.String())
}
