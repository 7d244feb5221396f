// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemeWithMode(t *testing.T) {
	dark := NewThemeWithMode("dark")
	if !dark.IsDark {
		t.Error("Expected dark theme")
	}

	light := NewThemeWithMode("light")
	if light.IsDark {
		t.Error("Expected light theme")
	}
}

func TestRenderStatusIndicators(t *testing.T) {
	if !strings.Contains(RenderSuccess("backend up"), "[OK]") {
		t.Error("Success render missing indicator")
	}
	if !strings.Contains(RenderError("backend down"), "[X]") {
		t.Error("Error render missing indicator")
	}
	if !strings.Contains(RenderWarning("degraded"), "[!]") {
		t.Error("Warning render missing indicator")
	}
	if !strings.Contains(RenderStatus(false, "down"), "[X]") {
		t.Error("RenderStatus should pick the error indicator")
	}
}
