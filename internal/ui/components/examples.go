// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the ArogyaAI TUI.
package components

import (
	"strings"

	"github.com/arogyaai/arogya-tui/internal/ui/styles"
	"github.com/arogyaai/arogya-tui/internal/util"
)

// maxVisibleExamples bounds the picker height.
const maxVisibleExamples = 8

// =============================================================================
// EXAMPLE PICKER
// =============================================================================

// ExamplePicker offers disease names from the backend catalog as ready-made
// questions. Catalog order is preserved.
type ExamplePicker struct {
	diseases []string
	selected int
	visible  bool
}

// NewExamplePicker creates an empty, hidden picker.
func NewExamplePicker() *ExamplePicker {
	return &ExamplePicker{}
}

// SetCatalog replaces the disease list. Selection resets to the top.
func (p *ExamplePicker) SetCatalog(diseases []string) {
	p.diseases = diseases
	p.selected = 0
}

// HasCatalog reports whether any diseases are loaded.
func (p *ExamplePicker) HasCatalog() bool {
	return len(p.diseases) > 0
}

// Toggle flips visibility. A picker without a catalog stays hidden.
func (p *ExamplePicker) Toggle() {
	if !p.HasCatalog() {
		return
	}
	p.visible = !p.visible
}

// Hide hides the picker.
func (p *ExamplePicker) Hide() {
	p.visible = false
}

// Visible reports whether the picker is shown.
func (p *ExamplePicker) Visible() bool {
	return p.visible
}

// MoveUp moves the selection up, wrapping at the top.
func (p *ExamplePicker) MoveUp() {
	if len(p.diseases) == 0 {
		return
	}
	p.selected = (p.selected - 1 + len(p.diseases)) % len(p.diseases)
}

// MoveDown moves the selection down, wrapping at the bottom.
func (p *ExamplePicker) MoveDown() {
	if len(p.diseases) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.diseases)
}

// Selected returns a ready-made question for the selected disease, or ""
// when no catalog is loaded.
func (p *ExamplePicker) Selected() string {
	if len(p.diseases) == 0 {
		return ""
	}
	return "What are the symptoms of " + p.diseases[p.selected] + "?"
}

// Render draws the picker at the given width. Returns "" when hidden.
func (p *ExamplePicker) Render(theme *styles.Theme, width int) string {
	if !p.visible || len(p.diseases) == 0 {
		return ""
	}

	// Keep the selection inside the visible window.
	start := 0
	if p.selected >= maxVisibleExamples {
		start = p.selected - maxVisibleExamples + 1
	}
	end := start + maxVisibleExamples
	if end > len(p.diseases) {
		end = len(p.diseases)
	}

	var b strings.Builder
	b.WriteString(theme.PickerTitle.Render("Example topics"))
	b.WriteString("\n")
	for i := start; i < end; i++ {
		name := util.TruncateWidth(p.diseases[i], width-8)
		if i == p.selected {
			b.WriteString(theme.PickerItemSelected.Render("▸ " + name))
		} else {
			b.WriteString(theme.PickerItem.Render("  " + name))
		}
		b.WriteString("\n")
	}
	b.WriteString(theme.ShortcutDesc.Render("↑/↓ choose · enter ask · tab close"))

	box := theme.PickerBox
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(b.String())
}
