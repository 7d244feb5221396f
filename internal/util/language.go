// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers.
package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var languageTitleCaser = cases.Title(language.English)

// CanonicalLanguageName normalizes a language name for display, so backend
// values like "spanish" or "HINDI" render consistently.
func CanonicalLanguageName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return languageTitleCaser.String(strings.ToLower(name))
}
