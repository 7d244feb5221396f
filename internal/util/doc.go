// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the arogya terminal client.
//
// The helpers here are deliberately dependency-light: rune- and width-aware
// string truncation for UI previews, and whitespace normalization. Anything
// with domain meaning lives in its own package.
package util
