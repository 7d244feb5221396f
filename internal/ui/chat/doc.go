// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat screen of the ArogyaAI TUI: the
// transcript viewport, the input line, backend health polling, the disease
// example picker, and transcript export.
package chat
