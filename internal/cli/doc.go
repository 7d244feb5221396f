// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the arogya command line: argument parsing and the
// non-TUI commands (ask, chat, status, diseases, languages, history, config).
//
// The default command, with no arguments, launches the full-screen TUI; that
// path is wired in main so this package stays free of Bubble Tea.
package cli
