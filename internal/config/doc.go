// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// ArogyaAI terminal client.
//
// Configuration lives in ~/.arogya/config.toml and covers the backend
// connection and retry policy, UI options, and the persistent query-history
// store. Loading layers built-in defaults, the TOML file, and environment
// variable overrides, then validates the result.
//
// A process-wide instance is available through Global; Watcher reloads it
// when the file changes on disk.
package config
