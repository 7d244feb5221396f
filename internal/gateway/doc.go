// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for communicating with the
// ArogyaAI backend API.
//
// The central entry point is Client.Submit, which posts a free-text health
// query to /api/query and returns an Outcome rather than an error: the
// submission path absorbs every failure mode (timeouts, unreachable backend,
// definitive server errors) into a classified Failure so callers have exactly
// one way to react.
//
// Submit retries at most once. Only failures where the backend never gave a
// definitive response are retried; the retry waits a fixed delay and runs
// under a longer deadline. The HTTP exchange itself goes through an injected
// Transport, which keeps the retry policy testable without a network.
//
// The package also exposes the backend's boundary endpoints: Health,
// ListDiseases, and SupportedLanguages. These follow the conventional
// (value, error) shape with a ClientError taxonomy.
package gateway
