// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides persistent input history for past queries.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
-- Queries table: one row per submitted query string
CREATE TABLE IF NOT EXISTS queries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    submitted_at INTEGER NOT NULL -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_queries_submitted_at ON queries(submitted_at);
`

// =============================================================================
// STORE
// =============================================================================

// ErrClosed is returned after the store has been closed.
var ErrClosed = errors.New("history store is closed")

// Store persists the bare text of submitted queries so input history
// survives restarts. Only the query strings are stored; conversation
// entries and answers never touch disk.
type Store struct {
	mu         sync.Mutex
	db         *sql.DB
	maxEntries int
	closed     bool
}

// Open opens (or creates) the history database at path. maxEntries caps the
// number of retained queries; older rows are dropped as new ones arrive.
func Open(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = 500
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Record stores a submitted query. Blank queries and immediate duplicates of
// the most recent entry are skipped, matching usual shell-history behavior.
func (s *Store) Record(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	var last string
	err := s.db.QueryRow("SELECT text FROM queries ORDER BY id DESC LIMIT 1").Scan(&last)
	if err == nil && last == text {
		return nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read last query: %w", err)
	}

	if _, err := s.db.Exec(
		"INSERT INTO queries (text, submitted_at) VALUES (?, ?)",
		text, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}

	// Trim overflow beyond the retention cap.
	_, err = s.db.Exec(`
		DELETE FROM queries WHERE id NOT IN (
			SELECT id FROM queries ORDER BY id DESC LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

// Recent returns up to limit queries, newest first.
func (s *Store) Recent(limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = s.maxEntries
	}

	rows, err := s.db.Query("SELECT text FROM queries ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// Search returns up to limit queries containing the given substring,
// newest first. An empty pattern behaves like Recent.
func (s *Store) Search(pattern string, limit int) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return s.Recent(limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = s.maxEntries
	}

	rows, err := s.db.Query(
		`SELECT text FROM queries WHERE text LIKE ? ESCAPE '\' ORDER BY id DESC LIMIT ?`,
		"%"+escapeLike(pattern)+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// escapeLike escapes LIKE metacharacters so a pattern like "50%" matches the
// literal text instead of everything.
func escapeLike(pattern string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(pattern)
}

// Count returns the number of stored queries.
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM queries").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear removes all stored queries.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err := s.db.Exec("DELETE FROM queries")
	return err
}
