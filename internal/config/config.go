// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// ArogyaAI terminal client.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.arogya/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend connection and retry policy
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// History configuration
	History HistoryConfig `toml:"history"`
}

// BackendConfig contains the ArogyaAI backend connection settings.
type BackendConfig struct {
	// BaseURL is the backend API base URL
	BaseURL string `toml:"base_url"`
	// FirstAttemptTimeoutSecs is the deadline for the first query attempt
	FirstAttemptTimeoutSecs int `toml:"first_attempt_timeout_secs"`
	// RetryAttemptTimeoutSecs is the extended deadline for the retry attempt
	RetryAttemptTimeoutSecs int `toml:"retry_attempt_timeout_secs"`
	// RetryDelayMillis is the pause between the first attempt and the retry
	RetryDelayMillis int `toml:"retry_delay_millis"`
	// MaxAttempts per query, including the first
	MaxAttempts int `toml:"max_attempts"`
	// ProbeTimeoutSecs is the deadline for health and catalog requests
	ProbeTimeoutSecs int `toml:"probe_timeout_secs"`
	// UserID sent with queries when no session is active
	UserID string `toml:"user_id"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the color theme: "dark", "light", or "auto"
	Theme string `toml:"theme"`
	// Markdown enables glamour rendering of answers
	Markdown bool `toml:"markdown"`
	// ShowWelcome shows the welcome panel on startup
	ShowWelcome bool `toml:"show_welcome"`
	// ShowExamples shows the example-query picker on an empty conversation
	ShowExamples bool `toml:"show_examples"`
	// HealthPollSecs is the minimum interval between health probes
	HealthPollSecs int `toml:"health_poll_secs"`
}

// HistoryConfig contains the query-history store settings.
type HistoryConfig struct {
	// Enabled turns persistent query history on or off
	Enabled bool `toml:"enabled"`
	// Path to the history database (empty = ~/.arogya/history.db)
	Path string `toml:"path"`
	// MaxEntries caps the number of stored queries
	MaxEntries int `toml:"max_entries"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Backend: BackendConfig{
			BaseURL:                 "http://127.0.0.1:8000",
			FirstAttemptTimeoutSecs: 30,
			RetryAttemptTimeoutSecs: 60,
			RetryDelayMillis:        2000,
			MaxAttempts:             2,
			ProbeTimeoutSecs:        5,
			UserID:                  "web_user",
		},
		UI: UIConfig{
			Theme:          "auto",
			Markdown:       true,
			ShowWelcome:    true,
			ShowExamples:   true,
			HealthPollSecs: 30,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 500,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory path (~/.arogya).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".arogya"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the path to the query-history database, honoring an
// explicit path from the config.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default config file path.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateErrors aggregates all validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		errs = append(errs, ValidationError{"backend.base_url", "must be a valid URL"})
	}
	if c.Backend.FirstAttemptTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{"backend.first_attempt_timeout_secs", "must be positive"})
	}
	if c.Backend.RetryAttemptTimeoutSecs < c.Backend.FirstAttemptTimeoutSecs {
		errs = append(errs, ValidationError{"backend.retry_attempt_timeout_secs", "must not be shorter than the first attempt timeout"})
	}
	if c.Backend.RetryDelayMillis < 0 {
		errs = append(errs, ValidationError{"backend.retry_delay_millis", "must not be negative"})
	}
	if c.Backend.MaxAttempts < 1 || c.Backend.MaxAttempts > 5 {
		errs = append(errs, ValidationError{"backend.max_attempts", "must be between 1 and 5"})
	}
	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{"ui.theme", "must be dark, light, or auto"})
	}
	if c.History.MaxEntries < 0 {
		errs = append(errs, ValidationError{"history.max_entries", "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills any zero values with defaults. Called after load so a
// sparse config file still yields a complete configuration.
func (c *Config) SetDefaults() {
	def := Default()

	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = def.Backend.BaseURL
	}
	if c.Backend.FirstAttemptTimeoutSecs == 0 {
		c.Backend.FirstAttemptTimeoutSecs = def.Backend.FirstAttemptTimeoutSecs
	}
	if c.Backend.RetryAttemptTimeoutSecs == 0 {
		c.Backend.RetryAttemptTimeoutSecs = def.Backend.RetryAttemptTimeoutSecs
	}
	if c.Backend.RetryDelayMillis == 0 {
		c.Backend.RetryDelayMillis = def.Backend.RetryDelayMillis
	}
	if c.Backend.MaxAttempts == 0 {
		c.Backend.MaxAttempts = def.Backend.MaxAttempts
	}
	if c.Backend.ProbeTimeoutSecs == 0 {
		c.Backend.ProbeTimeoutSecs = def.Backend.ProbeTimeoutSecs
	}
	if c.Backend.UserID == "" {
		c.Backend.UserID = def.Backend.UserID
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.HealthPollSecs == 0 {
		c.UI.HealthPollSecs = def.UI.HealthPollSecs
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = def.History.MaxEntries
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - AROGYA_BACKEND_URL: overrides backend.base_url
//   - AROGYA_USER_ID: overrides backend.user_id
//   - AROGYA_THEME: overrides ui.theme
//   - AROGYA_NO_MARKDOWN: set to "1" or "true" to disable markdown rendering
//   - AROGYA_NO_HISTORY: set to "1" or "true" to disable persistent history
//   - AROGYA_HISTORY_PATH: overrides history.path
//   - AROGYA_MAX_ATTEMPTS: overrides backend.max_attempts
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("AROGYA_BACKEND_URL"); u != "" {
		c.Backend.BaseURL = u
	}
	if id := os.Getenv("AROGYA_USER_ID"); id != "" {
		c.Backend.UserID = id
	}
	if theme := os.Getenv("AROGYA_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if v := os.Getenv("AROGYA_NO_MARKDOWN"); v != "" {
		c.UI.Markdown = !(v == "1" || strings.ToLower(v) == "true")
	}
	if v := os.Getenv("AROGYA_NO_HISTORY"); v != "" {
		c.History.Enabled = !(v == "1" || strings.ToLower(v) == "true")
	}
	if p := os.Getenv("AROGYA_HISTORY_PATH"); p != "" {
		c.History.Path = p
	}
	if v := os.Getenv("AROGYA_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Backend.MaxAttempts = n
		}
	}
}

// =============================================================================
// DURATION ACCESSORS
// =============================================================================

// FirstAttemptTimeout returns the first attempt deadline as a duration.
func (b BackendConfig) FirstAttemptTimeout() time.Duration {
	return time.Duration(b.FirstAttemptTimeoutSecs) * time.Second
}

// RetryAttemptTimeout returns the retry deadline as a duration.
func (b BackendConfig) RetryAttemptTimeout() time.Duration {
	return time.Duration(b.RetryAttemptTimeoutSecs) * time.Second
}

// RetryDelay returns the inter-attempt delay as a duration.
func (b BackendConfig) RetryDelay() time.Duration {
	return time.Duration(b.RetryDelayMillis) * time.Millisecond
}

// ProbeTimeout returns the health probe deadline as a duration.
func (b BackendConfig) ProbeTimeout() time.Duration {
	return time.Duration(b.ProbeTimeoutSecs) * time.Second
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		globalConfigMu.Lock()
		defer globalConfigMu.Unlock()
		if globalConfig != nil {
			// Already injected via SetGlobal.
			return
		}
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
