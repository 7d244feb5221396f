// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("Unexpected default base URL: %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.FirstAttemptTimeoutSecs != 30 {
		t.Errorf("Expected 30s first attempt timeout, got %d", cfg.Backend.FirstAttemptTimeoutSecs)
	}
	if cfg.Backend.RetryAttemptTimeoutSecs != 60 {
		t.Errorf("Expected 60s retry timeout, got %d", cfg.Backend.RetryAttemptTimeoutSecs)
	}
	if cfg.Backend.RetryDelayMillis != 2000 {
		t.Errorf("Expected 2000ms retry delay, got %d", cfg.Backend.RetryDelayMillis)
	}
	if cfg.Backend.MaxAttempts != 2 {
		t.Errorf("Expected 2 max attempts, got %d", cfg.Backend.MaxAttempts)
	}
	if cfg.Backend.UserID != "web_user" {
		t.Errorf("Unexpected default user ID: %s", cfg.Backend.UserID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "1.0.0"

[backend]
base_url = "http://10.0.0.5:8000"
user_id = "clinic_kiosk"

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Backend.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("Unexpected base URL: %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.UserID != "clinic_kiosk" {
		t.Errorf("Unexpected user ID: %s", cfg.Backend.UserID)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Unexpected theme: %s", cfg.UI.Theme)
	}
	// Unset fields come from defaults.
	if cfg.Backend.MaxAttempts != 2 {
		t.Errorf("Expected default max attempts, got %d", cfg.Backend.MaxAttempts)
	}
}

func TestLoadFromPathInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
max_attempts = 99
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("Expected validation error for max_attempts = 99")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "http://192.168.1.10:8000"
	cfg.UI.Theme = "light"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Backend.BaseURL != "http://192.168.1.10:8000" {
		t.Errorf("Round trip lost base URL: %s", loaded.Backend.BaseURL)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Round trip lost theme: %s", loaded.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad url", func(c *Config) { c.Backend.BaseURL = "not a url" }, "backend.base_url"},
		{"zero timeout", func(c *Config) { c.Backend.FirstAttemptTimeoutSecs = -1 }, "backend.first_attempt_timeout_secs"},
		{"retry shorter than first", func(c *Config) { c.Backend.RetryAttemptTimeoutSecs = 10 }, "backend.retry_attempt_timeout_secs"},
		{"negative delay", func(c *Config) { c.Backend.RetryDelayMillis = -5 }, "backend.retry_delay_millis"},
		{"attempts too high", func(c *Config) { c.Backend.MaxAttempts = 6 }, "backend.max_attempts"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error naming %s, got: %v", tt.field, err)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("AROGYA_BACKEND_URL", "http://env-host:8000")
	t.Setenv("AROGYA_USER_ID", "env_user")
	t.Setenv("AROGYA_THEME", "light")
	t.Setenv("AROGYA_NO_HISTORY", "true")
	t.Setenv("AROGYA_MAX_ATTEMPTS", "3")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.BaseURL != "http://env-host:8000" {
		t.Errorf("Env override lost: %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.UserID != "env_user" {
		t.Errorf("Env override lost: %s", cfg.Backend.UserID)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Env override lost: %s", cfg.UI.Theme)
	}
	if cfg.History.Enabled {
		t.Error("Expected history disabled via env")
	}
	if cfg.Backend.MaxAttempts != 3 {
		t.Errorf("Env override lost: %d", cfg.Backend.MaxAttempts)
	}
}

func TestSetDefaultsFillsSparse(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Backend.BaseURL == "" {
		t.Error("Expected base URL filled in")
	}
	if cfg.Backend.RetryDelayMillis != 2000 {
		t.Errorf("Expected retry delay filled in, got %d", cfg.Backend.RetryDelayMillis)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Expected theme filled in, got %s", cfg.UI.Theme)
	}
}

func TestDurationAccessors(t *testing.T) {
	b := Default().Backend

	if b.FirstAttemptTimeout() != 30*time.Second {
		t.Errorf("Unexpected first attempt timeout: %v", b.FirstAttemptTimeout())
	}
	if b.RetryAttemptTimeout() != 60*time.Second {
		t.Errorf("Unexpected retry timeout: %v", b.RetryAttemptTimeout())
	}
	if b.RetryDelay() != 2*time.Second {
		t.Errorf("Unexpected retry delay: %v", b.RetryDelay())
	}
}

func TestGlobalSetAndReset(t *testing.T) {
	defer ResetGlobalForTesting()

	cfg := Default()
	cfg.Backend.UserID = "global_test"
	SetGlobal(cfg)

	if Global().Backend.UserID != "global_test" {
		t.Errorf("Unexpected global user ID: %s", Global().Backend.UserID)
	}
}
