// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		// Writer goroutine
		go func() {
			defer wg.Done()
			c := &Config{
				Version: "test",
				API: APIConfig{
					BaseURL: "http://localhost:8000",
				},
			}
			SetGlobal(c)
		}()

		// Reader goroutine
		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}

	// Verify defaults are applied
	if cfg.Version == "" {
		t.Error("Config version should not be empty")
	}
	if cfg.API.BaseURL == "" {
		t.Error("API base URL should not be empty")
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	// Initialize with defaults
	_ = Global()

	// Set custom config
	customCfg := Default()
	customCfg.Version = "custom-version"
	customCfg.UI.Theme = "light"
	SetGlobal(customCfg)

	// Verify the custom config is returned
	result := Global()
	if result.Version != "custom-version" {
		t.Errorf("Expected version 'custom-version', got '%s'", result.Version)
	}
	if result.UI.Theme != "light" {
		t.Errorf("Expected theme 'light', got '%s'", result.UI.Theme)
	}
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Version == "" {
		t.Error("Default config should have a version")
	}

	if cfg.API.BaseURL == "" {
		t.Error("Default config should have an API base URL")
	}

	if cfg.API.TimeoutSecs == 0 {
		t.Error("Default config should have a request timeout")
	}

	if cfg.Chat.UndoDelaySecs != 5 {
		t.Errorf("Expected default undo delay 5s, got %d", cfg.Chat.UndoDelaySecs)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "malformed base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "not a url" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.TimeoutSecs = 0 },
			wantErr: true,
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.API.RequestsPerSecond = -1 },
			wantErr: true,
		},
		{
			name:    "page size too large",
			mutate:  func(c *Config) { c.Chat.PageSize = 500 },
			wantErr: true,
		},
		{
			name:    "undo delay zero",
			mutate:  func(c *Config) { c.Chat.UndoDelaySecs = 0 },
			wantErr: true,
		},
		{
			name:    "undo delay at maximum (60)",
			mutate:  func(c *Config) { c.Chat.UndoDelaySecs = 60 },
			wantErr: false,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	// Test Get
	val, err := cfg.Get("ui.theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "dark" {
		t.Errorf("Get('ui.theme') = %v, want 'dark'", val)
	}

	// Test Set
	err = cfg.Set("api.base_url", "https://studia.example.com")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	val, _ = cfg.Get("api.base_url")
	if val != "https://studia.example.com" {
		t.Errorf("Get('api.base_url') after Set = %v", val)
	}

	// Set converts string input for typed fields
	if err := cfg.Set("chat.page_size", "25"); err != nil {
		t.Fatalf("Set() int conversion error = %v", err)
	}
	val, _ = cfg.Get("chat.page_size")
	if val != 25 {
		t.Errorf("Get('chat.page_size') = %v, want 25", val)
	}

	// Test Get with invalid key
	_, err = cfg.Get("invalid.key")
	if err == nil {
		t.Error("Get() with invalid key should return error")
	}
}

// TestConfig_SetDefaults tests that a sparse config is filled in.
func TestConfig_SetDefaults(t *testing.T) {
	cfg := &Config{
		API: APIConfig{BaseURL: "https://studia.example.com"},
	}
	cfg.SetDefaults()

	if cfg.API.BaseURL != "https://studia.example.com" {
		t.Error("SetDefaults overwrote an explicit value")
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("timeout not defaulted: %d", cfg.API.TimeoutSecs)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme not defaulted: %q", cfg.UI.Theme)
	}
}

// TestConfig_EnvOverrides tests environment variable precedence.
func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STUDIA_API_URL", "https://env.example.com")
	t.Setenv("STUDIA_AUTH_TOKEN", "env-token")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("base URL = %q, env should win", cfg.API.BaseURL)
	}
	if cfg.API.AuthToken != "env-token" {
		t.Errorf("auth token = %q, env should win", cfg.API.AuthToken)
	}
}

// TestConfig_SaveLoadRoundTrip tests TOML persistence.
func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://roundtrip.example.com"
	cfg.UI.Theme = "light"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	// Saved file carries restrictive permissions for the token.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if loaded.API.BaseURL != "https://roundtrip.example.com" {
		t.Errorf("base URL = %q after round trip", loaded.API.BaseURL)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme = %q after round trip", loaded.UI.Theme)
	}
}
