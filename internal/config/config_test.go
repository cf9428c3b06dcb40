// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points BIBLIO_HOME at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BIBLIO_HOME", dir)
	t.Setenv("BIBLIO_BACKEND_URL", "")
	t.Setenv("BIBLIO_TIMEOUT", "")
	t.Setenv("BIBLIO_LOG_LEVEL", "")
	t.Setenv("BIBLIO_PREFS_PATH", "")
	return dir
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://127.0.0.1:8090", cfg.Backend.URL)
	assert.Equal(t, 3, cfg.UI.SuggestionCount)
	assert.Len(t, cfg.UI.Suggestions, 5)
	assert.Equal(t, 30*time.Second, cfg.Backend.RequestTimeout())
	assert.Equal(t, 5*time.Second, cfg.Backend.ProbeTimeout())
}

func TestDefault_SuggestionsAreCopied(t *testing.T) {
	cfg := Default()
	cfg.UI.Suggestions[0] = "changed"
	assert.NotEqual(t, "changed", DefaultSuggestions[0])
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Backend, cfg.Backend)
}

func TestLoad_TOML(t *testing.T) {
	dir := isolate(t)
	content := `
[backend]
url = "http://books.local:9000/"
request_timeout_secs = 12

[ui]
narrow_width = 100
markdown = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://books.local:9000", cfg.Backend.URL, "trailing slash trimmed")
	assert.Equal(t, 12, cfg.Backend.RequestTimeoutSecs)
	assert.Equal(t, 5, cfg.Backend.ProbeTimeoutSecs, "unset keys keep defaults")
	assert.Equal(t, 100, cfg.UI.NarrowWidth)
	assert.False(t, cfg.UI.Markdown)
	assert.Len(t, cfg.UI.Suggestions, 5)
}

func TestLoad_YAMLFallback(t *testing.T) {
	dir := isolate(t)
	content := `
backend:
  url: https://biblio.example.org
ui:
  suggestion_count: 2
  suggestions: ["A", "B", "C"]
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://biblio.example.org", cfg.Backend.URL)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.UI.Suggestions)
	assert.Equal(t, 2, cfg.UI.SuggestionCount)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_TOMLTakesPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[backend]\nurl = \"http://toml:1\"\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend:\n  url: http://yaml:2\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://toml:1", cfg.Backend.URL)
}

func TestLoadFromPath_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backend\nurl ="), 0600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_Missing(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BIBLIO_BACKEND_URL", "http://env:7000")
	t.Setenv("BIBLIO_TIMEOUT", "7")
	t.Setenv("BIBLIO_LOG_LEVEL", "warn")
	t.Setenv("BIBLIO_PREFS_PATH", "/tmp/prefs-test.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env:7000", cfg.Backend.URL)
	assert.Equal(t, 7, cfg.Backend.RequestTimeoutSecs)
	assert.Equal(t, "warn", cfg.Logging.Level)

	p, err := cfg.PrefsPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prefs-test.db", p)
}

func TestApplyEnvOverrides_IgnoresBadTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("BIBLIO_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Backend.RequestTimeoutSecs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"relative url", func(c *Config) { c.Backend.URL = "/ask" }, "backend.url"},
		{"ftp url", func(c *Config) { c.Backend.URL = "ftp://host" }, "backend.url"},
		{"zero timeout", func(c *Config) { c.Backend.RequestTimeoutSecs = 0 }, "backend.request_timeout_secs"},
		{"negative probe", func(c *Config) { c.Backend.ProbeTimeoutSecs = -1 }, "backend.probe_timeout_secs"},
		{"negative rate", func(c *Config) { c.Backend.RateLimit = -1 }, "backend.rate_limit"},
		{"count above pool", func(c *Config) { c.UI.SuggestionCount = 6 }, "ui.suggestion_count"},
		{"count zero", func(c *Config) { c.UI.SuggestionCount = 0 }, "ui.suggestion_count"},
		{"empty suggestion", func(c *Config) { c.UI.Suggestions[1] = "  " }, "ui.suggestions"},
		{"duplicate suggestion", func(c *Config) { c.UI.Suggestions[1] = c.UI.Suggestions[0] }, "ui.suggestions"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			found := false
			for _, v := range verrs {
				if v.Field == tc.field {
					found = true
				}
			}
			assert.True(t, found, "expected error on %s, got %v", tc.field, err)
		})
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Backend.URL = "http://saved:1234"
	cfg.UI.NarrowWidth = 90
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved:1234", loaded.Backend.URL)
	assert.Equal(t, 90, loaded.UI.NarrowWidth)
	assert.Equal(t, cfg.UI.Suggestions, loaded.UI.Suggestions)
}

func TestPaths_DefaultUnderConfigDir(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	p, err := cfg.PrefsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prefs.db"), p)

	h, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chat_history"), h)

	l, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "biblio.log"), l)
}

func TestClientConfig(t *testing.T) {
	cfg := Default()
	cc := cfg.Backend.ClientConfig()
	assert.Equal(t, cfg.Backend.URL, cc.BaseURL)
	assert.Equal(t, 30*time.Second, cc.Timeout)
	assert.Equal(t, 5*time.Second, cc.ProbeTimeout)
	assert.Equal(t, 3, cc.MaxPassages)
}

// TestConfig_ConcurrentAccess checks Global and SetGlobal under -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
