// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Davidcm2803/bot-literario/internal/backend"
	"github.com/Davidcm2803/bot-literario/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete biblio configuration.
type Config struct {
	// Backend is the question-answering service.
	Backend BackendConfig `toml:"backend" yaml:"backend"`

	// UI controls the terminal interface.
	UI UIConfig `toml:"ui" yaml:"ui"`

	// Storage locates the files biblio writes.
	Storage StorageConfig `toml:"storage" yaml:"storage"`

	// Logging configures the developer log.
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// BackendConfig contains the question-answering service settings.
type BackendConfig struct {
	// URL is the service base URL; "/" is probed and "/ask" is queried.
	URL string `toml:"url" yaml:"url"`
	// RequestTimeoutSecs bounds a single question, including the response body.
	RequestTimeoutSecs int `toml:"request_timeout_secs" yaml:"request_timeout_secs"`
	// ProbeTimeoutSecs bounds the reachability probe.
	ProbeTimeoutSecs int `toml:"probe_timeout_secs" yaml:"probe_timeout_secs"`
	// RateLimit is the maximum outbound requests per second (0 = unlimited).
	RateLimit float64 `toml:"rate_limit" yaml:"rate_limit"`
	// MaxPassages caps how many retrieved passages are shown per answer.
	MaxPassages int `toml:"max_passages" yaml:"max_passages"`
}

// UIConfig contains terminal interface settings.
type UIConfig struct {
	// NarrowWidth is the column count below which the sidebar becomes an overlay.
	NarrowWidth int `toml:"narrow_width" yaml:"narrow_width"`
	// SuggestionCount is how many suggestions are drawn from the pool.
	SuggestionCount int `toml:"suggestion_count" yaml:"suggestion_count"`
	// Suggestions is the pool of suggested questions.
	Suggestions []string `toml:"suggestions" yaml:"suggestions"`
	// Markdown renders bot answers through glamour.
	Markdown bool `toml:"markdown" yaml:"markdown"`
}

// StorageConfig contains file locations. Empty paths resolve under ConfigDir.
type StorageConfig struct {
	// PrefsPath is the sqlite preference database (theme).
	PrefsPath string `toml:"prefs_path" yaml:"prefs_path"`
	// HistoryPath is the line-mode input history.
	HistoryPath string `toml:"history_path" yaml:"history_path"`
}

// LoggingConfig contains developer log settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File is the log file; empty resolves to ConfigDir/biblio.log.
	File string `toml:"file" yaml:"file"`
}

// DefaultSuggestions is the built-in suggested-question pool.
var DefaultSuggestions = []string{
	"¿Quién escribió Don Quijote de la Mancha?",
	"¿De qué trata Cien años de soledad?",
	"Recomiéndame un libro de ciencia ficción clásica",
	"¿Qué personajes aparecen en Orgullo y prejuicio?",
	"Resume el primer capítulo de Moby Dick",
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:                "http://127.0.0.1:8090",
			RequestTimeoutSecs: 30,
			ProbeTimeoutSecs:   5,
			RateLimit:          2,
			MaxPassages:        3,
		},
		UI: UIConfig{
			NarrowWidth:     80,
			SuggestionCount: 3,
			Suggestions:     append([]string(nil), DefaultSuggestions...),
			Markdown:        true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ClientConfig converts the backend section into client options.
func (b BackendConfig) ClientConfig() *backend.ClientConfig {
	return &backend.ClientConfig{
		BaseURL:      b.URL,
		Timeout:      b.RequestTimeout(),
		ProbeTimeout: b.ProbeTimeout(),
		RateLimit:    b.RateLimit,
		MaxPassages:  b.MaxPassages,
	}
}

// RequestTimeout returns RequestTimeoutSecs as a duration.
func (b BackendConfig) RequestTimeout() time.Duration {
	return time.Duration(b.RequestTimeoutSecs) * time.Second
}

// ProbeTimeout returns ProbeTimeoutSecs as a duration.
func (b BackendConfig) ProbeTimeout() time.Duration {
	return time.Duration(b.ProbeTimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the biblio configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("BIBLIO_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".biblio"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return inConfigDir("config.toml")
}

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) {
	return inConfigDir("config.yaml")
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// PrefsPath returns the preference database path.
func (c *Config) PrefsPath() (string, error) {
	if c.Storage.PrefsPath != "" {
		return c.Storage.PrefsPath, nil
	}
	return inConfigDir("prefs.db")
}

// HistoryPath returns the line-mode history file path.
func (c *Config) HistoryPath() (string, error) {
	if c.Storage.HistoryPath != "" {
		return c.Storage.HistoryPath, nil
	}
	return inConfigDir("chat_history")
}

// LogPath returns the developer log file path.
func (c *Config) LogPath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	return inConfigDir("biblio.log")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then YAML, and falls back to defaults.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathYAML} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadFromPath(path)
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from an explicit file. Files ending in
// .yaml or .yml are parsed as YAML, anything else as TOML. Keys missing from
// the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode YAML config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# biblio configuration file\n")
	buf.WriteString("# Generated by biblio - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Backend.URL),
		})
	}
	if c.Backend.RequestTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{Field: "backend.request_timeout_secs", Message: "must be positive"})
	}
	if c.Backend.ProbeTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{Field: "backend.probe_timeout_secs", Message: "must be positive"})
	}
	if c.Backend.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "backend.rate_limit", Message: "must not be negative"})
	}
	if c.Backend.MaxPassages < 0 {
		errs = append(errs, ValidationError{Field: "backend.max_passages", Message: "must not be negative"})
	}

	if c.UI.NarrowWidth < 0 {
		errs = append(errs, ValidationError{Field: "ui.narrow_width", Message: "must not be negative"})
	}
	if c.UI.SuggestionCount < 1 || c.UI.SuggestionCount > len(c.UI.Suggestions) {
		errs = append(errs, ValidationError{
			Field:   "ui.suggestion_count",
			Message: fmt.Sprintf("must be between 1 and %d (pool size)", len(c.UI.Suggestions)),
		})
	}
	seen := make(map[string]bool, len(c.UI.Suggestions))
	for _, s := range c.UI.Suggestions {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, ValidationError{Field: "ui.suggestions", Message: "must not contain empty entries"})
			break
		}
		if seen[s] {
			errs = append(errs, ValidationError{Field: "ui.suggestions", Message: fmt.Sprintf("duplicate entry '%s'", s)})
			break
		}
		seen[s] = true
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that a partial file leaves behind.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Backend.URL == "" {
		c.Backend.URL = d.Backend.URL
	}
	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")
	if c.Backend.RequestTimeoutSecs == 0 {
		c.Backend.RequestTimeoutSecs = d.Backend.RequestTimeoutSecs
	}
	if c.Backend.ProbeTimeoutSecs == 0 {
		c.Backend.ProbeTimeoutSecs = d.Backend.ProbeTimeoutSecs
	}
	if len(c.UI.Suggestions) == 0 {
		c.UI.Suggestions = d.UI.Suggestions
	}
	if c.UI.SuggestionCount == 0 {
		c.UI.SuggestionCount = d.UI.SuggestionCount
		if c.UI.SuggestionCount > len(c.UI.Suggestions) {
			c.UI.SuggestionCount = len(c.UI.Suggestions)
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// ApplyEnvOverrides applies BIBLIO_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	// BIBLIO_BACKEND_URL
	if u := os.Getenv("BIBLIO_BACKEND_URL"); u != "" {
		c.Backend.URL = u
	}

	// BIBLIO_TIMEOUT (seconds)
	if t := os.Getenv("BIBLIO_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			c.Backend.RequestTimeoutSecs = secs
		}
	}

	// BIBLIO_LOG_LEVEL
	if level := os.Getenv("BIBLIO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	// BIBLIO_PREFS_PATH
	if p := os.Getenv("BIBLIO_PREFS_PATH"); p != "" {
		c.Storage.PrefsPath = p
	}
}

// =============================================================================
// SINGLETON (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process configuration, loading it on first access.
// Load errors fall back to defaults with a warning on stderr.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	initialized := false
	globalConfigOnce.Do(func() {
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
		initialized = true
	})
	if initialized {
		return
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
