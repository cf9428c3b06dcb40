// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Davidcm2803/bot-literario/internal/backend"
	"github.com/Davidcm2803/bot-literario/internal/config"
	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/logger"
	"github.com/Davidcm2803/bot-literario/internal/prefs"
)

// env is the per-command runtime: resolved config plus an open log.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

// loadEnv resolves the config (file, env, then flags) and opens the log file.
func loadEnv(opts *rootOptions) (*env, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.backendURL != "" {
		cfg.Backend.URL = opts.backendURL
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	config.SetGlobal(cfg)

	if err := config.EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}
	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(logPath, cfg.Logging.Level); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: logger.With("cli")}
	e.log.Debug("config resolved", "backend", cfg.Backend.URL, "level", cfg.Logging.Level)
	return e, nil
}

func (e *env) close() {
	logger.Close()
}

// newController builds a conversation over the configured backend.
func (e *env) newController() *conversation.Controller {
	client := backend.NewClientWithConfig(e.cfg.Backend.ClientConfig())
	return conversation.New(client, conversation.Options{
		Timeout:         e.cfg.Backend.RequestTimeout(),
		Suggestions:     e.cfg.UI.Suggestions,
		SuggestionCount: e.cfg.UI.SuggestionCount,
		Logger:          logger.With("conversation"),
	})
}

// openPrefs opens the sqlite preference store.
func (e *env) openPrefs() (*prefs.SQLiteStore, error) {
	path, err := e.cfg.PrefsPath()
	if err != nil {
		return nil, err
	}
	return prefs.OpenSQLite(path)
}

// cancelOnInterrupt cancels the in-flight request on Ctrl+C while a
// synchronous Send blocks. The returned func stops listening.
func cancelOnInterrupt(ctrl *conversation.Controller, onCancel func()) func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sig:
				if ctrl.Cancel() && onCancel != nil {
					onCancel()
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sig)
		close(done)
	}
}
