// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for biblio.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (BIBLIO_*)
//   - ~/.biblio/config.toml
//   - ~/.biblio/config.yaml
//   - Built-in defaults
//
// BIBLIO_HOME relocates the ~/.biblio directory.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := backend.NewClientWithConfig(cfg.Backend.ClientConfig())
package config
