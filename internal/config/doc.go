// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for jedai.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - EndpointConfig: where the explanation service lives
//   - UIConfig: theme, copy feedback and wrapping
//   - LogConfig: level and log file
//   - Watcher: re-reads the config file when it changes (fsnotify)
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the caller)
//   - Environment variables (JEDAI_*), then ~/.jedai/jedai.env
//   - ~/.jedai/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := explainer.NewClient(cfg.Endpoint.URL).
//	    WithTimeout(cfg.Endpoint.Timeout())
package config
