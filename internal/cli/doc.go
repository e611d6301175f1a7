// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the jedai command tree.
//
// # Commands
//
//   - jedai: the interactive chat screen (requires a terminal)
//   - jedai ask QUESTION...: one-shot question, answer on stdout
//   - jedai repl: line-mode chat with line editing and history
//   - jedai config show|init|path|get|set: configuration management
//   - jedai version: build information
//
// Global flags --config, --endpoint, --log-level and --theme override the
// config file and environment for a single run.
//
// # Usage
//
//	if err := cli.Execute(); err != nil {
//	    fmt.Fprintf(os.Stderr, "Error: %v\n", err)
//	    os.Exit(1)
//	}
package cli
