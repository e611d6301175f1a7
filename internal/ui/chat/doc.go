// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat screen.
//
// # Architecture
//
// The screen is a Bubble Tea model over a conversation.Flow:
//
//	keys -> handleKey -> flow.Submit -> explainCmd (flow.Do off the UI loop)
//	                                        |
//	OutcomeMsg -> flow.Resolve -> transcript refresh
//
// The transcript viewport, spinner and banner come from the components
// package. Code blocks are selected with Tab / Shift+Tab and copied with
// Ctrl+Y; the copied badge is cleared by a clipboard.ExpiredMsg. Config
// file changes arrive as ConfigReloadedMsg when Options.Reloads is set.
//
// # Key Files
//
//   - model.go: Model, options and Init
//   - update.go: message dispatch and key handling
//   - view.go: screen layout
//   - keys.go: key bindings and help
//   - messages.go: Bubble Tea message types and commands
//   - cancel.go: cancellation of in-flight requests on quit
package chat
