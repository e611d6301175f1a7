// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcript messages.
//
// # Key Types
//
//   - Message: one transcript entry with sender, text and optional reference
//   - Sender: message author enumeration (user, bot)
//
// # Usage
//
//	q := model.NewUserMessage("what does foo() do?")
//	a := model.NewBotMessage(explanation, reference)
//	for _, seg := range a.Segments() {
//	    ...
//	}
package model
