// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clipboard copies code blocks to the system clipboard and tracks
// which block was copied most recently, for the "copied" badge.
//
// At most one block is marked at a time. Each mark returns a Ticket; the
// mark is cleared by Expire only if no newer mark has replaced it, so an
// old timer firing late cannot clear a newer badge.
//
//	ticket, err := n.MarkCopied(key, code)
//	return n.ExpireCmd(ticket) // ExpiredMsg after the feedback duration
package clipboard
