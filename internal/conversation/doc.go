// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds the chat transcript and the flow that turns a
// submitted query into transcript entries.
//
// # Lifecycle of a query
//
//	req, err := flow.Submit(query)   // user message appended, loading on
//	out := flow.Do(ctx, req)         // remote call, store untouched
//	msg := flow.Resolve(out)         // bot or fallback message, loading off
//
// Submit and Resolve run on the goroutine that owns the UI; Do may run
// anywhere. Send performs all three in sequence.
//
// Every failure of the remote call becomes the same fallback message. The
// loading flag is cleared on every resolution, including one that fails.
package conversation
