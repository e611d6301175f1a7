// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across jedai.
//
// # Key Functions
//
// String Utilities:
//   - StringWidth, TruncateWidth, PadRight: terminal cell width aware
//   - Indent, FirstLine, ExpandHome
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	badge := util.PadRight(label, 12)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
