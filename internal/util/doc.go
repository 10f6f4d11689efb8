// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the studia application.
//
// This package contains common helper functions used throughout the
// application for string truncation, display formatting, and file
// operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: Display-width truncation for terminal columns
//
// Display Formatting:
//   - FormatBytes: Human-readable byte sizes
//   - FormatRelativeTime: "2h ago" style timestamps
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Truncate long strings safely for display
//	display := util.TruncateRunes(longText, 50)
//
//	// Fit a title into a sidebar column
//	cell := util.TruncateWidth(title, 24)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
