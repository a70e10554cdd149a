// Package ui renders user-facing console output.
//
// Reporter prints styled outcome lines and the deletion summary table, while
// ConsoleCommandEventLogger echoes shell command lifecycle events through a
// human-readable zap logger.
package ui
