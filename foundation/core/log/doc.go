// Package log provides structured logging for cliparse.
//
// Package: log
// Title: cliparse Structured Logging
// Description: Leveled, structured logger with JSON and text output. Loggers
//              are immutable values: every With* call returns a configured
//              copy, so a tokenizer can carry its own component field and a
//              CLI run its own correlation ID without affecting other users.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-03-02 v0.2.0: Removed async buffering, timers and audit level
//
// Usage:
//
//	import mdwlog "github.com/msto63/cliparse/foundation/core/log"
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{
//		Level:  mdwlog.LevelDebug,
//		Format: mdwlog.FormatText,
//		Name:   "cliparse",
//	})
//	logger.Info("tokenized", mdwlog.Fields{"tokens": 3})
package log
