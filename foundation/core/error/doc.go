// Package error provides the structured error type used across cliparse.
//
// Package: error
// Title: cliparse Error Handling
// Description: Structured errors with codes, severity levels, details and cause
//              chains. Tokenizer failures, configuration problems and storage
//              errors are all reported through this type so the CLI can render
//              and log them uniformly.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-03-02 v0.2.0: Reduced to the codes used by the tokenizer and its tooling
//
// Usage:
//
//	import mdwerror "github.com/msto63/cliparse/foundation/core/error"
//
//	err := mdwerror.New("closing quote missing").
//		WithCode(mdwerror.CodeUnterminated).
//		WithDetail("position", 12)
//
//	if mdwerror.HasCode(err, mdwerror.CodeUnterminated) {
//		// report a syntax error to the user
//	}
package error
