// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes for classifying failures of the
//              tokenizer, the configuration layer and the history store.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-03-02 v0.2.0: Syntax codes for the argument tokenizer

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Tokenizer
	CodeSyntax          Code = "SYNTAX"
	CodeUnterminated    Code = "UNTERMINATED"
	CodeEndOfInput      Code = "END_OF_INPUT"
	CodeMalformedToken  Code = "MALFORMED_TOKEN"
	CodeUnsupportedChar Code = "UNSUPPORTED_CHARACTER"
	CodeInputTooLong    Code = "INPUT_TOO_LONG"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage
	CodeStorage Code = "STORAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsSyntax reports whether the code describes malformed user input
func (c Code) IsSyntax() bool {
	switch c {
	case CodeSyntax, CodeUnterminated, CodeEndOfInput, CodeMalformedToken, CodeUnsupportedChar:
		return true
	}
	return false
}
