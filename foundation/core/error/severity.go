// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to decide how loudly an error is logged
//              and whether the CLI exits with a failure status.
// Author: msto63
// Version: v0.1.0
// Created: 2025-01-24
// Modified: 2025-01-24
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a problem with user input; the program itself is fine
	SeverityLow Severity = iota

	// SeverityMedium affects a single operation
	SeverityMedium

	// SeverityHigh affects a whole subsystem, e.g. the history database
	SeverityHigh

	// SeverityCritical makes the program unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch {
	case code.IsSyntax(), code == CodeInvalidInput, code == CodeInputTooLong, code == CodeNotFound:
		return SeverityLow
	case code == CodeStorage, code == CodeInternal:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
