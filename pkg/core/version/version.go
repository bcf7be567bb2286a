// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2025-02-18
// License:     MIT
// ============================================================================

package version

// Version constants for all cliparse components
const (
	// Application version
	Platform = "0.1.0"

	// Component versions
	Tokenizer = "0.1.0"
	History   = "0.1.0"
	Explorer  = "0.1.0"
)

// Build information, set via -ldflags at release time
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "tokenizer":
		return Tokenizer
	case "history":
		return History
	case "explorer":
		return Explorer
	default:
		return Platform
	}
}
