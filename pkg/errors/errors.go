// Package errors provides common domain error types for the voicenotes CLI.
//
// This package defines sentinel errors for the conditions the pipeline
// distinguishes: invalid caller input, a missing audio file, an
// authentication failure against a gated model, and a failure inside an
// external engine or service. Using typed errors enables consistent error
// handling patterns with errors.Is() checks.
//
// Usage:
//
//	import vnerrors "github.com/voicenotes/voicenotes-cli/pkg/errors"
//
//	// Return a domain error
//	return fmt.Errorf("%w: model cannot be empty", vnerrors.ErrValidation)
//
//	// Check for domain errors
//	if vnerrors.IsValidation(err) {
//	    // handle invalid input
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for pipeline conditions.
var (
	// ErrValidation indicates the caller supplied invalid or missing input.
	// Always raised before any external call; never caught or downgraded.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a referenced file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates an authentication or authorization failure
	// reported by an external engine, typically a missing or rejected token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEngine indicates an external engine or service returned a
	// malformed, empty, or absent result, or raised its own failure.
	// Wrapped errors keep the original cause for diagnostics.
	ErrEngine = errors.New("engine error")
)

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether any error in err's chain is ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsEngine reports whether any error in err's chain is ErrEngine.
func IsEngine(err error) bool {
	return errors.Is(err, ErrEngine)
}
