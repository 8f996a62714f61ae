// Package errors defines sentinel errors for eenv operations.
//
// These errors enable type-safe error handling throughout the application.
// Use errors.Is() to check for specific conditions:
//
//	if errors.Is(err, kerrors.ErrDecryptionAuthFailed) {
//	    // prompt the user to re-enter the key
//	}
//
// Errors are organized by category: config state, artifact state,
// cryptographic failures, file discovery, and git integration signals.
package errors
