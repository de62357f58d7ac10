/*
Package errors provides semantic error types for the redisnatives library.

The package defines the failure taxonomy shared by every datatype facade with
specific types that can be checked using the standard errors.Is() function or
the provided helper functions.

Common Errors:

	var (
	    ErrTypeMismatch   = errors.New("type mismatch")
	    ErrKey            = errors.New("key or field not found")
	    ErrValue          = errors.New("value not present")
	    ErrIndex          = errors.New("index out of range")
	    ErrNotImplemented = errors.New("operation not implemented")
	    ErrInvalidConfig  = errors.New("invalid configuration")
	)

Usage:

	// Check error type
	err := set.Remove(ctx, "member")
	if err != nil {
	    if errors.IsKeyError(err) {
	        // "member" was not in the set
	        return fmt.Errorf("member already gone: %w", err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewTypeMismatchError("incr", "hits", "stored value is not an integer")
	err := errors.NewKeyError("Set", "idx", "member")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
