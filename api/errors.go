package api

import "fmt"

// RequestValidationError reports a request whose arguments violate the
// caller contract (a name passed to a collection operation, a missing
// name for a single-object operation, a subresource without a name).
// It is raised before anything is sent: these are bugs in the calling
// code, never runtime conditions, and are not retryable.
type RequestValidationError struct {
	// Op is the operation that was being built, e.g. "patch".
	Op string
	// Reason says which argument combination was rejected.
	Reason string
}

func (e *RequestValidationError) Error() string {
	return fmt.Sprintf("invalid %s request: %s", e.Op, e.Reason)
}
