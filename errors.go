package guard

// RichError extends the standard error interface with the structured
// information attached by this package's operations.
//
// RichError provides failure-category codes, kind tokens for hierarchy
// matching, the original base message supplied by the caller, extra
// construction arguments and fields, a captured trace, and compatibility
// with standard library error handling (errors.Is, errors.As, errors.Unwrap).
type RichError interface {
	error

	// Code returns the failure-category code of the error.
	Code() ErrorCode

	// Kind returns the kind token the error was raised as.
	// Returns nil if the error was not raised as a declared kind.
	Kind() *Kind

	// Message returns the human-readable error message.
	Message() string

	// BaseMessage returns the caller-supplied, pre-composition message.
	// Returns the empty string if the error was not built from a scope.
	BaseMessage() string

	// Fields returns attached metadata as a read-only map.
	// Returns nil if no fields have been attached.
	Fields() map[string]any

	// Trace returns the captured stack trace.
	// Returns nil if no trace is available.
	Trace() Stack

	// Unwrap returns the wrapped error for errors.Is and errors.As compatibility.
	// Returns nil if this error does not wrap another error.
	Unwrap() error
}
