package guard

// ErrorCode identifies the category of failure that produced an error.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Assertion errors.

	// CodeAssertionFailed indicates a required condition or non-nil value check failed.
	CodeAssertionFailed ErrorCode = "ASSERTION_FAILED"

	// CodeBatchCheckFailed indicates one or more expressions in a check batch failed.
	CodeBatchCheckFailed ErrorCode = "BATCH_CHECK_FAILED"

	// Interception errors.

	// CodeWrappedFailure indicates an error intercepted inside a handled scope
	// was repackaged with the scope's base message.
	CodeWrappedFailure ErrorCode = "WRAPPED_FAILURE"

	// CodeFormatFailed indicates composing a diagnostic message itself failed.
	// Surfaced distinctly so the original failure is never masked.
	CodeFormatFailed ErrorCode = "MESSAGE_FORMAT_FAILED"

	// Usage errors.

	// CodeBadConfiguration indicates the caller misused the API, such as
	// overriding the raise kind on a bound operation or supplying a builder
	// that produced no error.
	CodeBadConfiguration ErrorCode = "BAD_CONFIGURATION"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
