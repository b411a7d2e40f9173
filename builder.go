package guard

import "fmt"

// BuildParams carries everything a Builder needs to construct an error.
// A BuildParams value is created once per failure event, consumed exactly
// once by a Builder, and never mutated.
type BuildParams struct {
	// Kind is the kind token the error should be raised as.
	Kind *Kind

	// Code is the failure-category code of the error.
	Code ErrorCode

	// Message is the composed message to build the error with.
	Message string

	// Args are extra positional construction arguments, in order.
	Args []any

	// Fields are extra named construction arguments.
	Fields map[string]any

	// BaseMessage is the original, pre-composition message supplied by the
	// caller. Carried separately so custom builders can still expose the
	// caller's original intent. Empty outside scope operations.
	BaseMessage string

	// Cause is the original failure the new error replaces, or nil.
	// Builders should make it reachable via Unwrap.
	Cause error

	// Trace is the stack captured when the failure was intercepted, or nil.
	Trace Stack
}

// Builder constructs an error from BuildParams. The default builder places
// the message first and attaches args and fields verbatim; substitute a
// custom builder for error types whose constructors route the message into
// a differently-named field.
type Builder func(BuildParams) error

// DefaultBuilder builds an *Error with the message dedented and all params
// carried through. Extra args and fields are never dropped.
func DefaultBuilder(params BuildParams) error {
	var args []any
	if len(params.Args) > 0 {
		args = make([]any, len(params.Args))
		copy(args, params.Args)
	}
	var fields map[string]any
	if len(params.Fields) > 0 {
		fields = make(map[string]any, len(params.Fields))
		for k, v := range params.Fields {
			fields[k] = v
		}
	}
	return &Error{
		kind:        params.Kind,
		code:        params.Code,
		message:     dedent(params.Message),
		baseMessage: params.BaseMessage,
		args:        args,
		fields:      fields,
		cause:       params.Cause,
		trace:       params.Trace,
	}
}

// runBuilder invokes a builder and normalizes misbehavior. A builder that
// panics or returns nil is a construction failure, surfaced as a distinct
// configuration error rather than conflated with the handled failure.
func runBuilder(b Builder, params BuildParams) (built error) {
	defer func() {
		if r := recover(); r != nil {
			built = configErrorf("error builder panicked: %v", r)
		}
	}()
	built = b(params)
	if built == nil {
		built = configErrorf("error builder returned no error for code %s", params.Code)
	}
	return built
}

// configErrorf builds a caller-misuse error, distinguishable from any
// check or assertion failure by its code.
func configErrorf(format string, args ...any) error {
	return &Error{
		code:    CodeBadConfiguration,
		message: fmt.Sprintf(format, args...),
	}
}
