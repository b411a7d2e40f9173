package guard

import (
	"fmt"
	"io"
)

// Error is the concrete error type produced by the default builder.
// Instances are immutable once constructed.
type Error struct {
	kind        *Kind
	code        ErrorCode
	message     string
	baseMessage string
	args        []any
	fields      map[string]any
	cause       error
	trace       Stack
}

// Error returns the string representation of the error.
// Format: "[CODE] message". The cause is intentionally not appended because
// composed messages already embed the original failure's text; the cause
// remains reachable via Unwrap and is rendered by %+v.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Code returns the failure-category code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Kind returns the kind token the error was raised as, or nil.
func (e *Error) Kind() *Kind {
	return e.kind
}

// Message returns the error message.
func (e *Error) Message() string {
	return e.message
}

// BaseMessage returns the caller-supplied, pre-composition message, or "".
func (e *Error) BaseMessage() string {
	return e.baseMessage
}

// Args returns a copy of the extra positional construction arguments.
// Returns nil if none were supplied.
func (e *Error) Args() []any {
	if e.args == nil {
		return nil
	}
	out := make([]any, len(e.args))
	copy(out, e.args)
	return out
}

// Fields returns a defensive copy of the fields map.
// Returns nil if no fields have been attached (maintains immutability).
func (e *Error) Fields() map[string]any {
	if e.fields == nil {
		return nil
	}
	fields := make(map[string]any, len(e.fields))
	for k, v := range e.fields {
		fields[k] = v
	}
	return fields
}

// Trace returns the captured stack trace, or nil.
func (e *Error) Trace() Stack {
	return e.trace
}

// Unwrap returns the wrapped error for standard library compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is the error's kind token or one of that kind's
// ancestors. This lets errors.Is(err, someKind) match the kind and all of
// its descendants without runtime type-name comparison.
func (e *Error) Is(target error) bool {
	k, ok := target.(*Kind)
	if !ok {
		return false
	}
	for cur := e.kind; cur != nil; cur = cur.parent {
		if cur == k {
			return true
		}
	}
	return false
}

// Format implements fmt.Formatter.
//
//	%v, %s  concise, single-line Error()
//	%+v     verbose, multi-line (base message, fields, cause chain, trace)
//	%q      quoted Error()
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			io.WriteString(f, e.Error())
			if e.baseMessage != "" && e.baseMessage != e.message {
				fmt.Fprintf(f, "\nbase message: %s", e.baseMessage)
			}
			for _, k := range sortedKeys(e.fields) {
				fmt.Fprintf(f, "\n%s: %v", k, e.fields[k])
			}
			if e.cause != nil {
				fmt.Fprintf(f, "\ncause: %+v", e.cause)
			}
			if len(e.trace) > 0 {
				fmt.Fprintf(f, "\ntrace:\n%s", e.trace)
			}
			return
		}
		io.WriteString(f, e.Error())
	case 's':
		io.WriteString(f, e.Error())
	case 'q':
		fmt.Fprintf(f, "%q", e.Error())
	}
}
