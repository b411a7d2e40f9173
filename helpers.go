package guard

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
//
// Example:
//
//	var ErrTimeout = guard.Define("timeout_error")
//	if guard.Is(err, ErrTimeout) {
//	    // Handle timeout (or any descendant kind)
//	}
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
//
// Example:
//
//	var rich guard.RichError
//	if guard.As(err, &rich) {
//	    code := rich.Code()
//	}
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the failure-category code from an error.
// Returns CodeUnknown if the error is nil or carries no code.
//
// This function handles the error chain and extracts the code from the
// outermost rich error in the chain.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var rich RichError
	if stderrors.As(err, &rich) {
		return rich.Code()
	}

	return CodeUnknown
}

// HasCode reports whether the error carries the given failure-category code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetKind extracts the kind token from an error.
// Returns nil if the error is nil or was not raised as a declared kind.
func GetKind(err error) *Kind {
	if err == nil {
		return nil
	}

	var rich RichError
	if stderrors.As(err, &rich) {
		return rich.Kind()
	}

	return nil
}

// GetTrace extracts the captured stack trace from an error.
// Returns nil if the error is nil or carries no trace.
func GetTrace(err error) Stack {
	if err == nil {
		return nil
	}

	var p *PanicError
	if stderrors.As(err, &p) {
		return p.Trace()
	}

	var rich RichError
	if stderrors.As(err, &rich) {
		return rich.Trace()
	}

	return nil
}
