package guard

import (
	"errors"
	"fmt"
)

// ExceptParams is passed to the on-except hook when a handled scope
// intercepts a failure. It is read-only and valid for the duration of the
// hook invocation.
type ExceptParams struct {
	// Err is the original intercepted error, untouched.
	Err error

	// BaseMessage is the base message the scope was opened with.
	BaseMessage string

	// FinalMessage is the composed message, combining the base message with
	// the original failure's name and text.
	FinalMessage string

	// Trace is the stack captured at interception, or nil if unavailable.
	Trace Stack
}

// PanicError carries a panic recovered inside a handled scope, together
// with the stack captured at the panic site. If the panic value is itself
// an error, Unwrap exposes it so errors.Is and errors.As see through.
type PanicError struct {
	// Value is the recovered panic value.
	Value any

	trace Stack
}

// Error returns the string representation of the recovered panic.
func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap returns the panic value when it is an error, or nil.
func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// Trace returns the stack captured at the panic site.
func (p *PanicError) Trace() Stack {
	return p.trace
}

// HandleErrors runs fn inside a handled scope. A failure returned (or
// panicked) by fn is matched against the ignore set first, then the handle
// set: ignored and unhandled failures propagate completely untouched.
// A handled failure has its message composed as
// "{base} -- {name}: {text}", is shown to the on-except hook, and is then
// either swallowed (WithSuppress) or replaced by a new error built through
// the configured builder, with the original chained as its cause and the
// captured trace carried along.
//
// The on-finally hook runs exactly once, after all other hooks, on every
// path. Composed messages are plain concatenations; an inner scope's
// message is never reinterpreted by an outer scope.
//
// Example:
//
//	err := guard.HandleErrors("failed to sync project", func() error {
//		return syncProject(name)
//	}, guard.WithRaise(ErrSync))
func HandleErrors(baseMessage string, fn func() error, opts ...Option) error {
	s, err := newSettings(opts)
	if err != nil {
		return err
	}
	return handleErrors(s, baseMessage, fn)
}

func handleErrors(s *settings, baseMessage string, fn func() error) (out error) {
	if s.hasContextHooks() {
		return configErrorf("context hooks require HandleErrorsContext")
	}
	if s.onFailure != nil {
		return configErrorf("WithOnFailure is not supported by HandleErrors; use WithOnExcept")
	}

	defer func() {
		if s.onFinally != nil {
			s.onFinally()
		}
	}()

	err := runScope(fn)
	if err == nil {
		if s.onSuccess != nil {
			s.onSuccess()
		}
		return nil
	}
	if s.matchesIgnore(err) || !s.matchesHandle(err) {
		return passThrough(err)
	}

	finalMessage, fmtErr := composeMessage(baseMessage, err)
	if fmtErr != nil {
		return fmtErr
	}
	trace := traceOf(err)

	if s.onExcept != nil {
		s.onExcept(ExceptParams{
			Err:          err,
			BaseMessage:  baseMessage,
			FinalMessage: finalMessage,
			Trace:        trace,
		})
	}
	if s.suppress {
		return nil
	}
	return s.build(BuildParams{
		Kind:        s.raiseKind,
		Code:        CodeWrappedFailure,
		Message:     finalMessage,
		Args:        s.raiseArgs,
		Fields:      s.raiseFields,
		BaseMessage: baseMessage,
		Cause:       err,
		Trace:       trace,
	})
}

// runScope executes fn, converting a panic into a *PanicError holding the
// panic value and the stack captured at the panic site.
func runScope(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, trace: captureStackDefault(2)}
		}
	}()
	return fn()
}

// passThrough re-propagates an ignored or unhandled failure exactly as it
// arrived: returned errors are returned, recovered panics panic again with
// their original value.
func passThrough(err error) error {
	var p *PanicError
	if errors.As(err, &p) {
		panic(p.Value)
	}
	return err
}

// composeMessage builds "{base} -- {name}: {text}". Plain %s substitution
// only, so literal braces or percent signs in the original text survive
// nesting unaltered. A failure while rendering the original error's text
// surfaces as a distinct CodeFormatFailed error.
func composeMessage(baseMessage string, err error) (string, error) {
	text, fmtErr := safeErrorText(err)
	if fmtErr != nil {
		return "", fmtErr
	}
	return fmt.Sprintf("%s -- %s: %s", baseMessage, errorName(err), text), nil
}

// errorName returns the taxonomy name of a failure: the kind name for
// errors raised as a declared kind, "panic" for recovered panics, and the
// concrete Go type otherwise.
func errorName(err error) string {
	switch e := err.(type) {
	case *Error:
		if e.kind != nil {
			return e.kind.name
		}
		return string(e.code)
	case *PanicError:
		return "panic"
	default:
		return fmt.Sprintf("%T", err)
	}
}

// safeErrorText renders the failure's text, guarding against Error()
// implementations that panic.
func safeErrorText(err error) (text string, failure error) {
	defer func() {
		if r := recover(); r != nil {
			failure = &Error{
				code:    CodeFormatFailed,
				message: fmt.Sprintf("failed while formatting message: %v", r),
			}
		}
	}()
	if p, ok := err.(*PanicError); ok {
		return fmt.Sprint(p.Value), nil
	}
	return err.Error(), nil
}

// traceOf prefers the trace already carried by the failure, capturing one
// at the interception site only when none is available.
func traceOf(err error) Stack {
	var p *PanicError
	if errors.As(err, &p) {
		return p.trace
	}
	var rich *Error
	if errors.As(err, &rich) && rich.trace != nil {
		return rich.trace
	}
	return captureStackDefault(1)
}
