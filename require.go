package guard

import "reflect"

// DefaultDefinedMessage is used by EnforceDefined when no message is given.
const DefaultDefinedMessage = "Value was not defined"

// RequireCondition asserts that expr is true. When it is not, an error of
// the configured raise kind is built with the supplied message.
//
// Example:
//
//	if err := guard.RequireCondition(port > 0, "port must be positive",
//		guard.WithRaise(ErrConfig),
//	); err != nil {
//		return err
//	}
func RequireCondition(expr bool, message string, opts ...Option) error {
	s, err := newSettings(opts)
	if err != nil {
		return err
	}
	return requireCondition(s, expr, message)
}

func requireCondition(s *settings, expr bool, message string) error {
	if err := rejectSuppress(s); err != nil {
		return err
	}
	if expr {
		if s.onSuccess != nil {
			s.onSuccess()
		}
		return nil
	}
	built := s.build(BuildParams{
		Kind:    s.raiseKind,
		Code:    CodeAssertionFailed,
		Message: message,
		Args:    s.raiseArgs,
		Fields:  s.raiseFields,
	})
	if s.onFailure != nil {
		s.onFailure(built)
	}
	return built
}

// EnforceDefined asserts that value is defined (non-nil) and returns the
// value itself, unchanged. Passing "" as the message uses
// DefaultDefinedMessage. Nil pointers, interfaces, maps, slices, functions,
// and channels are undefined; values of non-nilable types always pass.
//
// Example:
//
//	cfg, err := guard.EnforceDefined(loadConfig(), "config was not loaded")
func EnforceDefined[T any](value T, message string, opts ...Option) (T, error) {
	s, err := newSettings(opts)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := enforceDefined(s, value, message); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

func enforceDefined(s *settings, value any, message string) error {
	if err := rejectSuppress(s); err != nil {
		return err
	}
	if isDefined(value) {
		if s.onSuccess != nil {
			s.onSuccess()
		}
		return nil
	}
	if message == "" {
		message = DefaultDefinedMessage
	}
	built := s.build(BuildParams{
		Kind:    s.raiseKind,
		Code:    CodeAssertionFailed,
		Message: message,
		Args:    s.raiseArgs,
		Fields:  s.raiseFields,
	})
	if s.onFailure != nil {
		s.onFailure(built)
	}
	return built
}

// isDefined reports whether value is usable: non-nil for nilable kinds,
// always true otherwise.
func isDefined(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return !rv.IsNil()
	default:
		return true
	}
}

// rejectSuppress reports suppression as a configuration error on operations
// that must always raise on failure.
func rejectSuppress(s *settings) error {
	if s.suppress {
		return configErrorf("WithSuppress is only supported by HandleErrors scopes")
	}
	return nil
}
