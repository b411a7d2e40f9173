package guard

import (
	"context"
	"fmt"
)

// Kind is a declared error kind: a token identifying a family of errors for
// matching purposes, together with the construction strategy used to build
// instances of it. Kinds may declare a parent, forming a hierarchy;
// errors.Is against a kind matches errors of that kind or any descendant.
//
// Declare kinds once at package scope:
//
//	var ErrConfig = guard.Define("config_error")
//	var ErrConfigFile = guard.Define("config_file_error", guard.KindParent(ErrConfig))
//
// A Kind exposes the package's operations as bound methods that implicitly
// raise the kind itself and construct instances through the kind's builder.
type Kind struct {
	name    string
	parent  *Kind
	builder Builder
}

// KindOption configures a Kind at definition time.
type KindOption func(*Kind)

// KindParent declares the kind's parent. Errors raised as the kind also
// match the parent (and further ancestors) under errors.Is.
func KindParent(parent *Kind) KindOption {
	return func(k *Kind) {
		k.parent = parent
	}
}

// KindBuilder overrides how instances of the kind are constructed. The
// override is honored uniformly by every bound operation of the kind.
func KindBuilder(b Builder) KindOption {
	return func(k *Kind) {
		k.builder = b
	}
}

// Define declares a new error kind. The name identifies the kind in
// composed messages and serialized output.
func Define(name string, opts ...KindOption) *Kind {
	k := &Kind{name: name}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// ErrGeneric is the default raise kind used by every operation when no
// WithRaise option is supplied.
var ErrGeneric = Define("guard.error")

// Name returns the kind's declared name.
func (k *Kind) Name() string {
	return k.name
}

// Error makes the kind usable as a match target for errors.Is.
// Kind tokens are never returned as errors themselves.
func (k *Kind) Error() string {
	return k.name
}

// Is reports whether target is this kind or one of its ancestors, so kind
// tokens also match each other under errors.Is.
func (k *Kind) Is(target error) bool {
	t, ok := target.(*Kind)
	if !ok {
		return false
	}
	for cur := k; cur != nil; cur = cur.parent {
		if cur == t {
			return true
		}
	}
	return false
}

func (k *Kind) builderOrDefault() Builder {
	if k.builder != nil {
		return k.builder
	}
	return DefaultBuilder
}

// New builds an instance of the kind with the given message, through the
// kind's builder.
func (k *Kind) New(message string) error {
	return runBuilder(k.builderOrDefault(), BuildParams{
		Kind:    k,
		Code:    CodeUnknown,
		Message: message,
	})
}

// Newf builds an instance of the kind with a formatted message.
func (k *Kind) Newf(format string, args ...any) error {
	return k.New(fmt.Sprintf(format, args...))
}

// Wrap builds an instance of the kind wrapping err, reachable via Unwrap.
// Returns nil if err is nil.
func (k *Kind) Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return runBuilder(k.builderOrDefault(), BuildParams{
		Kind:    k,
		Code:    CodeWrappedFailure,
		Message: message,
		Cause:   err,
	})
}

// boundSettings resolves options for a bound operation. The raise kind and
// builder are fixed to the kind; overriding either is a configuration error
// reported immediately, before any work runs.
func (k *Kind) boundSettings(opts []Option) (*settings, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.raiseSet {
		return nil, configErrorf("raise kind may not be overridden on %s bound operations", k.name)
	}
	if s.builderSet {
		return nil, configErrorf("builder may not be overridden on %s bound operations; use KindBuilder when defining the kind", k.name)
	}
	s.raiseKind = k
	s.builder = k.builderOrDefault()
	return s, nil
}

// RequireCondition asserts that expr is true, raising an instance of the
// kind with the supplied message when it is not.
func (k *Kind) RequireCondition(expr bool, message string, opts ...Option) error {
	s, err := k.boundSettings(opts)
	if err != nil {
		return err
	}
	return requireCondition(s, expr, message)
}

// EnforceDefined asserts that value is non-nil and returns it unchanged.
// The failure raises an instance of the kind.
func (k *Kind) EnforceDefined(value any, message string, opts ...Option) (any, error) {
	s, err := k.boundSettings(opts)
	if err != nil {
		return nil, err
	}
	if err := enforceDefined(s, value, message); err != nil {
		return nil, err
	}
	return value, nil
}

// CheckExpressions runs a batch of checks and raises a single instance of
// the kind summarizing every failed check.
func (k *Kind) CheckExpressions(baseMessage string, fn func(*Checker), opts ...Option) error {
	s, err := k.boundSettings(opts)
	if err != nil {
		return err
	}
	return checkExpressions(s, baseMessage, fn)
}

// HandleErrors runs fn inside a handled scope that repackages intercepted
// failures as instances of the kind. WithSuppress is honored, so handled
// failures can be swallowed while hooks still observe them.
func (k *Kind) HandleErrors(baseMessage string, fn func() error, opts ...Option) error {
	s, err := k.boundSettings(opts)
	if err != nil {
		return err
	}
	return handleErrors(s, baseMessage, fn)
}

// HandleErrorsContext is the context-aware variant of HandleErrors.
func (k *Kind) HandleErrorsContext(ctx context.Context, baseMessage string, fn func(context.Context) error, opts ...Option) error {
	s, err := k.boundSettings(opts)
	if err != nil {
		return err
	}
	return handleErrorsContext(ctx, s, baseMessage, fn)
}
