package guard

import (
	"context"
	"errors"
)

// settings holds the resolved configuration for a single operation. Each
// operation resolves its own settings; nothing is shared across scopes.
type settings struct {
	raiseKind   *Kind
	raiseSet    bool
	suppress    bool
	raiseArgs   []any
	raiseFields map[string]any

	builder    Builder
	builderSet bool

	handleTargets []error
	handleFunc    func(error) bool
	ignoreTargets []error
	ignoreFunc    func(error) bool

	onSuccess func()
	onFailure func(error)
	onExcept  func(ExceptParams)
	onFinally func()

	onSuccessCtx func(context.Context) error
	onExceptCtx  func(context.Context, ExceptParams) error
	onFinallyCtx func(context.Context) error
}

// Option configures a single guard operation.
type Option func(*settings)

// newSettings applies opts over the defaults and validates them.
func newSettings(opts []Option) (*settings, error) {
	s := &settings{raiseKind: ErrGeneric}
	for _, opt := range opts {
		opt(s)
	}
	if s.raiseSet && s.raiseKind == nil {
		return nil, configErrorf("raise kind may not be nil; use WithSuppress to swallow handled failures")
	}
	return s, nil
}

// WithRaise sets the kind raised when the operation fails.
// Defaults to ErrGeneric. Not accepted by bound kind operations.
func WithRaise(kind *Kind) Option {
	return func(s *settings) {
		s.raiseKind = kind
		s.raiseSet = true
	}
}

// WithSuppress makes a handled scope swallow intercepted failures instead of
// raising a replacement. Hooks still observe the failure. Only handled
// scopes honor suppression; other operations report it as a configuration
// error.
func WithSuppress() Option {
	return func(s *settings) {
		s.suppress = true
	}
}

// WithArgs supplies extra positional construction arguments, passed to the
// builder after the composed message.
func WithArgs(args ...any) Option {
	return func(s *settings) {
		s.raiseArgs = append(s.raiseArgs, args...)
	}
}

// WithField supplies one extra named construction argument.
func WithField(key string, value any) Option {
	return func(s *settings) {
		if s.raiseFields == nil {
			s.raiseFields = make(map[string]any)
		}
		s.raiseFields[key] = value
	}
}

// WithFields supplies extra named construction arguments. Later options
// override earlier ones with the same key.
func WithFields(fields map[string]any) Option {
	return func(s *settings) {
		if len(fields) == 0 {
			return
		}
		if s.raiseFields == nil {
			s.raiseFields = make(map[string]any, len(fields))
		}
		for k, v := range fields {
			s.raiseFields[k] = v
		}
	}
}

// WithBuilder sets the construction strategy for the raised error. Useful
// for error types that do not take the message as their first argument.
// Not accepted by bound kind operations; use KindBuilder there.
func WithBuilder(b Builder) Option {
	return func(s *settings) {
		s.builder = b
		s.builderSet = true
	}
}

// WithHandle limits interception to errors matching any target under
// errors.Is. Kind tokens match their descendants. The default handles
// every error.
func WithHandle(targets ...error) Option {
	return func(s *settings) {
		s.handleTargets = append(s.handleTargets, targets...)
	}
}

// WithHandleFunc limits interception to errors the predicate accepts,
// in addition to any WithHandle targets.
func WithHandleFunc(match func(error) bool) Option {
	return func(s *settings) {
		s.handleFunc = match
	}
}

// WithIgnore exempts errors matching any target from handling entirely;
// they propagate untouched. Ignoring takes precedence over handling.
func WithIgnore(targets ...error) Option {
	return func(s *settings) {
		s.ignoreTargets = append(s.ignoreTargets, targets...)
	}
}

// WithIgnoreFunc exempts errors the predicate accepts, in addition to any
// WithIgnore targets.
func WithIgnoreFunc(match func(error) bool) Option {
	return func(s *settings) {
		s.ignoreFunc = match
	}
}

// WithOnSuccess registers a hook invoked when the operation succeeds.
func WithOnSuccess(fn func()) Option {
	return func(s *settings) {
		s.onSuccess = fn
	}
}

// WithOnFailure registers a hook invoked with the built error just before
// an assertion or batch-check operation returns it. Handled scopes use
// WithOnExcept instead.
func WithOnFailure(fn func(error)) Option {
	return func(s *settings) {
		s.onFailure = fn
	}
}

// WithOnExcept registers a hook invoked when a handled scope intercepts a
// failure, before any replacement error is built.
func WithOnExcept(fn func(ExceptParams)) Option {
	return func(s *settings) {
		s.onExcept = fn
	}
}

// WithOnFinally registers a hook guaranteed to run exactly once per scope,
// after all other hooks, regardless of outcome.
func WithOnFinally(fn func()) Option {
	return func(s *settings) {
		s.onFinally = fn
	}
}

// WithOnSuccessContext is the suspending form of WithOnSuccess, accepted by
// HandleErrorsContext. A returned error propagates from the scope.
func WithOnSuccessContext(fn func(context.Context) error) Option {
	return func(s *settings) {
		s.onSuccessCtx = fn
	}
}

// WithOnExceptContext is the suspending form of WithOnExcept, accepted by
// HandleErrorsContext. A returned error propagates instead of the
// replacement error.
func WithOnExceptContext(fn func(context.Context, ExceptParams) error) Option {
	return func(s *settings) {
		s.onExceptCtx = fn
	}
}

// WithOnFinallyContext is the suspending form of WithOnFinally, accepted by
// HandleErrorsContext.
func WithOnFinallyContext(fn func(context.Context) error) Option {
	return func(s *settings) {
		s.onFinallyCtx = fn
	}
}

// hasContextHooks reports whether any suspending hook was supplied.
func (s *settings) hasContextHooks() bool {
	return s.onSuccessCtx != nil || s.onExceptCtx != nil || s.onFinallyCtx != nil
}

// matchesIgnore reports whether err is exempt from handling.
// The default ignore set matches nothing.
func (s *settings) matchesIgnore(err error) bool {
	return matchesAny(err, s.ignoreTargets, s.ignoreFunc)
}

// matchesHandle reports whether err should be intercepted.
// The default handle set matches everything.
func (s *settings) matchesHandle(err error) bool {
	if len(s.handleTargets) == 0 && s.handleFunc == nil {
		return true
	}
	return matchesAny(err, s.handleTargets, s.handleFunc)
}

func matchesAny(err error, targets []error, pred func(error) bool) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return pred != nil && pred(err)
}

// build resolves the builder and constructs the error, normalizing builder
// misbehavior. Precedence: explicit WithBuilder, then the raise kind's own
// builder, then DefaultBuilder.
func (s *settings) build(params BuildParams) error {
	b := s.builder
	if b == nil && params.Kind != nil && params.Kind.builder != nil {
		b = params.Kind.builder
	}
	if b == nil {
		b = DefaultBuilder
	}
	return runBuilder(b, params)
}
