package guard

import (
	"context"
	"errors"
)

// HandleErrorsContext is the context-aware variant of HandleErrors. The
// wrapped unit of work receives the context, and each hook may be supplied
// in either its blocking form (WithOnSuccess, WithOnExcept, WithOnFinally)
// or its suspending form (WithOnSuccessContext, WithOnExceptContext,
// WithOnFinallyContext); the suspending form wins when both are given, and
// an error returned by a hook propagates from the scope.
//
// Cancellation is transparent: context.Canceled and context.DeadlineExceeded
// failures are always ignored, so they propagate untouched after the
// finalizer hook has run. Matching and composition are otherwise identical
// to HandleErrors.
func HandleErrorsContext(ctx context.Context, baseMessage string, fn func(context.Context) error, opts ...Option) error {
	s, err := newSettings(opts)
	if err != nil {
		return err
	}
	return handleErrorsContext(ctx, s, baseMessage, fn)
}

func handleErrorsContext(ctx context.Context, s *settings, baseMessage string, fn func(context.Context) error) (out error) {
	if s.onFailure != nil {
		return configErrorf("WithOnFailure is not supported by HandleErrorsContext; use WithOnExcept")
	}

	defer func() {
		ferr := callFinallyHook(ctx, s)
		if ferr != nil && out == nil {
			out = ferr
		}
	}()

	err := runScope(func() error { return fn(ctx) })
	if err == nil {
		return callSuccessHook(ctx, s)
	}
	if isCancellation(err) || s.matchesIgnore(err) || !s.matchesHandle(err) {
		return passThrough(err)
	}

	finalMessage, fmtErr := composeMessage(baseMessage, err)
	if fmtErr != nil {
		return fmtErr
	}
	trace := traceOf(err)

	if hookErr := callExceptHook(ctx, s, ExceptParams{
		Err:          err,
		BaseMessage:  baseMessage,
		FinalMessage: finalMessage,
		Trace:        trace,
	}); hookErr != nil {
		return hookErr
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

// isCancellation reports whether the failure is a cooperative cancellation
// sentinel, which always propagates untouched.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func callSuccessHook(ctx context.Context, s *settings) error {
	if s.onSuccessCtx != nil {
		return s.onSuccessCtx(ctx)
	}
	if s.onSuccess != nil {
		s.onSuccess()
	}
	return nil
}

func callExceptHook(ctx context.Context, s *settings, params ExceptParams) error {
	if s.onExceptCtx != nil {
		return s.onExceptCtx(ctx, params)
	}
	if s.onExcept != nil {
		s.onExcept(params)
	}
	return nil
}

// callFinallyHook runs the finalizer. The scope's own result wins over a
// finalizer error; the finalizer error surfaces only from otherwise
// successful scopes.
func callFinallyHook(ctx context.Context, s *settings) error {
	if s.onFinallyCtx != nil {
		return s.onFinallyCtx(ctx)
	}
	if s.onFinally != nil {
		s.onFinally()
	}
	return nil
}
