// Package guard provides scoped error interception, batch condition
// checking, and derivable error kinds.
//
// This package standardizes how errors are captured, enriched with
// contextual messages, and returned. It maintains full compatibility with
// the standard library errors package (errors.Is, errors.As, errors.Unwrap).
//
// # Features
//
//   - Scoped interception that repackages failures with a contextual message
//   - Batch expression checking that reports every failure, not just the first
//   - One-shot condition and non-nil assertions
//   - Declared error kinds with hierarchy matching and custom construction
//   - Explicit stack capture carried on the error, not in an ambient slot
//   - JSON serialization for API responses
//
// # Quick Start
//
// Assertions:
//
//	if err := guard.RequireCondition(len(name) > 0, "name must be set"); err != nil {
//	    return err
//	}
//
//	cfg, err := guard.EnforceDefined(cfg, "config was not loaded")
//
// Batch checks:
//
//	err := guard.CheckExpressions("request invalid", func(c *guard.Checker) {
//	    c.Check(req.Name != "", "name must be set")
//	    c.Check(req.Port > 0, "port %d must be positive", req.Port)
//	})
//
// Handled scopes:
//
//	err := guard.HandleErrors("failed to sync project", func() error {
//	    return syncProject(name)
//	})
//
// A failure inside the scope is returned as a new error whose message reads
// "failed to sync project -- <name>: <text>", with the original failure
// chained as its cause and the captured stack carried along.
//
// # Matching
//
// WithHandle limits which failures a scope intercepts and WithIgnore exempts
// failures from handling entirely; ignoring takes precedence. Both match
// through errors.Is, so sentinel errors, wrapped chains, and declared kinds
// all work:
//
//	err := guard.HandleErrors("query failed", run,
//	    guard.WithHandle(ErrStorage),
//	    guard.WithIgnore(ErrNotFound),
//	)
//
// Ignored and unhandled failures propagate completely untouched.
//
// # Kinds
//
// Define declares an error kind once at package scope. Kinds may form a
// hierarchy, and each kind exposes the package's operations as bound methods
// that raise the kind itself:
//
//	var ErrConfig = guard.Define("config_error")
//
//	if err := ErrConfig.RequireCondition(port > 0, "port must be positive"); err != nil {
//	    return err // errors.Is(err, ErrConfig) == true
//	}
//
// A kind's construction strategy can be replaced with KindBuilder, for error
// types whose constructors route the message into a differently-named field.
// The override is honored by every bound operation of the kind. Overriding
// the raise kind or the builder per call on a bound operation is a
// configuration error, reported immediately.
//
// # Hooks
//
// Scopes accept optional hooks: on-success, on-except (observes the original
// failure, the base message, the composed message, and the trace), and
// on-finally, which runs exactly once on every path, after all other hooks.
// HandleErrorsContext accepts suspending, context-aware hook forms whose
// returned errors propagate from the scope.
//
// # Suppression
//
// WithSuppress makes a handled scope swallow intercepted failures: no error
// escapes, but the on-except and on-finally hooks still observe the failure.
//
// # Concurrency
//
// Each scope owns its state exclusively; there is no cross-scope shared
// mutable state and no locking. Scopes nest transparently: composed messages
// are plain concatenations and are never reinterpreted as templates by an
// outer scope. In HandleErrorsContext, cancellation sentinels propagate
// untouched after the finalizer hook runs.
package guard
