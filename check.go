package guard

import (
	"fmt"
	"strings"
)

// Checker accumulates the outcomes of a batch of expression checks. It is
// created by CheckExpressions, owned exclusively by one scope, and consumed
// at scope exit; the number of recorded problems never exceeds the number
// of Check calls.
type Checker struct {
	problems []string
	count    int
}

// Check evaluates one expression. The counter advances on every call
// regardless of outcome; a false expression records a numbered problem.
// The optional msgAndArgs follow the testify convention: a lone value is
// printed as-is, a leading format string is expanded with the remaining
// args. With no message, a generic "Nth expression failed" entry is used.
func (c *Checker) Check(expr bool, msgAndArgs ...any) {
	c.count++
	if expr {
		return
	}
	message := messageFromArgs(msgAndArgs)
	if message == "" {
		message = ordinalize(c.count) + " expression failed"
	}
	c.problems = append(c.problems, fmt.Sprintf("%d: %s", c.count, message))
}

// Count returns the number of expressions checked so far.
func (c *Checker) Count() int {
	return c.count
}

// Problems returns a copy of the recorded problem descriptions, in check order.
func (c *Checker) Problems() []string {
	if c.problems == nil {
		return nil
	}
	out := make([]string, len(c.problems))
	copy(out, c.problems)
	return out
}

func messageFromArgs(msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	default:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
		return fmt.Sprint(msgAndArgs...)
	}
}

// ordinalize renders n as an English ordinal: 1st, 2nd, 3rd, 4th, with
// 11-13 forced to "th". English-only; replace this helper to localize.
func ordinalize(n int) string {
	if v := n % 100; v >= 11 && v <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// CheckExpressions runs fn with a fresh Checker and collects every failed
// check instead of failing fast. If any check failed, a single error of the
// configured raise kind is built whose message lists every numbered
// problem under the base message. All checks made inside fn are evaluated
// eagerly; there is no short-circuiting.
//
// Example:
//
//	err := guard.CheckExpressions("request invalid", func(c *guard.Checker) {
//		c.Check(req.Name != "", "name must be set")
//		c.Check(req.Port > 0, "port %d must be positive", req.Port)
//		c.Check(req.Retries >= 0)
//	})
func CheckExpressions(baseMessage string, fn func(*Checker), opts ...Option) error {
	s, err := newSettings(opts)
	if err != nil {
		return err
	}
	return checkExpressions(s, baseMessage, fn)
}

func checkExpressions(s *settings, baseMessage string, fn func(*Checker)) error {
	if err := rejectSuppress(s); err != nil {
		return err
	}

	checker := &Checker{}
	fn(checker)

	if len(checker.problems) == 0 {
		if s.onSuccess != nil {
			s.onSuccess()
		}
		return nil
	}

	lines := append([]string{fmt.Sprintf("Checked expressions failed: %s", baseMessage)}, checker.problems...)
	built := s.build(BuildParams{
		Kind:        s.raiseKind,
		Code:        CodeBatchCheckFailed,
		Message:     strings.Join(lines, "\n  "),
		Args:        s.raiseArgs,
		Fields:      s.raiseFields,
		BaseMessage: baseMessage,
	})
	if s.onFailure != nil {
		s.onFailure(built)
	}
	return built
}
