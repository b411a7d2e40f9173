package guard

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefine(t *testing.T) {
	kind := Define("storage_error")

	require.Equal(t, "storage_error", kind.Name())
	require.Equal(t, "storage_error", kind.Error())
}

func TestKind_HierarchyMatching(t *testing.T) {
	parent := Define("app_error")
	child := Define("db_error", KindParent(parent))
	sibling := Define("net_error", KindParent(parent))

	err := child.New("query failed")

	require.ErrorIs(t, err, child)
	require.ErrorIs(t, err, parent)
	require.NotErrorIs(t, err, sibling)

	// Kind tokens also match their ancestors directly.
	require.ErrorIs(t, child, parent)
	require.NotErrorIs(t, parent, child)
}

func TestKind_New(t *testing.T) {
	kind := Define("storage_error")

	err := kind.New("disk full")

	require.ErrorIs(t, err, kind)
	require.Equal(t, kind, GetKind(err))
	require.Contains(t, err.Error(), "disk full")
}

func TestKind_Newf(t *testing.T) {
	kind := Define("storage_error")

	err := kind.Newf("disk %s is full at %d%%", "sda1", 100)

	require.Contains(t, err.Error(), "disk sda1 is full at 100%")
}

func TestKind_Wrap(t *testing.T) {
	kind := Define("storage_error")
	cause := stderrors.New("io timeout")

	err := kind.Wrap(cause, "flush failed")

	require.ErrorIs(t, err, kind)
	require.ErrorIs(t, err, cause)
	require.Equal(t, CodeWrappedFailure, GetCode(err))
}

func TestKind_WrapNil(t *testing.T) {
	kind := Define("storage_error")
	require.Nil(t, kind.Wrap(nil, "never used"))
}

func TestKind_RequireCondition(t *testing.T) {
	kind := Define("input_error")

	require.NoError(t, kind.RequireCondition(true, "never used"))

	err := kind.RequireCondition(false, "bad input")
	require.ErrorIs(t, err, kind)
	require.Equal(t, CodeAssertionFailed, GetCode(err))
}

func TestKind_EnforceDefined(t *testing.T) {
	kind := Define("lookup_error")

	got, err := kind.EnforceDefined("v", "never used")
	require.NoError(t, err)
	require.Equal(t, "v", got)

	var missing *int
	got, err = kind.EnforceDefined(missing, "not found")
	require.Nil(t, got)
	require.ErrorIs(t, err, kind)
}

func TestKind_CheckExpressions(t *testing.T) {
	kind := Define("validation_error")

	err := kind.CheckExpressions("invalid request", func(c *Checker) {
		c.Check(true)
		c.Check(false, "name must be set")
	})

	require.ErrorIs(t, err, kind)
	require.Contains(t, err.Error(), "Checked expressions failed: invalid request")
	require.Contains(t, err.Error(), "2: name must be set")
}

func TestKind_HandleErrors(t *testing.T) {
	kind := Define("sync_error")

	err := kind.HandleErrors("sync failed", func() error {
		return stderrors.New("boom")
	})

	require.ErrorIs(t, err, kind)
	require.Contains(t, err.Error(), "sync failed")
	require.Contains(t, err.Error(), "boom")
}

func TestKind_HandleErrorsSuppress(t *testing.T) {
	kind := Define("sync_error")
	var exceptCalls int

	err := kind.HandleErrors("swallowed", func() error {
		return stderrors.New("boom")
	},
		WithSuppress(),
		WithOnExcept(func(ExceptParams) { exceptCalls++ }),
	)

	require.NoError(t, err)
	require.Equal(t, 1, exceptCalls)
}

func TestKind_BoundRejectsRaiseOverride(t *testing.T) {
	kind := Define("input_error")
	other := Define("other_error")

	tests := []struct {
		name string
		call func() error
	}{
		{"RequireCondition", func() error {
			return kind.RequireCondition(false, "msg", WithRaise(other))
		}},
		{"EnforceDefined", func() error {
			_, err := kind.EnforceDefined(nil, "msg", WithRaise(other))
			return err
		}},
		{"CheckExpressions", func() error {
			return kind.CheckExpressions("msg", func(c *Checker) {}, WithRaise(other))
		}},
		{"HandleErrors", func() error {
			return kind.HandleErrors("msg", func() error { return nil }, WithRaise(other))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Equal(t, CodeBadConfiguration, GetCode(err))
			require.Contains(t, err.Error(), "may not be overridden")
		})
	}
}

func TestKind_BoundRejectsBuilderOverride(t *testing.T) {
	kind := Define("input_error")

	err := kind.RequireCondition(false, "msg",
		WithBuilder(func(BuildParams) error { return nil }))

	require.Equal(t, CodeBadConfiguration, GetCode(err))
	require.Contains(t, err.Error(), "KindBuilder")
}

// statusError is an error type whose constructor reserves the leading slot
// for a status code, so the message must be routed into the Detail field.
type statusError struct {
	Status int
	Detail string
	Base   string
	Extra  map[string]any
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Detail)
}

func newStatusKind(status int) *Kind {
	return Define("status_error", KindBuilder(func(p BuildParams) error {
		se := &statusError{
			Status: status,
			Detail: p.Message,
			Base:   p.BaseMessage,
			Extra:  p.Fields,
		}
		if len(p.Args) > 0 {
			if s, ok := p.Args[0].(int); ok {
				se.Status = s
			}
		}
		return se
	}))
}

func TestKind_BuilderOverrideHonoredByAllBoundOps(t *testing.T) {
	kind := newStatusKind(500)

	t.Run("RequireCondition", func(t *testing.T) {
		err := kind.RequireCondition(false, "bad input", WithArgs(400))
		var se *statusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, 400, se.Status)
		require.Equal(t, "bad input", se.Detail)
	})

	t.Run("EnforceDefined", func(t *testing.T) {
		_, err := kind.EnforceDefined(nil, "missing")
		var se *statusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "missing", se.Detail)
	})

	t.Run("CheckExpressions", func(t *testing.T) {
		err := kind.CheckExpressions("invalid", func(c *Checker) {
			c.Check(false, "nope")
		})
		var se *statusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "invalid", se.Base)
		require.Contains(t, se.Detail, "1: nope")
	})

	t.Run("HandleErrors", func(t *testing.T) {
		err := kind.HandleErrors("wrapped", func() error {
			return stderrors.New("boom")
		}, WithField("attempt", 2))
		var se *statusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "wrapped -- *errors.errorString: boom", se.Detail)
		require.Equal(t, "wrapped", se.Base)
		require.Equal(t, map[string]any{"attempt": 2}, se.Extra)
	})
}

func TestErrGeneric_IsDefaultRaiseKind(t *testing.T) {
	err := RequireCondition(false, "msg")
	require.ErrorIs(t, err, ErrGeneric)
	require.Equal(t, ErrGeneric, GetKind(err))
}
