package guard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequireCondition_Passes(t *testing.T) {
	var successCalls int

	err := RequireCondition(true, "never used",
		WithOnSuccess(func() { successCalls++ }))

	require.NoError(t, err)
	require.Equal(t, 1, successCalls)
}

func TestRequireCondition_Fails(t *testing.T) {
	err := RequireCondition(false, "condition was not met")

	require.Error(t, err)
	require.Equal(t, CodeAssertionFailed, GetCode(err))
	require.ErrorIs(t, err, ErrGeneric)
	require.Contains(t, err.Error(), "condition was not met")
}

func TestRequireCondition_RaiseKindAndExtras(t *testing.T) {
	kind := Define("input_error")

	err := RequireCondition(false, "bad input",
		WithRaise(kind),
		WithArgs("field"),
		WithField("value", 42),
	)

	require.ErrorIs(t, err, kind)

	var rich *Error
	require.ErrorAs(t, err, &rich)
	require.Equal(t, []any{"field"}, rich.Args())
	require.Equal(t, map[string]any{"value": 42}, rich.Fields())
}

func TestRequireCondition_OnFailureHook(t *testing.T) {
	var observed error

	err := RequireCondition(false, "nope",
		WithOnFailure(func(built error) { observed = built }))

	require.Error(t, err)
	require.Same(t, err, observed)
}

func TestRequireCondition_SuppressRejected(t *testing.T) {
	err := RequireCondition(false, "nope", WithSuppress())
	require.Equal(t, CodeBadConfiguration, GetCode(err))
}

func TestEnforceDefined_Identity(t *testing.T) {
	value := "v"

	got, err := EnforceDefined(value, "msg")

	require.NoError(t, err)
	require.Equal(t, "v", got)
}

func TestEnforceDefined_PointerIdentity(t *testing.T) {
	type thing struct{ n int }
	value := &thing{n: 7}

	got, err := EnforceDefined(value, "msg")

	require.NoError(t, err)
	require.Same(t, value, got)
}

func TestEnforceDefined_NilPointer(t *testing.T) {
	var value *int

	got, err := EnforceDefined(value, "pointer missing")

	require.Nil(t, got)
	require.Error(t, err)
	require.Equal(t, CodeAssertionFailed, GetCode(err))
	require.Contains(t, err.Error(), "pointer missing")
}

func TestEnforceDefined_NilInterface(t *testing.T) {
	var value error

	_, err := EnforceDefined(value, "")

	require.Error(t, err)
	require.Contains(t, err.Error(), DefaultDefinedMessage)
}

func TestEnforceDefined_NilableKinds(t *testing.T) {
	t.Run("nil map fails", func(t *testing.T) {
		var m map[string]int
		_, err := EnforceDefined(m, "map missing")
		require.Error(t, err)
	})

	t.Run("empty map passes", func(t *testing.T) {
		m := map[string]int{}
		got, err := EnforceDefined(m, "map missing")
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("nil slice fails", func(t *testing.T) {
		var s []string
		_, err := EnforceDefined(s, "slice missing")
		require.Error(t, err)
	})

	t.Run("nil func fails", func(t *testing.T) {
		var fn func()
		_, err := EnforceDefined(fn, "func missing")
		require.Error(t, err)
	})

	t.Run("zero int passes", func(t *testing.T) {
		got, err := EnforceDefined(0, "never used")
		require.NoError(t, err)
		require.Equal(t, 0, got)
	})

	t.Run("empty string passes", func(t *testing.T) {
		got, err := EnforceDefined("", "never used")
		require.NoError(t, err)
		require.Equal(t, "", got)
	})
}

func TestEnforceDefined_RaiseKind(t *testing.T) {
	kind := Define("lookup_error")
	var value *string

	_, err := EnforceDefined(value, "not found", WithRaise(kind))

	require.ErrorIs(t, err, kind)
}
