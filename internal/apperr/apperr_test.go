package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindNotFound, KindOf(NotFound("Tweet")))
	require.Equal(t, KindNotFound, KindOf(fmt.Errorf("delete: %w", NotFound("Tweet"))))
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
	require.True(t, Is(Unauthenticated(), KindUnauthenticated))
	require.False(t, Is(nil, KindInternal))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)
	err := Wrapf(cause, "insert user %d", 7)

	require.Equal(t, "Internal server error", err.Error())
	require.ErrorIs(t, err, cause)
	require.Equal(t, map[string]interface{}{"code": "INTERNAL"}, err.Extensions())
}

func TestWrapfKeepsKind(t *testing.T) {
	notFound := NotFound("Tweet")

	err := Wrapf(fmt.Errorf("reload: %w", notFound), "reload tweet %d", 7)
	require.Same(t, notFound, err)
	require.Equal(t, KindNotFound, err.Kind)
}

func TestValidationExtensions(t *testing.T) {
	err := Validation([]FieldError{{Field: "body", Message: "too short"}})

	ext := err.Extensions()
	require.Equal(t, "VALIDATION", ext["code"])
	require.Equal(t, []FieldError{{Field: "body", Message: "too short"}}, ext["fields"])
	require.Equal(t, "Tweet not found", NotFound("Tweet").Error())
}
