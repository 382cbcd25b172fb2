package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		wantMsg   string
		predicate func(error) bool
	}{
		{
			name:      "validation",
			err:       NewValidationError("title cannot be empty"),
			wantType:  ErrorTypeValidation,
			wantMsg:   "VALIDATION: title cannot be empty",
			predicate: IsValidation,
		},
		{
			name:      "not found",
			err:       NewNotFoundError("node abc"),
			wantType:  ErrorTypeNotFound,
			wantMsg:   "NOT_FOUND: node abc not found",
			predicate: IsNotFound,
		},
		{
			name:      "conflict",
			err:       NewConflictError("cell occupied"),
			wantType:  ErrorTypeConflict,
			wantMsg:   "CONFLICT: cell occupied",
			predicate: IsConflict,
		},
		{
			name:      "no space",
			err:       NewNoSpaceError("hex grid exhausted"),
			wantType:  ErrorTypeNoSpace,
			wantMsg:   "NO_SPACE: hex grid exhausted",
			predicate: IsNoSpace,
		},
		{
			name:      "internal",
			err:       NewInternalError("store failed", errors.New("boom")),
			wantType:  ErrorTypeInternal,
			wantMsg:   "INTERNAL: store failed: boom",
			predicate: IsInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *AppError
			require.ErrorAs(t, tt.err, &appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.True(t, tt.predicate(tt.err))
		})
	}
}

func TestPredicatesRejectOtherTypes(t *testing.T) {
	err := NewValidationError("nope")
	assert.False(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.False(t, IsNoSpace(err))
	assert.False(t, IsInternal(err))

	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		wrapped := Wrap(errors.New("disk full"), "saving snapshot")
		assert.True(t, IsInternal(wrapped))
		assert.Equal(t, "INTERNAL: saving snapshot: disk full", wrapped.Error())
	})

	t.Run("app error keeps its type", func(t *testing.T) {
		wrapped := Wrap(NewNotFoundError("tile xyz"), "moving tile")
		assert.True(t, IsNotFound(wrapped))
		assert.Contains(t, wrapped.Error(), "moving tile: tile xyz not found")
	})

	t.Run("wrapped cause survives errors.Is", func(t *testing.T) {
		cause := errors.New("root cause")
		wrapped := Wrap(fmt.Errorf("midway: %w", cause), "outer")
		assert.ErrorIs(t, wrapped, cause)
	})
}
