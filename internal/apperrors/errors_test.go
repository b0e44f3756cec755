package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputErrorMatchesValidation(t *testing.T) {
	err := NewInputError("period", "start after end")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "invalid input for period: start after end", err.Error())
}

func TestInputErrorWrapsCause(t *testing.T) {
	err := &InputError{Field: "scheme", Reason: "no rule set named 'xyz'", Err: ErrUnknownRuleSet}
	wrapped := fmt.Errorf("compliance: %w", err)

	assert.True(t, errors.Is(wrapped, ErrUnknownRuleSet))
	assert.True(t, errors.Is(wrapped, ErrValidation))

	var inputErr *InputError
	assert.True(t, errors.As(wrapped, &inputErr))
	assert.Equal(t, "scheme", inputErr.Field)
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(500, "failed to load ledger snapshot", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "failed to load ledger snapshot: resource not found", err.Error())
}
