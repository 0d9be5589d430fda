package errors

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("test_field", "test message", "test_value")

	assert.Equal(t, "test_field", err.Field)
	assert.Equal(t, "test message", err.Message)
	assert.Equal(t, "test_value", err.Value)
	assert.Equal(t, "validation error on field 'test_field': test message", err.Error())

	withRule := NewValidationErrorWithRule("test_field", "test message", "required", "test_value")
	assert.Equal(t, "required", withRule.Rule)
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("field1", "message1", nil))
	assert.Equal(t, "validation failed: field1 message1", errs.Error())

	errs = append(errs, *NewValidationError("field2", "message2", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestToValidationErrors(t *testing.T) {
	type request struct {
		Email string `validate:"required,email"`
		Name  string `validate:"min=3"`
	}

	err := validator.New().Struct(request{Email: "nope", Name: "ab"})
	require.Error(t, err)

	t.Run("direct", func(t *testing.T) {
		errs := ToValidationErrors(err)
		require.Len(t, errs, 2)
		assert.Equal(t, "Email", errs[0].Field)
		assert.Equal(t, "must be a valid email address", errs[0].Message)
		assert.Equal(t, "email", errs[0].Rule)
		assert.Equal(t, "must be at least 3", errs[1].Message)
	})

	t.Run("wrapped", func(t *testing.T) {
		assert.Len(t, ToValidationErrors(fmt.Errorf("bind: %w", err)), 2)
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Nil(t, ToValidationErrors(fmt.Errorf("boom")))
	})
}
