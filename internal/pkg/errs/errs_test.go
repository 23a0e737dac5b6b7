package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "42")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("memberId", "7", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: memberId, ID is: 7 (cause: connection reset)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("total", errors.New("negative"))

	assert.Equal(t, "value is invalid: total (cause: negative)", err.Error())
	assert.Equal(t, "value is invalid: total", errs.NewValueIsInvalidError("total").Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000)

		assert.Equal(t, "value is invalid: 0 is quantity, min value is 1, max value is 1000", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("keeps values on one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("name", "line\nbreak", 0, 10)

		assert.Contains(t, err.Error(), "line break")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("renders non-string values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("name", 501, 1, 500)

		assert.Equal(t, "value is invalid: 501 is name, min value is 1, max value is 500", err.Error())
		assert.NotContains(t, err.Error(), "%!")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("items")

	assert.Equal(t, "value is required: items", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestVersionIsInvalidError(t *testing.T) {
	cause := errors.New("expected 3")
	err := errs.NewVersionIsInvalidErrorWithCause("order", cause)

	assert.Equal(t, "version is invalid: order (cause: expected 3)", err.Error())
	assert.Equal(t, "version is invalid: order", errs.NewVersionIsInvalidError("order").Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("claim: %w", errs.NewObjectNotFoundError("order", "1"))
	require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)

	joined := errors.Join(errs.NewValueIsRequiredError("items"), errs.NewValueIsInvalidError("total"))
	require.ErrorIs(t, joined, errs.ErrValueIsRequired)
	require.ErrorIs(t, joined, errs.ErrValueIsInvalid)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "order", notFound.ParamName)
}
