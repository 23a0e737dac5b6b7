package order_test

import (
	"testing"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTotal(t *testing.T) {
	t.Run("accepts a cent amount", func(t *testing.T) {
		total, err := order.ParseTotal("23.50")

		require.NoError(t, err)
		assert.Equal(t, "23.50", total.String())
	})

	t.Run("negative total is an invalid total", func(t *testing.T) {
		_, err := order.ParseTotal("-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrTotalIsInvalid)
		assert.ErrorIs(t, err, kernel.ErrMoneyIsNegative)
	})

	t.Run("fraction of a cent is an invalid total", func(t *testing.T) {
		_, err := order.ParseTotal("25.005")

		assert.ErrorIs(t, err, order.ErrTotalIsInvalid)
	})

	t.Run("oversized total keeps its range error", func(t *testing.T) {
		_, err := order.ParseTotal("99999999999999")

		assert.ErrorIs(t, err, order.ErrTotalIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := order.ParseTotal("a lot")

		assert.ErrorIs(t, err, order.ErrTotalIsInvalid)
	})
}
