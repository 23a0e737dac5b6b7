package commands_test

import (
	"testing"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	return []order.Item{item}
}

func validTotal(t *testing.T) kernel.Money {
	t.Helper()
	total, err := kernel.MoneyFromString("23.00")
	require.NoError(t, err)
	return total
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	items := validItems(t)

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, items, validTotal(t))

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Len(t, cmd.Items(), 1)
	assert.Equal(t, "23.00", cmd.Total().String())
}

func TestNewCreateOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil, validTotal(t))
	require.ErrorIs(t, err, order.ErrItemsAreRequired)
}

func TestNewCreateOrderCommand_MissingTotal(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), validItems(t), kernel.Money{})
	require.ErrorIs(t, err, order.ErrTotalIsInvalid)
}

func TestNewCreateOrderCommand_AggregatesErrors(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.UUID{}, nil, kernel.Money{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, order.ErrItemsAreRequired)
	require.ErrorIs(t, err, order.ErrTotalIsInvalid)
}

func TestCreateOrderCommand_ItemsAreCopied(t *testing.T) {
	items := validItems(t)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items, validTotal(t))
	require.NoError(t, err)

	items[0] = order.Item{}
	require.NoError(t, cmd.Items()[0].Validate())
}
