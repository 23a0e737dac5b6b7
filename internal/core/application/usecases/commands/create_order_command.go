package commands

import (
	"errors"
	"slices"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order on behalf of a customer. The total is taken as
// submitted and is not recomputed from the catalog.
//
// Example:
//
//	item, err := order.NewItem(productID, 2)
//	if err != nil {
//	    return err
//	}
//	total, err := order.ParseTotal("23.00")
//	if err != nil {
//	    return err
//	}
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, []order.Item{item}, total)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	created, err := NewCreateOrderCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	items      []order.Item
	total      kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order and customer identifiers, requires at
// least one item and a constructed total. All violations are returned joined.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	items []order.Item,
	total kernel.Money,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setTotal(total),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate reports ErrCreateOrderCommandIsNotConstructed for a zero-value command.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns a copy of the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}
	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return order.ErrTotalIsInvalid
	}
	c.total = total
	return nil
}
