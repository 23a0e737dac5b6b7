package commands

import (
	"context"
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler moves an order one step along its lifecycle. The write
// is conditional on the version that was read; if another write got there first, for
// example a duplicate submit by the same agent, the request fails with
// order.ErrIllegalTransition because the order is no longer where the request expected.
//
// Example:
//
//	advanced, err := NewAdvanceOrderStatusCommandHandler(uowFactory).Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrForbidden):
//	    log.Println("order belongs to another agent")
//	case errors.Is(err, order.ErrIllegalTransition):
//	    log.Println("status can only move one step forward")
//	case err != nil:
//	    log.Printf("advance failed: %v", err)
//	default:
//	    log.Printf("order %s is now %s", advanced.ID(), advanced.Status())
//	}
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderStatusCommandHandler creates a handler over the given unit of work factory.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle checks that the requesting agent holds the order and that the target is the
// next status, then writes the order conditionally on its version.
func (h AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	advanced, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = advanced.Advance(cmd.AgentID(), cmd.Target()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, advanced); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, fmt.Errorf("%w: order %s changed concurrently", order.ErrIllegalTransition, cmd.OrderID())
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return advanced, nil
}
