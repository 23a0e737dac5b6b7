package commands

import (
	"context"
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"
)

// ClaimOrderCommandHandler runs the claim protocol. The winner is decided by the
// store's conditional update, not by any lock held here, so concurrent requests on
// one or many instances are safe. A lost race is reported as order.ErrAlreadyAssigned
// and never retried.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory)
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAlreadyAssigned):
//	    log.Println("another agent was faster")
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("no such order")
//	case err != nil:
//	    log.Printf("claim failed: %v", err)
//	default:
//	    log.Printf("order %s is now %s", claimed.ID(), claimed.Status())
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewClaimOrderCommandHandler creates a handler that claims through the order
// repository of each unit of work.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order, applies the claim to the aggregate and writes it back only if
// the stored version is still the one that was read. A conditional write that matches
// no row is reported as order.ErrAlreadyAssigned.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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
	claimed, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = claimed.Claim(cmd.AgentID()); err != nil {
		return nil, err
	}

	if err = repo.Claim(ctx, claimed); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, fmt.Errorf("%w: %s", order.ErrAlreadyAssigned, cmd.OrderID())
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
