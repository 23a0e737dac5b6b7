// Package ports defines the contracts between the order core and its adapters:
// storage, the member/product directory and the event publisher.
package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
)

// OrderRepository is the order store. Writes after creation are conditional: they apply
// only if the stored record still matches the aggregate's OriginalVersion, and fail
// closed otherwise. Implementations never retry a failed condition.
type OrderRepository interface {
	// Add inserts a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Claim atomically sets status=accepted and the assignee, only if the stored order is
	// still pending, unassigned and at aggregate.OriginalVersion().
	// Returns errs.ErrVersionIsInvalid when the condition does not hold.
	Claim(ctx context.Context, aggregate *order.Order) error

	// Update writes status and version, only if the stored version equals
	// aggregate.OriginalVersion(). Returns errs.ErrVersionIsInvalid otherwise.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its items. Returns errs.ErrObjectNotFound if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
