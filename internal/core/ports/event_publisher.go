package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/order"
)

// EventPublisher receives the events of a committed unit of work, in commit order.
// Delivery is best-effort: implementations log failures instead of returning them,
// because the transition they describe is already durable.
type EventPublisher interface {
	Publish(ctx context.Context, events []order.Event)
}
