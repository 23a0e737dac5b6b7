// Package fanout turns committed order events into per-channel messages.
//
// The coordinator runs on the goroutine that committed the change, so messages for
// one channel leave in commit order. It renders each event from the snapshot the event
// carries and never reads the order store. Delivery is best-effort: failures are logged
// and the committed write stands.
package fanout

import (
	"context"
	"encoding/json"
	"log/slog"

	"deliveryhub/internal/core/application/views"
	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
)

// Envelope is the message every subscriber receives.
type Envelope struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel"`
	Order   views.OrderView `json:"order"`
}

// Message is an encoded envelope plus the ordering metadata a bus needs without
// decoding it. Version increases by one per committed change of the order.
type Message struct {
	OrderID string
	Version int
	Payload []byte
}

// Bus delivers a message to the subscribers of a channel. Implementations must not
// deliver a message for an order after one with a higher version on the same channel.
type Bus interface {
	Deliver(ctx context.Context, ch channel.Channel, msg Message) error
}

// Coordinator implements ports.EventPublisher.
type Coordinator struct {
	router  services.ChannelRouter
	builder views.Builder
	bus     Bus
	logger  *slog.Logger
}

var _ ports.EventPublisher = (*Coordinator)(nil)

func NewCoordinator(directory ports.Directory, bus Bus, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		router:  services.NewChannelRouter(),
		builder: views.NewBuilder(directory),
		bus:     bus,
		logger:  logger.With("component", "fanout"),
	}
}

// Publish delivers events in the given order. It ignores cancellation of ctx: the
// events describe writes that are already durable.
func (c *Coordinator) Publish(ctx context.Context, events []order.Event) {
	ctx = context.WithoutCancel(ctx)

	for _, e := range events {
		snapshot := e.Order()
		if snapshot == nil {
			continue
		}

		view, err := c.builder.Build(ctx, snapshot)
		if err != nil {
			c.logger.Warn("directory lookup failed, publishing identifiers only",
				"order_id", snapshot.ID().String(), "error", err)
			view = views.FromOrder(snapshot)
		}

		for _, ch := range c.router.Route(e) {
			c.deliver(ctx, Envelope{Event: e.Kind().String(), Channel: ch.String(), Order: view}, ch)
		}
	}
}

func (c *Coordinator) deliver(ctx context.Context, envelope Envelope, ch channel.Channel) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		c.logger.Error("failed to encode envelope", "event", envelope.Event, "error", err)
		return
	}

	msg := Message{
		OrderID: envelope.Order.ID,
		Version: envelope.Order.Version,
		Payload: payload,
	}
	if err = c.bus.Deliver(ctx, ch, msg); err != nil {
		c.logger.Warn("delivery failed",
			"event", envelope.Event,
			"channel", envelope.Channel,
			"order_id", envelope.Order.ID,
			"error", err)
		return
	}

	c.logger.Debug("event delivered",
		"event", envelope.Event,
		"channel", envelope.Channel,
		"order_id", envelope.Order.ID,
		"version", envelope.Order.Version)
}
