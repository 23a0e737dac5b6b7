package services

import (
	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/core/domain/model/order"
)

// ChannelRouter maps an order event to the channels interested in it.
//
//	order.created        -> delivery-pool, admin
//	order.claimed        -> customer:<id>, admin, delivery-pool (retracts the order from the pool view)
//	order.status_updated -> customer:<id>, admin
type ChannelRouter struct{}

func NewChannelRouter() ChannelRouter {
	return ChannelRouter{}
}

// Route returns the target channels in a fixed order. Unknown kinds route nowhere.
func (ChannelRouter) Route(e order.Event) []channel.Channel {
	snapshot := e.Order()
	if snapshot == nil {
		return nil
	}

	switch e.Kind() {
	case order.EventCreated:
		return []channel.Channel{channel.DeliveryPool, channel.Admin}
	case order.EventClaimed:
		return []channel.Channel{channel.Customer(snapshot.CustomerID()), channel.Admin, channel.DeliveryPool}
	case order.EventStatusUpdated:
		return []channel.Channel{channel.Customer(snapshot.CustomerID()), channel.Admin}
	default:
		return nil
	}
}
