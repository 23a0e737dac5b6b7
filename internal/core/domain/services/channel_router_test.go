package services_test

import (
	"testing"
	"time"

	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lifecycleEvents(t *testing.T) (kernel.UUID, []order.Event) {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1)
	require.NoError(t, err)
	total, err := kernel.MoneyFromString("12.50")
	require.NoError(t, err)

	customerID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Item{item}, total, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Claim(agentID))
	require.NoError(t, o.Advance(agentID, order.PickedUp))

	return customerID, o.PullEvents()
}

func TestChannelRouter_Route(t *testing.T) {
	customerID, events := lifecycleEvents(t)
	require.Len(t, events, 3)
	router := services.NewChannelRouter()

	assert.Equal(t,
		[]channel.Channel{channel.DeliveryPool, channel.Admin},
		router.Route(events[0]))
	assert.Equal(t,
		[]channel.Channel{channel.Customer(customerID), channel.Admin, channel.DeliveryPool},
		router.Route(events[1]))
	assert.Equal(t,
		[]channel.Channel{channel.Customer(customerID), channel.Admin},
		router.Route(events[2]))
}

func TestChannelRouter_RouteIgnoresEmptyEvents(t *testing.T) {
	assert.Empty(t, services.NewChannelRouter().Route(order.Event{}))
}
