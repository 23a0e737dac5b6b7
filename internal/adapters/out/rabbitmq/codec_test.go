package rabbitmq

import (
	"testing"

	"deliveryhub/internal/core/application/fanout"
	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_CarriesOrderingMetadata(t *testing.T) {
	customer := channel.Customer(kernel.NewUUID())
	msg := fanout.Message{OrderID: "o1", Version: 3, Payload: []byte(`{"event":"order.status_updated"}`)}

	publishing := encode(customer, msg)

	assert.Equal(t, customer.String(), publishing.Headers[headerChannel])
	assert.Equal(t, "o1", publishing.Headers[headerOrderID])
	assert.Equal(t, int64(3), publishing.Headers[headerVersion])
	assert.Equal(t, contentType, publishing.ContentType)
	assert.Equal(t, amqp.Transient, publishing.DeliveryMode)
	assert.NoError(t, publishing.Headers.Validate())
}

func TestDecode(t *testing.T) {
	body := []byte(`{}`)

	tests := []struct {
		name        string
		headers     amqp.Table
		wantChannel channel.Channel
		wantVersion int
		wantErr     error
	}{
		{
			name:        "int32 version as sent by the broker",
			headers:     amqp.Table{headerChannel: "admin", headerOrderID: "o1", headerVersion: int32(4)},
			wantChannel: channel.Admin,
			wantVersion: 4,
		},
		{
			name:        "int64 version",
			headers:     amqp.Table{headerChannel: "delivery-pool", headerOrderID: "o1", headerVersion: int64(2)},
			wantChannel: channel.DeliveryPool,
			wantVersion: 2,
		},
		{
			name:    "missing channel",
			headers: amqp.Table{headerOrderID: "o1", headerVersion: int64(2)},
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name:    "unknown channel",
			headers: amqp.Table{headerChannel: "kitchen", headerVersion: int64(2)},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name:    "version of the wrong type",
			headers: amqp.Table{headerChannel: "admin", headerVersion: "two"},
			wantErr: errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, msg, err := decode(amqp.Delivery{Headers: tt.headers, Body: body})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChannel, ch)
			assert.Equal(t, tt.wantVersion, msg.Version)
			assert.Equal(t, "o1", msg.OrderID)
			assert.Equal(t, body, msg.Payload)
		})
	}
}
