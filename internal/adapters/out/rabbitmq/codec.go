package rabbitmq

import (
	"fmt"

	"deliveryhub/internal/core/application/fanout"
	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	headerChannel = "x-channel"
	headerOrderID = "x-order-id"
	headerVersion = "x-order-version"

	contentType = "application/json"
)

func encode(ch channel.Channel, msg fanout.Message) amqp.Publishing {
	return amqp.Publishing{
		Headers: amqp.Table{
			headerChannel: ch.String(),
			headerOrderID: msg.OrderID,
			headerVersion: int64(msg.Version),
		},
		ContentType:  contentType,
		DeliveryMode: amqp.Transient,
		Body:         msg.Payload,
	}
}

func decode(d amqp.Delivery) (channel.Channel, fanout.Message, error) {
	name, ok := d.Headers[headerChannel].(string)
	if !ok {
		return "", fanout.Message{}, errs.NewValueIsRequiredError(headerChannel)
	}
	ch, err := channel.Parse(name)
	if err != nil {
		return "", fanout.Message{}, err
	}

	orderID, _ := d.Headers[headerOrderID].(string)

	var version int
	switch v := d.Headers[headerVersion].(type) {
	case int64:
		version = int(v)
	case int32:
		version = int(v)
	case int:
		version = v
	case nil:
	default:
		return "", fanout.Message{}, errs.NewValueIsInvalidErrorWithCause(headerVersion,
			fmt.Errorf("unexpected type %T", v))
	}

	return ch, fanout.Message{OrderID: orderID, Version: version, Payload: d.Body}, nil
}
