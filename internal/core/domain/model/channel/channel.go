// Package channel names the broadcast groups that receive order lifecycle events:
// "customer:<id>" per customer, "delivery-pool" for all agents, and "admin".
package channel

import (
	"fmt"
	"strings"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
)

// Channel is a validated channel name.
type Channel string

const (
	DeliveryPool Channel = "delivery-pool"
	Admin        Channel = "admin"

	customerPrefix = "customer:"
)

// Customer returns the private channel of one customer.
func Customer(customerID kernel.UUID) Channel {
	return Channel(customerPrefix + customerID.String())
}

// Parse accepts "delivery-pool", "admin" and "customer:<uuid>".
func Parse(s string) (Channel, error) {
	switch Channel(s) {
	case DeliveryPool, Admin:
		return Channel(s), nil
	}

	if rest, ok := strings.CutPrefix(s, customerPrefix); ok {
		id, err := kernel.UUIDFromString(rest)
		if err != nil {
			return "", errs.NewValueIsInvalidErrorWithCause("channel", err)
		}
		return Customer(id), nil
	}

	return "", errs.NewValueIsInvalidErrorWithCause("channel", fmt.Errorf("%q is not a known channel", s))
}

func (c Channel) String() string {
	return string(c)
}

// CustomerID returns the owner of a customer channel.
func (c Channel) CustomerID() (kernel.UUID, bool) {
	rest, ok := strings.CutPrefix(string(c), customerPrefix)
	if !ok {
		return kernel.UUID{}, false
	}
	id, err := kernel.UUIDFromString(rest)
	if err != nil {
		return kernel.UUID{}, false
	}
	return id, true
}
