package services

import (
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/core/domain/model/member"
)

// ErrChannelIsForbidden is returned when a principal asks for a channel its role does not grant.
var ErrChannelIsForbidden = errors.New("channel is not available to this principal")

// SubscriptionPolicy decides channel membership by role: customers get their own
// channel, delivery agents the pool, administrators the admin channel.
type SubscriptionPolicy struct{}

func NewSubscriptionPolicy() SubscriptionPolicy {
	return SubscriptionPolicy{}
}

// DefaultChannel is the channel a session of p joins when it declares none.
func (SubscriptionPolicy) DefaultChannel(p member.Principal) (channel.Channel, error) {
	switch p.Role {
	case member.RoleCustomer:
		return channel.Customer(p.ID), nil
	case member.RoleDelivery:
		return channel.DeliveryPool, nil
	case member.RoleAdmin:
		return channel.Admin, nil
	default:
		return "", fmt.Errorf("%w: role %s", ErrChannelIsForbidden, p.Role)
	}
}

// CanJoin reports whether p may subscribe to ch.
func (s SubscriptionPolicy) CanJoin(p member.Principal, ch channel.Channel) error {
	allowed, err := s.DefaultChannel(p)
	if err != nil {
		return err
	}
	if ch != allowed {
		return fmt.Errorf("%w: %s may not join %s", ErrChannelIsForbidden, p.Role, ch)
	}
	return nil
}
