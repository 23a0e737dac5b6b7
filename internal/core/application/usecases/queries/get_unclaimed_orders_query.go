package queries

import (
	"errors"

	"deliveryhub/internal/pkg/guard"
)

var ErrGetUnclaimedOrdersQueryIsNotConstructed = errors.New(
	"GetUnclaimedOrdersQuery must be created via NewGetUnclaimedOrdersQuery constructor",
)

// GetUnclaimedOrdersQuery lists the delivery pool: pending orders nobody has claimed.
type GetUnclaimedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnclaimedOrdersQuery() GetUnclaimedOrdersQuery {
	return GetUnclaimedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnclaimedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnclaimedOrdersQueryIsNotConstructed)
}
