package queries

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/guard"
)

var ErrGetAssignedOrdersQueryIsNotConstructed = errors.New(
	"GetAssignedOrdersQuery must be created via NewGetAssignedOrdersQuery constructor",
)

// GetAssignedOrdersQuery lists every order claimed by one agent, delivered ones included.
type GetAssignedOrdersQuery struct {
	agentID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetAssignedOrdersQuery(agentID kernel.UUID) (GetAssignedOrdersQuery, error) {
	if err := agentID.Validate(); err != nil {
		return GetAssignedOrdersQuery{}, err
	}
	return GetAssignedOrdersQuery{agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAssignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedOrdersQueryIsNotConstructed)
}

func (q GetAssignedOrdersQuery) AgentID() kernel.UUID {
	return q.agentID
}
