package queries

import (
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/member"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrGetMembersQueryIsNotConstructed = errors.New(
	"GetMembersQuery must be created via NewGetMembersQuery constructor",
)

// GetMembersQuery lists directory members with one role, newest first. Administrators
// use it to see customers and delivery partners.
type GetMembersQuery struct {
	role  member.Role
	guard guard.ConstructorGuard
}

func NewGetMembersQuery(role member.Role) (GetMembersQuery, error) {
	if role != member.RoleCustomer && role != member.RoleDelivery {
		return GetMembersQuery{}, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("members can be listed for customer or delivery, not %s", role))
	}
	return GetMembersQuery{role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMembersQuery) Validate() error {
	return q.guard.Validate(ErrGetMembersQueryIsNotConstructed)
}

func (q GetMembersQuery) Role() member.Role {
	return q.role
}
