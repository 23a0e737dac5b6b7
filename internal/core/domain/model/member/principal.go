package member

import (
	"deliveryhub/internal/core/domain/model/kernel"
)

// Principal is the authenticated caller as forwarded by the authenticator: an identity
// and a role, nothing more.
type Principal struct {
	ID   kernel.UUID
	Role Role
}

func NewPrincipal(id kernel.UUID, role Role) (Principal, error) {
	if err := id.Validate(); err != nil {
		return Principal{}, err
	}
	if err := role.Validate(); err != nil {
		return Principal{}, err
	}
	return Principal{ID: id, Role: role}, nil
}

func (p Principal) Is(role Role) bool {
	return p.Role == role
}
