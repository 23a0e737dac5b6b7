package member

import (
	"fmt"

	"deliveryhub/internal/pkg/errs"
)

// Role is the principal's role. It decides which operations a principal may call and
// which event channels its sessions may join.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleDelivery
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCustomer: "customer",
	RoleDelivery: "delivery",
	RoleAdmin:    "admin",
}

func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}
