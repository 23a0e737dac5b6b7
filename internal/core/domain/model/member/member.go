package member

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

// maxNameLength bounds display names stored in the directory.
const maxNameLength = 120

var (
	ErrMemberIsNotConstructed = errors.New("Member must be created via NewMember constructor")
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
)

// Member is a directory entry for an authenticated principal.
type Member struct {
	id    kernel.UUID
	name  string
	email string
	role  Role
	guard guard.ConstructorGuard
}

// NewMember validates and builds a Member. email may be empty.
func NewMember(id kernel.UUID, name, email string, role Role) (*Member, error) {
	m := &Member{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setEmail(email),
		m.setRole(role),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Member) Validate() error {
	if m == nil {
		return ErrMemberIsNotConstructed
	}
	return m.guard.Validate(ErrMemberIsNotConstructed)
}

func (m *Member) ID() kernel.UUID {
	return m.id
}

func (m *Member) Name() string {
	return m.name
}

func (m *Member) Email() string {
	return m.email
}

func (m *Member) Role() Role {
	return m.role
}

func (m *Member) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Member) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength)
	}
	m.name = name
	return nil
}

func (m *Member) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an address", email))
	}
	m.email = email
	return nil
}

func (m *Member) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	m.role = role
	return nil
}
