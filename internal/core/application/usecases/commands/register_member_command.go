package commands

import (
	"errors"

	"deliveryhub/internal/core/domain/model/member"
	"deliveryhub/internal/pkg/guard"
)

var ErrRegisterMemberCommandIsNotConstructed = errors.New(
	"RegisterMemberCommand must be created via NewRegisterMemberCommand constructor",
)

// RegisterMemberCommand records the display data of an authenticated principal so
// that order payloads can name customers and agents.
type RegisterMemberCommand struct { //nolint:recvcheck //using for validation
	member *member.Member

	guard guard.ConstructorGuard
}

// NewRegisterMemberCommand wraps a member that passed its own constructor checks.
func NewRegisterMemberCommand(m *member.Member) (RegisterMemberCommand, error) {
	if err := m.Validate(); err != nil {
		return RegisterMemberCommand{}, err
	}
	return RegisterMemberCommand{
		member: m,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterMemberCommand) Validate() error {
	return c.guard.Validate(ErrRegisterMemberCommandIsNotConstructed)
}

func (c RegisterMemberCommand) Member() *member.Member {
	return c.member
}
