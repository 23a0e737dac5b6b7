package commands

import (
	"context"
)

// RegisterMemberCommandHandler keeps the member registry current for authenticated
// principals. Registering the same member twice overwrites the stored display data.
//
// Example:
//
//	m, err := member.NewMember(principalID, "Ada", "ada@example.com", member.RoleCustomer)
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewRegisterMemberCommand(m)
//	if err != nil {
//	    return err
//	}
//	if err = NewRegisterMemberCommandHandler(uowFactory).Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("register member: %w", err)
//	}
type RegisterMemberCommandHandler struct {
	uowFactory MemberUoWFactory
}

func NewRegisterMemberCommandHandler(uowFactory MemberUoWFactory) RegisterMemberCommandHandler {
	return RegisterMemberCommandHandler{uowFactory: uowFactory}
}

// Handle upserts the member.
func (h RegisterMemberCommandHandler) Handle(ctx context.Context, cmd RegisterMemberCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.MemberRepository().Save(ctx, cmd.Member()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
