package cmd

import (
	"context"
	"log/slog"

	httpin "deliveryhub/internal/adapters/in/http"
	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/ports"
)

type MemberCache interface {
	ForgetMember(ctx context.Context, id kernel.UUID) error
}

// MemberSync records principals in the member directory. Principals whose name and
// email already match the directory are not written again; after a write the cached
// entry is dropped so order payloads pick up the new details.
type MemberSync struct {
	registrar httpin.MemberRegistrar
	directory ports.Directory
	cache     MemberCache
	logger    *slog.Logger
}

var _ httpin.MemberRegistrar = (*MemberSync)(nil)

// NewMemberSync accepts a nil cache.
func NewMemberSync(
	registrar httpin.MemberRegistrar,
	directory ports.Directory,
	cache MemberCache,
	logger *slog.Logger,
) *MemberSync {
	return &MemberSync{
		registrar: registrar,
		directory: directory,
		cache:     cache,
		logger:    logger.With("component", "member_sync"),
	}
}

func (s *MemberSync) Handle(ctx context.Context, cmd commands.RegisterMemberCommand) error {
	m := cmd.Member()
	if known, err := s.directory.Member(ctx, m.ID()); err == nil && known.Name == m.Name() && known.Email == m.Email() {
		return nil
	}

	if err := s.registrar.Handle(ctx, cmd); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.ForgetMember(ctx, m.ID()); err != nil {
			s.logger.WarnContext(ctx, "failed to drop cached member", "member_id", m.ID().String(), "error", err)
		}
	}
	return nil
}
