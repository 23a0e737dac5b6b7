package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/member"
)

// MemberRepository stores directory entries for authenticated principals.
type MemberRepository interface {
	// Save inserts the member or refreshes name, email and role of an existing one.
	Save(ctx context.Context, aggregate *member.Member) error

	// Get returns errs.ErrObjectNotFound if the member is unknown.
	Get(ctx context.Context, id kernel.UUID) (*member.Member, error)
}
