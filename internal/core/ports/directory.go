package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"
)

// MemberRef is the human-readable reference to a customer or agent carried in order payloads.
type MemberRef struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// ProductRef is the human-readable reference to a catalog product.
type ProductRef struct {
	ID   kernel.UUID
	Name string
}

// Directory resolves identifiers to display data for denormalized payloads.
// Both lookups return errs.ErrObjectNotFound for unknown identifiers.
type Directory interface {
	Member(ctx context.Context, id kernel.UUID) (MemberRef, error)
	Product(ctx context.Context, id kernel.UUID) (ProductRef, error)
}
