package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. On a successful Commit it hands the
// events recorded by every tracked aggregate to the EventPublisher, synchronously and
// in the order the aggregates were written.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
	// MemberRepository returns a repository bound to the current transaction.
	MemberRepository() MemberRepository
}
