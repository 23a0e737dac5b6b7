// Package commands holds the write side: every handler validates its command, runs one
// unit of work and returns the committed aggregate. Committed events reach the fanout
// coordinator through the unit of work, never through the handlers.
package commands

import (
	"context"

	"deliveryhub/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	MemberRepoFactory interface {
		MemberRepository() ports.MemberRepository
	}

	// OrderUoW is the transaction used by the lifecycle commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// MemberUoW is the transaction used to maintain the member directory.
	MemberUoW interface {
		TxManager
		MemberRepoFactory
	}

	MemberUoWFactory interface {
		Create() MemberUoW
	}
)
