package commands_test

import (
	"context"
	"fmt"
	"sync"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"
)

// memoryStore is an order store with the same conditional-write semantics as the
// Postgres repository, used to exercise handlers under real concurrency.
type memoryStore struct {
	mu     sync.Mutex
	orders map[kernel.UUID]*order.Order
}

func newMemoryStore(orders ...*order.Order) *memoryStore {
	s := &memoryStore{orders: make(map[kernel.UUID]*order.Order)}
	for _, o := range orders {
		s.orders[o.ID()] = o
	}
	return s
}

func (s *memoryStore) Create() commands.OrderUoW {
	return memoryUoW{store: s}
}

func (s *memoryStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID()]; ok {
		return errs.NewValueIsInvalidError("orderId")
	}
	s.orders[o.ID()] = o
	return nil
}

func (s *memoryStore) Claim(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID()]
	if !ok || stored.Status() != order.Pending || stored.AssignedTo() != nil ||
		stored.Version() != o.OriginalVersion() {
		return errs.NewVersionIsInvalidError("order")
	}
	s.orders[o.ID()] = o
	return nil
}

func (s *memoryStore) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID()]
	if !ok || stored.Version() != o.OriginalVersion() {
		return errs.NewVersionIsInvalidError("order")
	}
	s.orders[o.ID()] = o
	return nil
}

func (s *memoryStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(stored.ID(), stored.CustomerID(), stored.Items(), stored.Total(),
		stored.Status(), stored.AssignedTo(), stored.CreatedAt(), stored.Version())
}

func (s *memoryStore) snapshot(id kernel.UUID) (order.Status, *kernel.UUID, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.orders[id]
	return stored.Status(), stored.AssignedTo(), stored.Version()
}

type memoryUoW struct {
	store *memoryStore
}

func (u memoryUoW) Begin(context.Context) error  { return nil }
func (u memoryUoW) Commit(context.Context) error { return nil }

func (u memoryUoW) Rollback(context.Context) error {
	return fmt.Errorf("nothing to roll back")
}

func (u memoryUoW) OrderRepository() ports.OrderRepository {
	return u.store
}
