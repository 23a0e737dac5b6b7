package commands_test

import (
	"context"
	"testing"
	"time"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/member"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Claim(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMemberRepository struct{ mock.Mock }

func (m *MockMemberRepository) Save(ctx context.Context, aggregate *member.Member) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMemberRepository) Get(ctx context.Context, id kernel.UUID) (*member.Member, error) {
	args := m.Called(ctx, id)
	if found, ok := args.Get(0).(*member.Member); ok {
		return found, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMemberUoW struct{ mock.Mock }

func (m *MockMemberUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMemberUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMemberUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMemberUoW) MemberRepository() ports.MemberRepository {
	args := m.Called()
	return args.Get(0).(ports.MemberRepository)
}

type MockMemberUoWFactory struct{ mock.Mock }

func (m *MockMemberUoWFactory) Create() commands.MemberUoW {
	args := m.Called()
	return args.Get(0).(commands.MemberUoW)
}

// storedOrder returns an order as the repository would load it: pending, version 1.
func storedOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1)
	require.NoError(t, err)
	total, err := kernel.MoneyFromString("9.90")
	require.NoError(t, err)

	created, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, total, testTime)
	require.NoError(t, err)
	return restore(t, created)
}

// claimedOrder returns a stored order already accepted by agentID.
func claimedOrder(t *testing.T, agentID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	base := storedOrder(t)
	o, err := order.RestoreOrder(base.ID(), base.CustomerID(), base.Items(), base.Total(),
		status, &agentID, base.CreatedAt(), int(status))
	require.NoError(t, err)
	return o
}

func restore(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	restored, err := order.RestoreOrder(o.ID(), o.CustomerID(), o.Items(), o.Total(),
		o.Status(), o.AssignedTo(), o.CreatedAt(), o.Version())
	require.NoError(t, err)
	return restored
}
