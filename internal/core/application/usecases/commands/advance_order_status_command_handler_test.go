package commands_test

import (
	"testing"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceOrderStatusCommand(t *testing.T) {
	cmd, err := commands.NewAdvanceOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.PickedUp)
	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, cmd.Target())

	_, err = commands.NewAdvanceOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func mockAdvanceUoW(t *testing.T, stored *order.Order) (*MockOrderRepository, *MockOrderUoW, *MockOrderUoWFactory) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return repo, uow, factory
}

func TestAdvanceOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	accepted := claimedOrder(t, agentID, order.Accepted)
	repo, uow, factory := mockAdvanceUoW(t, accepted)
	repo.On("Update", ctx, accepted).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewAdvanceOrderStatusCommand(accepted.ID(), agentID, order.PickedUp)
	require.NoError(t, err)
	advanced, err := commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, advanced.Status())
	assert.Equal(t, 3, advanced.Version())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderStatusCommandHandler_Handle_Rejections(t *testing.T) {
	owner := kernel.NewUUID()

	testCases := []struct {
		name    string
		stored  func(t *testing.T) *order.Order
		agentID kernel.UUID
		target  order.Status
		wantErr error
	}{
		{
			name:    "unassigned order",
			stored:  storedOrder,
			agentID: owner,
			target:  order.Accepted,
			wantErr: order.ErrIllegalTransition,
		},
		{
			name:    "foreign agent",
			stored:  func(t *testing.T) *order.Order { return claimedOrder(t, owner, order.Accepted) },
			agentID: kernel.NewUUID(),
			target:  order.PickedUp,
			wantErr: order.ErrForbidden,
		},
		{
			name:    "skipping a step",
			stored:  func(t *testing.T) *order.Order { return claimedOrder(t, owner, order.Accepted) },
			agentID: owner,
			target:  order.OnTheWay,
			wantErr: order.ErrIllegalTransition,
		},
		{
			name:    "moving backwards",
			stored:  func(t *testing.T) *order.Order { return claimedOrder(t, owner, order.OnTheWay) },
			agentID: owner,
			target:  order.PickedUp,
			wantErr: order.ErrIllegalTransition,
		},
		{
			name:    "after delivery",
			stored:  func(t *testing.T) *order.Order { return claimedOrder(t, owner, order.Delivered) },
			agentID: owner,
			target:  order.Delivered,
			wantErr: order.ErrIllegalTransition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stored := tc.stored(t)
			repo, uow, factory := mockAdvanceUoW(t, stored)

			cmd, err := commands.NewAdvanceOrderStatusCommand(stored.ID(), tc.agentID, tc.target)
			require.NoError(t, err)
			_, err = commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(t.Context(), cmd)

			require.ErrorIs(t, err, tc.wantErr)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestAdvanceOrderStatusCommandHandler_Handle_LostWrite_ReturnsIllegalTransition(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	accepted := claimedOrder(t, agentID, order.Accepted)
	repo, uow, factory := mockAdvanceUoW(t, accepted)
	repo.On("Update", ctx, accepted).Return(errs.NewVersionIsInvalidError("order")).Once()

	cmd, err := commands.NewAdvanceOrderStatusCommand(accepted.ID(), agentID, order.PickedUp)
	require.NoError(t, err)
	_, err = commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrIllegalTransition)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAdvanceOrderStatusCommandHandler_FullLifecycle(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	store := newMemoryStore(storedOrder(t))
	var orderID kernel.UUID
	for id := range store.orders {
		orderID = id
	}

	claimCmd, err := commands.NewClaimOrderCommand(orderID, agentID)
	require.NoError(t, err)
	_, err = commands.NewClaimOrderCommandHandler(store).Handle(ctx, claimCmd)
	require.NoError(t, err)

	handler := commands.NewAdvanceOrderStatusCommandHandler(store)
	for _, target := range []order.Status{order.PickedUp, order.OnTheWay, order.Delivered} {
		cmd, cmdErr := commands.NewAdvanceOrderStatusCommand(orderID, agentID, target)
		require.NoError(t, cmdErr)
		advanced, handleErr := handler.Handle(ctx, cmd)
		require.NoError(t, handleErr)
		assert.Equal(t, target, advanced.Status())
	}

	status, _, version := store.snapshot(orderID)
	assert.Equal(t, order.Delivered, status)
	assert.Equal(t, 5, version)
}
