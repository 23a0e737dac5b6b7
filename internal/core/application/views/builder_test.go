package views_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"deliveryhub/internal/core/application/views"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) Member(ctx context.Context, id kernel.UUID) (ports.MemberRef, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.MemberRef), args.Error(1)
}

func (m *MockDirectory) Product(ctx context.Context, id kernel.UUID) (ports.ProductRef, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.ProductRef), args.Error(1)
}

func claimed(t *testing.T, productIDs ...kernel.UUID) (*order.Order, kernel.UUID) {
	t.Helper()
	items := make([]order.Item, 0, len(productIDs))
	for i, id := range productIDs {
		item, err := order.NewItem(id, i+1)
		require.NoError(t, err)
		items = append(items, item)
	}
	total, err := kernel.MoneyFromString("30")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items, total,
		time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	agentID := kernel.NewUUID()
	require.NoError(t, o.Claim(agentID))
	return o, agentID
}

func TestBuilder_Build_Denormalizes(t *testing.T) {
	ctx := context.Background()
	pizza, soup := kernel.NewUUID(), kernel.NewUUID()
	o, agentID := claimed(t, pizza, soup)

	directory := new(MockDirectory)
	directory.On("Member", ctx, o.CustomerID()).
		Return(ports.MemberRef{ID: o.CustomerID(), Name: "Cleo", Email: "cleo@example.com"}, nil)
	directory.On("Member", ctx, agentID).
		Return(ports.MemberRef{ID: agentID, Name: "Ravi"}, nil)
	directory.On("Product", ctx, pizza).Return(ports.ProductRef{ID: pizza, Name: "Pizza"}, nil)
	directory.On("Product", ctx, soup).Return(ports.ProductRef{}, errs.NewObjectNotFoundError("product", soup.String()))

	view, err := views.NewBuilder(directory).Build(ctx, o)

	require.NoError(t, err)
	assert.Equal(t, o.ID().String(), view.ID)
	assert.Equal(t, views.MemberView{ID: o.CustomerID().String(), Name: "Cleo", Email: "cleo@example.com"}, view.Customer)
	require.NotNil(t, view.AssignedTo)
	assert.Equal(t, "Ravi", view.AssignedTo.Name)
	assert.Equal(t, []views.ItemView{
		{ProductID: pizza.String(), ProductName: "Pizza", Quantity: 1},
		{ProductID: soup.String(), Quantity: 2},
	}, view.Items)
	assert.Equal(t, "30.00", view.Total)
	assert.Equal(t, "accepted", view.Status)
	assert.Equal(t, 2, view.Version)
	directory.AssertExpectations(t)
}

func TestBuilder_Build_UnknownMemberKeepsID(t *testing.T) {
	ctx := context.Background()
	o, agentID := claimed(t, kernel.NewUUID())

	directory := new(MockDirectory)
	directory.On("Member", ctx, mock.Anything).Return(ports.MemberRef{}, errs.NewObjectNotFoundError("member", "?"))
	directory.On("Product", ctx, mock.Anything).Return(ports.ProductRef{Name: "Tea"}, nil)

	view, err := views.NewBuilder(directory).Build(ctx, o)

	require.NoError(t, err)
	assert.Equal(t, views.MemberView{ID: o.CustomerID().String()}, view.Customer)
	assert.Equal(t, agentID.String(), view.AssignedTo.ID)
}

func TestBuilder_Build_DirectoryUnavailable(t *testing.T) {
	ctx := context.Background()
	o, _ := claimed(t, kernel.NewUUID())
	down := errors.New("connection refused")

	directory := new(MockDirectory)
	directory.On("Member", ctx, mock.Anything).Return(ports.MemberRef{}, down)

	_, err := views.NewBuilder(directory).Build(ctx, o)
	require.ErrorIs(t, err, down)
}

func TestFromOrder(t *testing.T) {
	productID := kernel.NewUUID()
	o, agentID := claimed(t, productID)

	view := views.FromOrder(o)

	assert.Equal(t, views.MemberView{ID: o.CustomerID().String()}, view.Customer)
	assert.Equal(t, &views.MemberView{ID: agentID.String()}, view.AssignedTo)
	assert.Equal(t, []views.ItemView{{ProductID: productID.String(), Quantity: 1}}, view.Items)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), view.CreatedAt)
}
