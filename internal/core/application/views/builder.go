package views

import (
	"context"
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"
)

// Builder turns an order aggregate into an OrderView using the directory for display
// data. Identifiers the directory does not know are rendered without a name.
type Builder struct {
	directory ports.Directory
}

func NewBuilder(directory ports.Directory) Builder {
	return Builder{directory: directory}
}

// FromOrder renders o with identifiers only.
func FromOrder(o *order.Order) OrderView {
	var assignedTo *MemberView
	if agentID := o.AssignedTo(); agentID != nil {
		assignedTo = &MemberView{ID: agentID.String()}
	}

	items := make([]ItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemView{ProductID: item.ProductID().String(), Quantity: item.Quantity()})
	}

	return OrderView{
		ID:         o.ID().String(),
		Customer:   MemberView{ID: o.CustomerID().String()},
		AssignedTo: assignedTo,
		Items:      items,
		Total:      o.Total().String(),
		Status:     o.Status().String(),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
	}
}

// Build renders o as it is, without reloading it, and fills in names from the
// directory. It fails only when the directory itself is unavailable.
func (b Builder) Build(ctx context.Context, o *order.Order) (OrderView, error) {
	if err := o.Validate(); err != nil {
		return OrderView{}, err
	}
	view := FromOrder(o)

	customer, err := b.member(ctx, o.CustomerID())
	if err != nil {
		return OrderView{}, err
	}
	view.Customer = customer

	if agentID := o.AssignedTo(); agentID != nil {
		agent, agentErr := b.member(ctx, *agentID)
		if agentErr != nil {
			return OrderView{}, agentErr
		}
		view.AssignedTo = &agent
	}

	for i, item := range o.Items() {
		product, productErr := b.directory.Product(ctx, item.ProductID())
		switch {
		case productErr == nil:
			view.Items[i].ProductName = product.Name
		case !errors.Is(productErr, errs.ErrObjectNotFound):
			return OrderView{}, productErr
		}
	}

	return view, nil
}

func (b Builder) member(ctx context.Context, id kernel.UUID) (MemberView, error) {
	ref, err := b.directory.Member(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return MemberView{ID: id.String()}, nil
		}
		return MemberView{}, err
	}
	return MemberView{ID: id.String(), Name: ref.Name, Email: ref.Email}, nil
}
