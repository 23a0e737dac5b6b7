package http

import (
	"deliveryhub/internal/core/application/views"
	"deliveryhub/internal/generated/servers"

	"github.com/google/uuid"
)

func toOrder(v views.OrderView) (servers.Order, error) {
	id, err := uuid.Parse(v.ID)
	if err != nil {
		return servers.Order{}, err
	}
	customer, err := toMemberRef(v.Customer)
	if err != nil {
		return servers.Order{}, err
	}

	var assignedTo *servers.MemberRef
	if v.AssignedTo != nil {
		agent, agentErr := toMemberRef(*v.AssignedTo)
		if agentErr != nil {
			return servers.Order{}, agentErr
		}
		assignedTo = &agent
	}

	items := make([]servers.OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		productID, productErr := uuid.Parse(item.ProductID)
		if productErr != nil {
			return servers.Order{}, productErr
		}
		items = append(items, servers.OrderItem{
			ProductId:   productID,
			ProductName: optional(item.ProductName),
			Quantity:    item.Quantity,
		})
	}

	return servers.Order{
		Id:         id,
		Customer:   customer,
		AssignedTo: assignedTo,
		Items:      items,
		Total:      v.Total,
		Status:     servers.OrderStatus(v.Status),
		Version:    v.Version,
		CreatedAt:  v.CreatedAt,
	}, nil
}

func toMemberRef(v views.MemberView) (servers.MemberRef, error) {
	id, err := uuid.Parse(v.ID)
	if err != nil {
		return servers.MemberRef{}, err
	}
	return servers.MemberRef{
		Id:    id,
		Name:  optional(v.Name),
		Email: optional(v.Email),
	}, nil
}

func toProduct(v views.ProductView) (servers.Product, error) {
	id, err := uuid.Parse(v.ID)
	if err != nil {
		return servers.Product{}, err
	}
	return servers.Product{
		Id:          id,
		Name:        v.Name,
		Description: optional(v.Description),
		Price:       v.Price,
	}, nil
}

func toDirectoryMember(v views.DirectoryMemberView) (servers.DirectoryMember, error) {
	id, err := uuid.Parse(v.ID)
	if err != nil {
		return servers.DirectoryMember{}, err
	}
	return servers.DirectoryMember{
		Id:        id,
		Name:      v.Name,
		Email:     optional(v.Email),
		Role:      servers.DirectoryMemberRole(v.Role),
		CreatedAt: v.CreatedAt,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
