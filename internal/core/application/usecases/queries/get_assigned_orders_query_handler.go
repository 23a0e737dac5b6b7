package queries

import (
	"context"

	"deliveryhub/internal/core/application/views"

	"gorm.io/gorm"
)

type GetAssignedOrdersQueryHandler struct {
	reader orderReader
}

func NewGetAssignedOrdersQueryHandler(db *gorm.DB) GetAssignedOrdersQueryHandler {
	return GetAssignedOrdersQueryHandler{reader: orderReader{db: db}}
}

func (h GetAssignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedOrdersQuery,
) ([]views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.list(ctx, "o.assigned_to = ?", query.AgentID().Bytes())
}
