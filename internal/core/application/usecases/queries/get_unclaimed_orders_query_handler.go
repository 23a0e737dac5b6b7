package queries

import (
	"context"

	"deliveryhub/internal/core/application/views"
	"deliveryhub/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetUnclaimedOrdersQueryHandler struct {
	reader orderReader
}

func NewGetUnclaimedOrdersQueryHandler(db *gorm.DB) GetUnclaimedOrdersQueryHandler {
	return GetUnclaimedOrdersQueryHandler{reader: orderReader{db: db}}
}

func (h GetUnclaimedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnclaimedOrdersQuery,
) ([]views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.list(ctx, "o.status = ? AND o.assigned_to IS NULL", int(order.Pending))
}
