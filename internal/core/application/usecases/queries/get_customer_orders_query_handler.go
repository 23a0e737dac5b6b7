package queries

import (
	"context"

	"deliveryhub/internal/core/application/views"

	"gorm.io/gorm"
)

type GetCustomerOrdersQueryHandler struct {
	reader orderReader
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{reader: orderReader{db: db}}
}

func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.list(ctx, "o.customer_id = ?", query.CustomerID().Bytes())
}
