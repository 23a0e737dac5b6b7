package queries

import (
	"context"

	"deliveryhub/internal/core/application/views"

	"gorm.io/gorm"
)

type GetAllOrdersQueryHandler struct {
	reader orderReader
}

func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: orderReader{db: db}}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.list(ctx, "")
}
