package queries

import (
	"context"

	"deliveryhub/internal/core/application/views"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetProductsQueryHandler struct {
	db *gorm.DB
}

func NewGetProductsQueryHandler(db *gorm.DB) GetProductsQueryHandler {
	return GetProductsQueryHandler{db: db}
}

func (h GetProductsQueryHandler) Handle(ctx context.Context, query GetProductsQuery) ([]views.ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, COALESCE(description, ''), price
		FROM products
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]views.ProductView, 0)
	for rows.Next() {
		var (
			id    uuid.UUID
			price decimal.Decimal
			view  views.ProductView
		)
		if err = rows.Scan(&id, &view.Name, &view.Description, &price); err != nil {
			return nil, err
		}
		view.ID = id.String()
		view.Price = price.StringFixed(2)
		products = append(products, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
