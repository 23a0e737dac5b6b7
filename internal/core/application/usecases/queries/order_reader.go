// Package queries holds the read side. Handlers query the database directly with raw
// SQL and return denormalized views; they never load aggregates. Every list is sorted
// newest first.
package queries

import (
	"context"

	"deliveryhub/internal/core/application/views"
	"deliveryhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const selectOrders = `
	SELECT
		o.id,
		o.customer_id,
		COALESCE(c.name, ''),
		COALESCE(c.email, ''),
		o.assigned_to,
		COALESCE(a.name, ''),
		COALESCE(a.email, ''),
		o.total,
		o.status,
		o.version,
		o.created_at
	FROM orders o
	LEFT JOIN members c ON c.id = o.customer_id
	LEFT JOIN members a ON a.id = o.assigned_to
`

const selectItems = `
	SELECT
		i.order_id,
		i.product_id,
		COALESCE(p.name, ''),
		i.quantity
	FROM order_items i
	LEFT JOIN products p ON p.id = i.product_id
	WHERE i.order_id IN ?
	ORDER BY i.order_id, i.position
`

// orderReader loads order views matching a WHERE clause, with their items.
type orderReader struct {
	db *gorm.DB
}

func (r orderReader) list(ctx context.Context, where string, args ...any) ([]views.OrderView, error) {
	query := selectOrders
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY o.created_at DESC, o.id"

	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]views.OrderView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id, customerID              uuid.UUID
			customerName, customerEmail string
			assignedTo                  uuid.NullUUID
			agentName, agentEmail       string
			total                       decimal.Decimal
			status, version             int
			view                        views.OrderView
		)

		if err = rows.Scan(
			&id,
			&customerID,
			&customerName,
			&customerEmail,
			&assignedTo,
			&agentName,
			&agentEmail,
			&total,
			&status,
			&version,
			&view.CreatedAt,
		); err != nil {
			return nil, err
		}

		view.ID = id.String()
		view.Customer = views.MemberView{ID: customerID.String(), Name: customerName, Email: customerEmail}
		if assignedTo.Valid {
			view.AssignedTo = &views.MemberView{ID: assignedTo.UUID.String(), Name: agentName, Email: agentEmail}
		}
		view.Total = total.StringFixed(2)
		view.Status = order.Status(status).String()
		view.Version = version
		view.Items = make([]views.ItemView, 0)

		index[id] = len(result)
		result = append(result, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return result, nil
	}
	if err = r.attachItems(ctx, result, index); err != nil {
		return nil, err
	}
	return result, nil
}

func (r orderReader) attachItems(ctx context.Context, result []views.OrderView, index map[uuid.UUID]int) error {
	ids := make([]uuid.UUID, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	rows, err := r.db.WithContext(ctx).Raw(selectItems, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, productID uuid.UUID
			productName        string
			quantity           int
		)
		if err = rows.Scan(&orderID, &productID, &productName, &quantity); err != nil {
			return err
		}

		i, ok := index[orderID]
		if !ok {
			continue
		}
		result[i].Items = append(result[i].Items, views.ItemView{
			ProductID:   productID.String(),
			ProductName: productName,
			Quantity:    quantity,
		})
	}

	return rows.Err()
}
