package queries

import (
	"context"

	"deliveryhub/internal/core/application/views"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetMembersQueryHandler struct {
	db *gorm.DB
}

func NewGetMembersQueryHandler(db *gorm.DB) GetMembersQueryHandler {
	return GetMembersQueryHandler{db: db}
}

func (h GetMembersQueryHandler) Handle(ctx context.Context, query GetMembersQuery) ([]views.DirectoryMemberView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, COALESCE(email, ''), created_at
		FROM members
		WHERE role = ?
		ORDER BY created_at DESC, id
	`, int(query.Role())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]views.DirectoryMemberView, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			view views.DirectoryMemberView
		)
		if err = rows.Scan(&id, &view.Name, &view.Email, &view.CreatedAt); err != nil {
			return nil, err
		}
		view.ID = id.String()
		view.Role = query.Role().String()
		members = append(members, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}
