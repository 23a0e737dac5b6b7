// Package memberrepo stores the member directory: one row per authenticated principal,
// refreshed on every request that carries display data.
package memberrepo

import (
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/member"

	"github.com/google/uuid"
)

type MemberDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:120;not null"`
	Email     string    `gorm:"size:254"`
	Role      int       `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time
}

func (MemberDTO) TableName() string {
	return "members"
}

func fromDomain(aggregate *member.Member) MemberDTO {
	return MemberDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Email: aggregate.Email(),
		Role:  int(aggregate.Role()),
	}
}

func toDomain(dto MemberDTO) (*member.Member, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return member.NewMember(id, dto.Name, dto.Email, member.Role(dto.Role))
}
