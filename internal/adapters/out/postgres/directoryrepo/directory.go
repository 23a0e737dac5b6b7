package directoryrepo

import (
	"context"
	"errors"

	"deliveryhub/internal/adapters/out/postgres/memberrepo"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDirectory implements ports.Directory over the members and products tables.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) Member(ctx context.Context, id kernel.UUID) (ports.MemberRef, error) {
	if err := id.Validate(); err != nil {
		return ports.MemberRef{}, err
	}

	var dto memberrepo.MemberDTO
	if err := d.db.WithContext(ctx).Select("id", "name", "email").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MemberRef{}, errs.NewObjectNotFoundError("member", id.String())
		}
		return ports.MemberRef{}, err
	}

	return ports.MemberRef{ID: id, Name: dto.Name, Email: dto.Email}, nil
}

func (d *GormDirectory) Product(ctx context.Context, id kernel.UUID) (ports.ProductRef, error) {
	if err := id.Validate(); err != nil {
		return ports.ProductRef{}, err
	}

	var dto ProductDTO
	if err := d.db.WithContext(ctx).Select("id", "name").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductRef{}, errs.NewObjectNotFoundError("product", id.String())
		}
		return ports.ProductRef{}, err
	}

	return ports.ProductRef{ID: id, Name: dto.Name}, nil
}

// devCatalog is inserted by SeedProducts. IDs are fixed so repeated seeding is a no-op.
var devCatalog = []ProductDTO{
	{
		ID:          uuid.MustParse("6f1c2a4e-0b1d-4a53-9d0e-5b8f1e2c3a01"),
		Name:        "Margherita Pizza",
		Description: "Tomato, mozzarella, basil",
		Price:       decimal.RequireFromString("11.50"),
	},
	{
		ID:          uuid.MustParse("6f1c2a4e-0b1d-4a53-9d0e-5b8f1e2c3a02"),
		Name:        "Caesar Salad",
		Description: "Romaine, parmesan, croutons",
		Price:       decimal.RequireFromString("8.00"),
	},
	{
		ID:          uuid.MustParse("6f1c2a4e-0b1d-4a53-9d0e-5b8f1e2c3a03"),
		Name:        "Lemonade",
		Description: "Fresh, 0.5 l",
		Price:       decimal.RequireFromString("3.25"),
	},
}

// SeedProducts inserts a small catalog for local development. Existing rows are kept.
func SeedProducts(ctx context.Context, db *gorm.DB) error {
	products := make([]ProductDTO, len(devCatalog))
	copy(products, devCatalog)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&products).Error
}
