package customerrepo

import (
	"context"
	"errors"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add saves a new customer. A second walk-in row or a duplicate id is
// reported as a conflict.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate("customer", err)
	}
	return nil
}

// Update writes every column, including a zero balance.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Translate("customer", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", aggregate.ID().String())
	}
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetForUpdate holds a row lock on the customer until the transaction ends.
func (r *GormCustomerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetWalkIn locks the shared walk-in customer.
func (r *GormCustomerRepository) GetWalkIn(ctx context.Context) (*customer.Customer, error) {
	var dto CustomerDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "is_walk_in = ?", true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", customer.WalkInRef)
		}
		return nil, pgerrs.Translate("customer", err)
	}

	return toDomain(dto)
}

func (r *GormCustomerRepository) first(db *gorm.DB, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, pgerrs.Translate("customer", err)
	}

	return toDomain(dto)
}
