package ledgerrepo

import (
	"context"

	"waterdelivery/internal/adapters/out/postgres/pgerrs"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
// Entries are never updated or deleted.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append inserts entries in the given order.
func (r *GormLedgerRepository) Append(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerrs.Translate("ledger entry", err)
	}
	return nil
}

func (r *GormLedgerRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*ledger.Entry, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LedgerEntryDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *GormLedgerRepository) SumByCustomer(ctx context.Context, customerID kernel.UUID) (kernel.Money, error) {
	if err := customerID.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return r.sum(ctx, "customer_id = ?", customerID)
}

func (r *GormLedgerRepository) SumByOrder(ctx context.Context, orderID kernel.UUID) (kernel.Money, error) {
	if err := orderID.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return r.sum(ctx, "order_id = ?", orderID)
}

func (r *GormLedgerRepository) sum(ctx context.Context, where string, id kernel.UUID) (kernel.Money, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&LedgerEntryDTO{}).
		Select("COALESCE(SUM(delta), 0)").
		Where(where, id.Bytes()).
		Row().
		Scan(&total)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(total), nil
}
