// Package ledgerrepo stores the append-only ledger of balance movements.
package ledgerrepo

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryDTO is the row of the ledger_entries table. Seq is assigned by
// the database and orders entries written in the same instant.
type LedgerEntryDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq        int64           `gorm:"type:bigserial;not null;uniqueIndex;<-:false"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind       string          `gorm:"type:varchar(16);not null"`
	Delta      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

func (LedgerEntryDTO) TableName() string {
	return "ledger_entries"
}

func fromDomain(e *ledger.Entry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:         e.ID().Bytes(),
		CustomerID: e.CustomerID().Bytes(),
		OrderID:    e.OrderID().Bytes(),
		Kind:       e.Kind().String(),
		Delta:      e.Delta().Decimal(),
		CreatedAt:  e.CreatedAt(),
	}
}

func toDomain(dto LedgerEntryDTO) (*ledger.Entry, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	customerID, customerErr := kernel.UUIDFromBytes(dto.CustomerID[:])
	orderID, orderErr := kernel.UUIDFromBytes(dto.OrderID[:])
	kind, kindErr := ledger.ParseKind(dto.Kind)
	if err := errors.Join(idErr, customerErr, orderErr, kindErr); err != nil {
		return nil, err
	}

	return ledger.RestoreEntry(id, customerID, orderID, kind, kernel.NewMoney(dto.Delta), dto.CreatedAt)
}
