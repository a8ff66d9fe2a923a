// Package customerrepo persists the customer aggregate and its running balance.
package customerrepo

import (
	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDTO is the row of the customers table. At most one row has
// is_walk_in set.
type CustomerDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name     string          `gorm:"not null"`
	Phone    string          `gorm:"not null;default:''"`
	Address  string          `gorm:"not null;default:''"`
	Balance  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	IsActive bool            `gorm:"not null;default:true"`
	IsWalkIn bool            `gorm:"not null;default:false;uniqueIndex:idx_customers_walk_in,where:is_walk_in"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:       c.ID().Bytes(),
		Name:     c.Name(),
		Phone:    c.Phone(),
		Address:  c.Address(),
		Balance:  c.Balance().Decimal(),
		IsActive: c.IsActive(),
		IsWalkIn: c.IsWalkIn(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(
		id,
		dto.Name,
		dto.Phone,
		dto.Address,
		kernel.NewMoney(dto.Balance),
		dto.IsActive,
		dto.IsWalkIn,
	)
}
