// Package orderrepo maps the order aggregate to the orders table.
// Enumerations are stored by name and amounts as numeric(14,2).
package orderrepo

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/billing"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	RiderID    *uuid.UUID `gorm:"type:uuid;index"`

	OrderType string `gorm:"type:varchar(16);not null"`
	Status    string `gorm:"type:varchar(16);not null;index"`
	Priority  string `gorm:"type:varchar(16);not null"`

	NumberOfBottles    int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CustomerBalance    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CurrentOrderAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaidAmount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentStatus      string          `gorm:"type:varchar(16);not null"`
	Receivable         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Payable            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentMethod      string          `gorm:"type:varchar(16);not null;default:''"`

	Notes        string `gorm:"not null;default:''"`
	CancelReason string `gorm:"not null;default:''"`

	DeliveredAt *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := o.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return OrderDTO{
		ID:                 o.ID().Bytes(),
		CustomerID:         o.CustomerID().Bytes(),
		RiderID:            riderID,
		OrderType:          o.Type().String(),
		Status:             o.Status().String(),
		Priority:           o.Priority().String(),
		NumberOfBottles:    o.Bottles(),
		UnitPrice:          o.UnitPrice().Decimal(),
		CustomerBalance:    o.CustomerBalance().Decimal(),
		CurrentOrderAmount: o.CurrentOrderAmount().Decimal(),
		TotalAmount:        o.TotalAmount().Decimal(),
		PaidAmount:         o.PaidAmount().Decimal(),
		PaymentStatus:      o.PaymentStatus().String(),
		Receivable:         o.Receivable().Decimal(),
		Payable:            o.Payable().Decimal(),
		PaymentMethod:      o.PaymentMethod().String(),
		Notes:              o.Notes(),
		CancelReason:       o.CancelReason(),
		DeliveredAt:        o.DeliveredAt(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	customerID, customerErr := kernel.UUIDFromBytes(dto.CustomerID[:])

	var riderID *kernel.UUID
	var riderErr error
	if dto.RiderID != nil {
		var rID kernel.UUID
		rID, riderErr = kernel.UUIDFromBytes((*dto.RiderID)[:])
		riderID = &rID
	}

	orderType, typeErr := order.ParseType(dto.OrderType)
	status, statusErr := order.ParseStatus(dto.Status)
	priority, priorityErr := order.ParsePriority(dto.Priority)
	paymentStatus, paymentStatusErr := billing.ParsePaymentStatus(dto.PaymentStatus)
	method, methodErr := order.ParsePaymentMethod(dto.PaymentMethod)

	if err := errors.Join(
		idErr, customerErr, riderErr,
		typeErr, statusErr, priorityErr, paymentStatusErr, methodErr,
	); err != nil {
		return nil, err
	}

	var deliveredAt *time.Time
	if dto.DeliveredAt != nil {
		at := dto.DeliveredAt.UTC()
		deliveredAt = &at
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                 id,
		CustomerID:         customerID,
		RiderID:            riderID,
		Type:               orderType,
		Status:             status,
		Priority:           priority,
		Bottles:            dto.NumberOfBottles,
		UnitPrice:          kernel.NewMoney(dto.UnitPrice),
		CustomerBalance:    kernel.NewMoney(dto.CustomerBalance),
		CurrentOrderAmount: kernel.NewMoney(dto.CurrentOrderAmount),
		TotalAmount:        kernel.NewMoney(dto.TotalAmount),
		PaidAmount:         kernel.NewMoney(dto.PaidAmount),
		PaymentStatus:      paymentStatus,
		Receivable:         kernel.NewMoney(dto.Receivable),
		Payable:            kernel.NewMoney(dto.Payable),
		PaymentMethod:      method,
		Notes:              dto.Notes,
		CancelReason:       dto.CancelReason,
		DeliveredAt:        deliveredAt,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}
