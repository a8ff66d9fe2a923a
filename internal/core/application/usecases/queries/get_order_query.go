// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for their callers and never mutate state.
package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/billing"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order together with the name of its customer.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model of an order.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	CustomerName string
	RiderID      *kernel.UUID

	Type     order.Type
	Status   order.Status
	Priority order.Priority

	Bottles            int
	UnitPrice          kernel.Money
	CustomerBalance    kernel.Money
	CurrentOrderAmount kernel.Money
	TotalAmount        kernel.Money
	PaidAmount         kernel.Money
	PaymentStatus      billing.PaymentStatus
	Receivable         kernel.Money
	Payable            kernel.Money
	PaymentMethod      order.PaymentMethod

	Notes        string
	CancelReason string

	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
