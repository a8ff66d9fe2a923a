package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/billing"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// MaxSettledWindow bounds the reporting window of one request.
const MaxSettledWindow = 31 * 24 * time.Hour

var ErrGetSettledOrdersQueryIsNotConstructed = errors.New(
	"GetSettledOrdersQuery must be created via NewGetSettledOrdersQuery constructor",
)

// GetSettledOrdersQuery is the reporting feed: every Delivered or Completed
// order settled in [from, to).
type GetSettledOrdersQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

func NewGetSettledOrdersQuery(from, to time.Time) (GetSettledOrdersQuery, error) {
	if !from.Before(to) {
		return GetSettledOrdersQuery{}, errs.NewValueIsInvalidError("from must be before to")
	}
	if window := to.Sub(from); window > MaxSettledWindow {
		return GetSettledOrdersQuery{}, errs.NewValueIsOutOfRangeError("window", window.String(), "1ns", MaxSettledWindow.String())
	}

	return GetSettledOrdersQuery{
		from:  from.UTC(),
		to:    to.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetSettledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSettledOrdersQueryIsNotConstructed)
}

func (q GetSettledOrdersQuery) From() time.Time { return q.from }
func (q GetSettledOrdersQuery) To() time.Time   { return q.to }

// SettledOrderView is one line of the settled-orders report.
type SettledOrderView struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	RiderID       *kernel.UUID
	Type          order.Type
	Status        order.Status
	Bottles       int
	OrderAmount   kernel.Money
	TotalAmount   kernel.Money
	PaidAmount    kernel.Money
	PaymentStatus billing.PaymentStatus
	PaymentMethod order.PaymentMethod
	Receivable    kernel.Money
	Payable       kernel.Money
	SettledAt     time.Time
}

// GetSettledOrdersQueryResponse carries the report lines and their totals.
type GetSettledOrdersQueryResponse struct {
	Orders     []SettledOrderView
	Collected  kernel.Money
	Receivable kernel.Money
	Payable    kernel.Money
}
