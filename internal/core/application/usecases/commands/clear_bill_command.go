package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrClearBillCommandIsNotConstructed = errors.New(
	"ClearBillCommand must be created via NewClearBillCommand constructor",
)

// ClearBillCommand settles a customer's outstanding balance in cash,
// whichever way it points.
type ClearBillCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	paid       kernel.Money
	method     order.PaymentMethod
	notes      string

	guard guard.ConstructorGuard
}

func NewClearBillCommand(
	orderID, customerID kernel.UUID,
	paid kernel.Money,
	method order.PaymentMethod,
	notes string,
) (ClearBillCommand, error) {
	var joined error
	joined = errors.Join(joined, orderID.Validate(), customerID.Validate())
	if !paid.IsPositive() {
		joined = errors.Join(joined, errs.NewValueIsOutOfRangeError("paidAmount", paid.String(), "0.01", "unbounded"))
	}
	if method != order.NoPaymentMethod {
		joined = errors.Join(joined, method.Validate())
	}
	if joined != nil {
		return ClearBillCommand{}, joined
	}

	return ClearBillCommand{
		orderID:    orderID,
		customerID: customerID,
		paid:       paid,
		method:     method,
		notes:      strings.TrimSpace(notes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ClearBillCommand) Validate() error {
	return c.guard.Validate(ErrClearBillCommandIsNotConstructed)
}

func (c ClearBillCommand) OrderID() kernel.UUID               { return c.orderID }
func (c ClearBillCommand) CustomerID() kernel.UUID            { return c.customerID }
func (c ClearBillCommand) PaidAmount() kernel.Money           { return c.paid }
func (c ClearBillCommand) PaymentMethod() order.PaymentMethod { return c.method }
func (c ClearBillCommand) Notes() string                      { return c.notes }
