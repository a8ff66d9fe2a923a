package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
	ErrCompleteWalkInOrderCommandIsNotConstructed = errors.New(
		"CompleteWalkInOrderCommand must be created via NewCompleteWalkInOrderCommand constructor",
	)
)

// settlement holds the inputs shared by delivery and counter settlement.
type settlement struct {
	orderID kernel.UUID
	paid    kernel.Money
	method  order.PaymentMethod

	guard guard.ConstructorGuard
}

func newSettlement(orderID kernel.UUID, paid kernel.Money, method order.PaymentMethod) (settlement, error) {
	var methodErr error
	if method != order.NoPaymentMethod {
		methodErr = method.Validate()
	}

	if err := errors.Join(orderID.Validate(), methodErr); err != nil {
		return settlement{}, err
	}

	return settlement{
		orderID: orderID,
		paid:    paid,
		method:  method,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (s settlement) OrderID() kernel.UUID               { return s.orderID }
func (s settlement) PaidAmount() kernel.Money           { return s.paid }
func (s settlement) PaymentMethod() order.PaymentMethod { return s.method }

// DeliverOrderCommand settles a delivery or en-route order at the door.
// A negative paid amount is a refund handed to the customer.
type DeliverOrderCommand struct {
	settlement
}

func NewDeliverOrderCommand(orderID kernel.UUID, paid kernel.Money, method order.PaymentMethod) (DeliverOrderCommand, error) {
	s, err := newSettlement(orderID, paid, method)
	if err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{settlement: s}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// CompleteWalkInOrderCommand settles a walk-in order at the counter.
type CompleteWalkInOrderCommand struct {
	settlement
}

func NewCompleteWalkInOrderCommand(orderID kernel.UUID, paid kernel.Money, method order.PaymentMethod) (CompleteWalkInOrderCommand, error) {
	s, err := newSettlement(orderID, paid, method)
	if err != nil {
		return CompleteWalkInOrderCommand{}, err
	}
	return CompleteWalkInOrderCommand{settlement: s}, nil
}

func (c CompleteWalkInOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteWalkInOrderCommandIsNotConstructed)
}
