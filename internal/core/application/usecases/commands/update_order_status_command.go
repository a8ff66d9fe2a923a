package commands

import (
	"errors"
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand assigns, reassigns or starts a rider order.
// Target is Assigned or InProgress; RiderID is optional when the order
// already has a rider.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	riderID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID kernel.UUID, target order.Status, riderID *kernel.UUID) (UpdateOrderStatusCommand, error) {
	var targetErr error
	if target != order.Assigned && target != order.InProgress {
		targetErr = errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a target of a status update", target))
	}

	var riderErr error
	if riderID != nil {
		riderErr = riderID.Validate()
	}

	if err := errors.Join(orderID.Validate(), targetErr, riderErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		target:  target,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID  { return c.orderID }
func (c UpdateOrderStatusCommand) Target() order.Status  { return c.target }
func (c UpdateOrderStatusCommand) RiderID() *kernel.UUID { return c.riderID }
