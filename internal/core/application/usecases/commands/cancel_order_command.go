package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order on behalf of an admin or a rider.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   event.Actor
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, actor event.Actor, reason string) (CancelOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		actor:   actor,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderCommand) Actor() event.Actor   { return c.actor }
func (c CancelOrderCommand) Reason() string       { return c.reason }
