package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrAmendOrderCommandIsNotConstructed = errors.New(
	"AmendOrderCommand must be created via NewAmendOrderCommand constructor",
)

// AmendOrderCommand changes quantity and price of an order that has not
// been settled yet. Nil notes and UnknownPriority keep the current values.
type AmendOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	bottles   int
	unitPrice kernel.Money
	notes     *string
	priority  order.Priority

	guard guard.ConstructorGuard
}

func NewAmendOrderCommand(
	orderID kernel.UUID,
	bottles int,
	unitPrice kernel.Money,
	notes *string,
	priority order.Priority,
) (AmendOrderCommand, error) {
	var joined error
	joined = errors.Join(joined, orderID.Validate())
	if bottles <= 0 {
		joined = errors.Join(joined, errs.NewValueIsOutOfRangeError("bottles", bottles, 1, "unbounded"))
	}
	if unitPrice.IsNegative() {
		joined = errors.Join(joined, errs.NewValueIsOutOfRangeError("unitPrice", unitPrice.String(), "0.00", "unbounded"))
	}
	if priority != order.UnknownPriority {
		joined = errors.Join(joined, priority.Validate())
	}
	if joined != nil {
		return AmendOrderCommand{}, joined
	}

	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		notes = &trimmed
	}

	return AmendOrderCommand{
		orderID:   orderID,
		bottles:   bottles,
		unitPrice: unitPrice,
		notes:     notes,
		priority:  priority,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AmendOrderCommand) Validate() error {
	return c.guard.Validate(ErrAmendOrderCommandIsNotConstructed)
}

func (c AmendOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c AmendOrderCommand) Bottles() int             { return c.bottles }
func (c AmendOrderCommand) UnitPrice() kernel.Money  { return c.unitPrice }
func (c AmendOrderCommand) Notes() *string           { return c.notes }
func (c AmendOrderCommand) Priority() order.Priority { return c.priority }
