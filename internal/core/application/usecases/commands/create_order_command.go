package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerRefIsRequired = errs.NewValueIsRequiredError("customerRef")
)

// CreateOrderInput carries the raw inputs of NewCreateOrderCommand.
type CreateOrderInput struct {
	OrderID kernel.UUID

	// CustomerRef is a customer ID or customer.WalkInRef.
	CustomerRef string

	Type      order.Type
	Bottles   int
	UnitPrice kernel.Money
	RiderID   *kernel.UUID
	Priority  order.Priority
	Notes     string
}

// CreateOrderCommand represents a request to sell bottles to a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderInput{
//	    OrderID:     kernel.NewUUID(),
//	    CustomerRef: customer.WalkInRef,
//	    Type:        order.WalkIn,
//	    Bottles:     2,
//	    UnitPrice:   kernel.MoneyFromInt(50),
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	walkIn     bool
	orderType  order.Type
	bottles    int
	unitPrice  kernel.Money
	riderID    *kernel.UUID
	priority   order.Priority
	notes      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates everything that can be checked without the
// store: identifiers, type and rider rules, quantity and price.
func NewCreateOrderCommand(in CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		bottles:   in.Bottles,
		unitPrice: in.UnitPrice,
		notes:     strings.TrimSpace(in.Notes),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(in.OrderID),
		cmd.setCustomerRef(in.CustomerRef),
		cmd.setType(in.Type, in.RiderID),
		cmd.setPriority(in.Priority),
		cmd.validateAmounts(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c CreateOrderCommand) Type() order.Type         { return c.orderType }
func (c CreateOrderCommand) Bottles() int             { return c.bottles }
func (c CreateOrderCommand) UnitPrice() kernel.Money  { return c.unitPrice }
func (c CreateOrderCommand) RiderID() *kernel.UUID    { return c.riderID }
func (c CreateOrderCommand) Priority() order.Priority { return c.priority }
func (c CreateOrderCommand) Notes() string            { return c.notes }

// IsWalkIn reports whether the order is for the anonymous walk-in customer.
func (c CreateOrderCommand) IsWalkIn() bool {
	return c.walkIn
}

// CustomerID is the zero UUID when IsWalkIn is true.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) target() TransitionTarget {
	if c.walkIn {
		return ForWalkIn()
	}
	return ForCustomer(c.customerID)
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerRef(ref string) error {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ErrCustomerRefIsRequired
	case strings.EqualFold(ref, customer.WalkInRef):
		c.walkIn = true
		return nil
	}

	id, err := kernel.UUIDFromString(ref)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerRef", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setType(t order.Type, riderID *kernel.UUID) error {
	if t == order.ClearBill {
		return errs.NewValueIsInvalidError("clear-bill orders are created with ClearBillCommand")
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return err
		}
	}
	if _, err := t.InitialStatus(riderID != nil); err != nil {
		return err
	}
	c.orderType = t
	c.riderID = riderID
	return nil
}

func (c *CreateOrderCommand) setPriority(p order.Priority) error {
	if p == order.UnknownPriority {
		c.priority = order.Normal
		return nil
	}
	if err := p.Validate(); err != nil {
		return err
	}
	c.priority = p
	return nil
}

func (c *CreateOrderCommand) validateAmounts() error {
	var joined error
	if c.bottles <= 0 {
		joined = errors.Join(joined, errs.NewValueIsOutOfRangeError("bottles", c.bottles, 1, "unbounded"))
	}
	if c.unitPrice.IsNegative() {
		joined = errors.Join(joined, errs.NewValueIsOutOfRangeError("unitPrice", c.unitPrice.String(), "0.00", "unbounded"))
	}
	return joined
}
