package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand registers a customer with a zero balance.
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	name       string
	phone      string
	address    string

	guard guard.ConstructorGuard
}

func NewCreateCustomerCommand(customerID kernel.UUID, name, phone, address string) (CreateCustomerCommand, error) {
	cmd := CreateCustomerCommand{
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setName(name),
	); err != nil {
		return CreateCustomerCommand{}, err
	}

	return cmd, nil
}

func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

func (c CreateCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateCustomerCommand) Name() string {
	return c.name
}

func (c CreateCustomerCommand) Phone() string {
	return c.phone
}

func (c CreateCustomerCommand) Address() string {
	return c.address
}

func (c *CreateCustomerCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateCustomerCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
