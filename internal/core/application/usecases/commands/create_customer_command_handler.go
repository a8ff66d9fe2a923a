package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/customer"
)

// CreateCustomerCommandHandler persists new customers.
type CreateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewCreateCustomerCommandHandler(uowFactory CustomerUoWFactory) CreateCustomerCommandHandler {
	return CreateCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateCustomerCommandHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := customer.NewCustomer(cmd.CustomerID(), cmd.Name(), cmd.Phone(), cmd.Address())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CustomerRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
