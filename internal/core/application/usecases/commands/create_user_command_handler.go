package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/user"
)

type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewCreateUserCommandHandler(uowFactory UserUoWFactory) CreateUserCommandHandler {
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.Name(), cmd.Phone(), cmd.Role())
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

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
