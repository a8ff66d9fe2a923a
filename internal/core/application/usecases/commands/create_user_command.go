package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers an admin or a rider.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   string
	phone  string
	role   user.Role

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(userID kernel.UUID, name, phone string, role user.Role) (CreateUserCommand, error) {
	cmd := CreateUserCommand{
		phone: strings.TrimSpace(phone),
		guard: guard.NewConstructorGuard(),
	}

	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(
		userID.Validate(),
		role.Validate(),
		nameErr,
	); err != nil {
		return CreateUserCommand{}, err
	}

	cmd.userID = userID
	cmd.name = name
	cmd.role = role
	return cmd, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) UserID() kernel.UUID { return c.userID }
func (c CreateUserCommand) Name() string        { return c.name }
func (c CreateUserCommand) Phone() string       { return c.phone }
func (c CreateUserCommand) Role() user.Role     { return c.role }
