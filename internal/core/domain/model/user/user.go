package user

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is an operator of the system: an admin at the counter or a rider on
// the road. Riders are assigned to delivery orders; admins are notified about
// deliveries and rider-side cancellations.
type User struct {
	id       kernel.UUID
	name     string
	phone    string
	role     Role
	isActive bool

	guard guard.ConstructorGuard
}

func NewUser(id kernel.UUID, name, phone string, role Role) (*User, error) {
	return RestoreUser(id, name, phone, role, true)
}

// RestoreUser rebuilds a user from persistence.
func RestoreUser(id kernel.UUID, name, phone string, role Role, isActive bool) (*User, error) {
	u := &User{
		phone:    strings.TrimSpace(phone),
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		role.Validate(),
		u.setName(name),
	); err != nil {
		return nil, err
	}

	u.id = id
	u.role = role
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) Deactivate() {
	u.isActive = false
}

// EnsureAssignable rejects users that cannot take delivery work.
func (u *User) EnsureAssignable() error {
	if u.role != Rider {
		return errs.NewValueIsInvalidError("user is not a rider")
	}
	if !u.isActive {
		return errs.NewValueIsInvalidError("rider is inactive")
	}
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}
