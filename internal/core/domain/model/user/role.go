package user

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Role is the operator role of a user.
type Role int

const (
	UnknownRole Role = iota
	Admin
	Rider
)

var roleNames = map[Role]string{
	Admin: "ADMIN",
	Rider: "RIDER",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole accepts the persisted or wire name of a role.
func ParseRole(name string) (Role, error) {
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", name))
}
