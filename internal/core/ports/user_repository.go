package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
)

type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetActiveRider returns an ObjectNotFoundError unless id names an
	// active user with the rider role.
	GetActiveRider(ctx context.Context, id kernel.UUID) (*user.User, error)

	ListActiveAdmins(ctx context.Context) ([]*user.User, error)
}
