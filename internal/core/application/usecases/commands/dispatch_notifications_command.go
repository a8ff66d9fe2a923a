package commands

import (
	"errors"

	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

const (
	DefaultDispatchBatchSize = 50
	MaxDispatchBatchSize     = 1000
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand drains up to BatchSize pending outbox events.
type DispatchNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(batchSize int) (DispatchNotificationsCommand, error) {
	if batchSize <= 0 || batchSize > MaxDispatchBatchSize {
		return DispatchNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxDispatchBatchSize)
	}

	return DispatchNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}
