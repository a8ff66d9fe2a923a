// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"waterdelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest set of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// CustomerUoW manages transactions for customer registration.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// UserUoW manages transactions for operator registration.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// LedgerUoW spans everything a ledger transition touches: the locked
	// customer, the order, its ledger entries, the rider lookup and the
	// outbox events written alongside.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CustomerRepository().GetForUpdate(ctx, customerID)
	//   // ... mutate customer and order, append entries and events
	//
	//   err = uow.Commit(ctx)
	LedgerUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		LedgerRepoFactory
		UserRepoFactory
		OutboxRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// DispatchUoW manages transactions for draining the outbox.
	DispatchUoW interface {
		TxManager
		OutboxRepoFactory
		UserRepoFactory
		NotificationRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}
)
