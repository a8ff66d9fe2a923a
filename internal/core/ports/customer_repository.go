// Package ports defines the interfaces between the core and the adapters:
// repositories bound to a unit of work, and the outbound notification and
// de-duplication services used by the dispatcher.
package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
type CustomerRepository interface {
	// Add persists a new customer.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists the balance and profile of an existing customer.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer without locking it.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetForUpdate retrieves a customer and locks its row until the
	// surrounding transaction ends. Every balance change goes through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetWalkIn retrieves and locks the shared walk-in customer.
	// Returns an ObjectNotFoundError when it has not been created yet.
	GetWalkIn(ctx context.Context) (*customer.Customer, error)
}
